package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"gitlab.com/skillsnap.net/internal/static/errs"
)

const (
	pqUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
)

// Server answers that mean the store cannot serve this client: connection
// exceptions, rejected credentials, unknown database, exhausted resources
// and operator intervention (shutdown, starting up).
var (
	pqUnavailableClasses = map[pq.ErrorClass]bool{
		"08": true,
		"28": true,
		"3D": true,
		"53": true,
	}
	pqUnavailableCodes = map[pq.ErrorCode]bool{
		"57P01": true,
		"57P02": true,
		"57P03": true,
	}
	mysqlUnavailableNumbers = map[uint16]bool{
		1040: true, // too many connections
		1044: true, // access denied for database
		1045: true, // access denied for user
		1049: true, // unknown database
	}
)

// IsUniqueViolation reports a duplicate key on either supported driver
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return false
}

// IsConnectionFailure reports errors that mean the server could not be reached
func IsConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, mysql.ErrInvalidConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqUnavailableClasses[pqErr.Code.Class()] || pqUnavailableCodes[pqErr.Code]
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlUnavailableNumbers[myErr.Number]
	}
	return false
}

// Classify maps driver errors onto the store sentinels; anything else is returned as is
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", errs.ErrIdentifierCollision, err)
	case IsConnectionFailure(err):
		return fmt.Errorf("%w: %v", errs.ErrStoreUnavailable, err)
	default:
		return err
	}
}
