package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gitlab.com/skillsnap.net/internal/config"
)

const postgresCertificatesDDL = `CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(8) PRIMARY KEY,
	user_name TEXT NOT NULL,
	code TEXT NOT NULL,
	audit TEXT NULL,
	issued_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const mysqlCertificatesDDL = `CREATE TABLE IF NOT EXISTS %s (
	id VARCHAR(8) NOT NULL PRIMARY KEY,
	user_name TEXT NOT NULL,
	code LONGTEXT NOT NULL,
	audit TEXT NULL,
	issued_at DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)
) DEFAULT CHARSET=utf8mb4`

// CertificatesDDL returns the create statement for the given driver
func CertificatesDDL(driverName, table string) (string, error) {
	switch driverName {
	case config.DriverPostgres:
		return fmt.Sprintf(postgresCertificatesDDL, table), nil
	case config.DriverMySQL:
		return fmt.Sprintf(mysqlCertificatesDDL, table), nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", driverName)
	}
}

// EnsureSchema creates the certificates table when missing
func EnsureSchema(ctx context.Context, db *sqlx.DB, table string) error {
	ddl, err := CertificatesDDL(db.DriverName(), table)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return Classify(err)
	}
	return nil
}
