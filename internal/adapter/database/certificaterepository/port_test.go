package certificaterepository

import (
	"context"
	"errors"
	"net"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/skillsnap.net/internal/adapter/logging"
	"gitlab.com/skillsnap.net/internal/domain"
	"gitlab.com/skillsnap.net/internal/static/errs"
)

const (
	postgresInsert = "INSERT INTO certificates (id, user_name, code, audit, issued_at) VALUES ($1, $2, $3, $4, $5)"
	postgresSelect = "SELECT id, user_name, code, audit, issued_at FROM certificates WHERE id = $1 LIMIT 1"
	mysqlInsert    = "INSERT INTO certificates (id, user_name, code, audit, issued_at) VALUES (?, ?, ?, ?, ?)"
)

var issuedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newMock(t *testing.T, driverName string) (*certificateRepo, sqlmock.Sqlmock) {
	t.Helper()
	return newMockWithTimeout(t, driverName, 5*time.Second)
}

func newMockWithTimeout(t *testing.T, driverName string, schemaTimeout time.Duration) (*certificateRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := New(sqlx.NewDb(db, driverName), logging.NewNopLogger(), "", schemaTimeout).(*certificateRepo)
	return repo, mock
}

func expectSchema(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS certificates")).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func sampleCertificate() *domain.Certificate {
	audit := "Badge: Code Wizard"
	return &domain.Certificate{
		ID:         "ABCD1234",
		AuthorName: "Ada",
		SourceText: "def sum(a, b):\n    return a + b\n",
		AuditText:  &audit,
		IssuedAt:   issuedAt,
	}
}

func TestInsertPostgres(t *testing.T) {
	repo, mock := newMock(t, "postgres")
	cert := sampleCertificate()

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(postgresInsert)).
		WithArgs(cert.ID, cert.AuthorName, cert.SourceText, *cert.AuditText, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), cert))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaIsEnsuredOnce(t *testing.T) {
	repo, mock := newMock(t, "postgres")
	cert := sampleCertificate()

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(postgresInsert)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(postgresInsert)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), cert))
	require.NoError(t, repo.Insert(context.Background(), cert))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaRetriedAfterOutage(t *testing.T) {
	repo, mock := newMock(t, "postgres")
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS certificates")).WillReturnError(refused)
	expectSchema(mock)
	mock.ExpectQuery(regexp.QuoteMeta(postgresSelect)).
		WithArgs("ABCD1234").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "code", "audit", "issued_at"}))

	_, err := repo.Get(context.Background(), "ABCD1234")
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)

	cert, err := repo.Get(context.Background(), "ABCD1234")
	assert.NoError(t, err)
	assert.Nil(t, cert)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSlowSchemaSetupDoesNotSerializeCallers(t *testing.T) {
	repo, mock := newMock(t, "postgres")
	mock.MatchExpectationsInOrder(false)

	const callers = 4
	const ddlDelay = 300 * time.Millisecond
	for i := 0; i < callers; i++ {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS certificates")).
			WillDelayFor(ddlDelay).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(postgresSelect)).
			WithArgs("ABCD1234").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "code", "audit", "issued_at"}))
	}

	start := make(chan struct{})
	errCh := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := repo.Get(context.Background(), "ABCD1234")
			errCh <- err
		}()
	}

	began := time.Now()
	close(start)
	wg.Wait()
	elapsed := time.Since(began)
	close(errCh)

	for err := range errCh {
		assert.NoError(t, err)
	}
	assert.Less(t, elapsed, 2*ddlDelay, "callers waited on each other's schema setup")
	assert.True(t, repo.schemaReady.Load())
}

func TestSchemaSetupIsBounded(t *testing.T) {
	repo, mock := newMockWithTimeout(t, "postgres", 50*time.Millisecond)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS certificates")).
		WillDelayFor(2 * time.Second).
		WillReturnResult(sqlmock.NewResult(0, 0))

	began := time.Now()
	_, err := repo.Get(context.Background(), "ABCD1234")
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
	assert.Less(t, time.Since(began), time.Second)
	assert.False(t, repo.schemaReady.Load())
}

func TestSchemaRejectedCredentialsIsUnavailable(t *testing.T) {
	repo, mock := newMock(t, "postgres")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS certificates")).
		WillReturnError(&pq.Error{Code: "28P01", Message: "password authentication failed for user \"skillsnap\""})

	_, err := repo.Get(context.Background(), "ABCD1234")
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
}

func TestInsertDuplicateIsCollision(t *testing.T) {
	repo, mock := newMock(t, "postgres")

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(postgresInsert)).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	err := repo.Insert(context.Background(), sampleCertificate())
	assert.ErrorIs(t, err, errs.ErrIdentifierCollision)
}

func TestInsertMySQLDuplicateIsCollision(t *testing.T) {
	repo, mock := newMock(t, "mysql")

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(mysqlInsert)).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'ABCD1234' for key 'PRIMARY'"})

	err := repo.Insert(context.Background(), sampleCertificate())
	assert.ErrorIs(t, err, errs.ErrIdentifierCollision)
}

func TestInsertOtherErrorIsNotClassified(t *testing.T) {
	repo, mock := newMock(t, "postgres")
	boom := &pq.Error{Code: "22001", Message: "value too long"}

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(postgresInsert)).WillReturnError(boom)

	err := repo.Insert(context.Background(), sampleCertificate())
	require.Error(t, err)
	assert.False(t, errors.Is(err, errs.ErrStoreUnavailable))
	assert.False(t, errors.Is(err, errs.ErrIdentifierCollision))
}

func TestGetRoundTripsNullAudit(t *testing.T) {
	repo, mock := newMock(t, "postgres")

	expectSchema(mock)
	mock.ExpectQuery(regexp.QuoteMeta(postgresSelect)).
		WithArgs("ABCD1234").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "code", "audit", "issued_at"}).
			AddRow("ABCD1234", "Ada", "print(15)", nil, issuedAt))

	cert, err := repo.Get(context.Background(), "ABCD1234")
	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.Equal(t, "Ada", cert.AuthorName)
	assert.Equal(t, "print(15)", cert.SourceText)
	assert.Nil(t, cert.AuditText)
	assert.True(t, issuedAt.Equal(cert.IssuedAt))
}

func TestGetConnectionFailure(t *testing.T) {
	repo, mock := newMock(t, "postgres")

	expectSchema(mock)
	mock.ExpectQuery(regexp.QuoteMeta(postgresSelect)).
		WillReturnError(&pq.Error{Code: "08006", Message: "connection failure"})

	_, err := repo.Get(context.Background(), "ABCD1234")
	assert.ErrorIs(t, err, errs.ErrStoreUnavailable)
}

func TestPing(t *testing.T) {
	repo, mock := newMock(t, "postgres")

	mock.ExpectPing()
	assert.NoError(t, repo.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	assert.ErrorIs(t, repo.Ping(context.Background()), errs.ErrStoreUnavailable)
}
