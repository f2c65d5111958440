package certificaterepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jmoiron/sqlx"

	"gitlab.com/skillsnap.net/internal/adapter/database"
	"gitlab.com/skillsnap.net/internal/core/ports/primary"
	"gitlab.com/skillsnap.net/internal/core/ports/secondary"
	"gitlab.com/skillsnap.net/internal/domain"
	"gitlab.com/skillsnap.net/internal/static/errs"
	querybuilder "gitlab.com/skillsnap.net/internal/utils"
)

var _ secondary.CertificateRepository = (*certificateRepo)(nil)

type certificateRepo struct {
	db            *sqlx.DB
	logger        primary.Logger
	schema        string
	schemaTimeout time.Duration

	schemaReady atomic.Bool
}

// New creates the certificate repository. The table is created on first use,
// so the process can start while the database is still down. Each creation
// attempt is bounded by schemaTimeout.
func New(db *sqlx.DB, logger primary.Logger, schema string, schemaTimeout time.Duration) secondary.CertificateRepository {
	return &certificateRepo{
		db:            db,
		logger:        logger,
		schema:        schema,
		schemaTimeout: schemaTimeout,
	}
}

func (r *certificateRepo) table() string {
	name := domain.GetCertificateTable().TableName()
	if r.schema == "" {
		return name
	}
	return fmt.Sprintf("%s.%s", r.schema, name)
}

func (r *certificateRepo) rebind(query string) string {
	return sqlx.Rebind(sqlx.BindType(r.db.DriverName()), query)
}

// ensureSchema runs CREATE TABLE IF NOT EXISTS until it succeeds once. Concurrent
// callers may each run it; no caller waits on another.
func (r *certificateRepo) ensureSchema(ctx context.Context) error {
	if r.schemaReady.Load() {
		return nil
	}

	schemaCtx, cancel := context.WithTimeout(ctx, r.schemaTimeout)
	defer cancel()

	err := database.EnsureSchema(schemaCtx, r.db, r.table())
	if err != nil && schemaCtx.Err() != nil && ctx.Err() == nil && !errors.Is(err, errs.ErrStoreUnavailable) {
		err = fmt.Errorf("%w: schema setup timed out: %v", errs.ErrStoreUnavailable, err)
	}
	if err != nil {
		r.logger.Warn("Failed to ensure certificates table", "error", err)
		return err
	}

	r.schemaReady.Store(true)
	return nil
}

func (r *certificateRepo) Insert(ctx context.Context, cert *domain.Certificate) error {
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}

	certTbl := domain.GetCertificateTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Insert(certTbl.Columns()...).
		Into(certTbl.TableName()).
		Values(cert.ID, cert.AuthorName, cert.SourceText, cert.AuditText, cert.IssuedAt).
		Build()

	_, err := r.db.ExecContext(ctx, r.rebind(query), args...)
	return database.Classify(err)
}

func (r *certificateRepo) Get(ctx context.Context, id string) (*domain.Certificate, error) {
	if err := r.ensureSchema(ctx); err != nil {
		return nil, err
	}

	certTbl := domain.GetCertificateTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Select(certTbl.Columns()...).
		From(certTbl.TableName()).
		Where(fmt.Sprintf("%s = ?", certTbl.ID), id).
		Limit(1).
		Build()

	var cert domain.Certificate
	err := r.db.GetContext(ctx, &cert, r.rebind(query), args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, database.Classify(err)
	}

	cert.IssuedAt = cert.IssuedAt.UTC()
	return &cert, nil
}

func (r *certificateRepo) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return database.Classify(err)
	}
	return nil
}
