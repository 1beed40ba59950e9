// Package postgres provides a PostgreSQL based implementation of
// storage.DocumentStore.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/storage/sqlcommon"
)

// Datastore provides a PostgreSQL based implementation of
// [storage.DocumentStore].
type Datastore struct {
	*sqlcommon.Store

	db               *sql.DB
	dbStatsCollector prometheus.Collector
}

var _ storage.DocumentStore = (*Datastore)(nil)

// New creates a new [Datastore] storage.
func New(uri string, cfg *sqlcommon.Config) (*Datastore, error) {
	db, err := sql.Open("pgx", uri)
	if err != nil {
		return nil, fmt.Errorf("initialize postgres connection: %w", err)
	}

	if cfg.MaxOpenConns != 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxIdleTime != 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
	if cfg.ConnMaxLifetime != 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	var collector prometheus.Collector
	if cfg.ExportMetrics {
		collector = collectors.NewDBStatsCollector(db, "shambalink")
		if err := prometheus.Register(collector); err != nil {
			return nil, fmt.Errorf("initialize metrics: %w", err)
		}
	}

	stbl := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).RunWith(db)

	return &Datastore{
		Store:            sqlcommon.NewStore(db, stbl, HandleSQLError, cfg.Logger),
		db:               db,
		dbStatsCollector: collector,
	}, nil
}

// Close see [storage.DocumentStore].Close.
func (d *Datastore) Close() {
	if d.dbStatsCollector != nil {
		prometheus.Unregister(d.dbStatsCollector)
	}
	d.db.Close()
}

// HandleSQLError processes a PostgreSQL error into one of the storage
// sentinel errors.
func HandleSQLError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 57014 query_canceled
		if pgErr.Code == "57014" {
			return storage.ErrCancelled
		}
	}
	return fmt.Errorf("sql error: %w", err)
}
