package postgresloader

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// Supported connection types.
const (
	DriverPGX  = "pgx"
	DriverSQL  = "sql"
	DriverSQLX = "sqlx"
)

const (
	defaultMaxConnections     = 10
	defaultMinConnections     = 2
	defaultMaxIdleConnections = 2
	defaultMaxConnLifetime    = time.Hour
	defaultMaxConnIdleTime    = time.Minute * 5
	defaultConnectTimeout     = time.Second * 5
	postgresDriverName        = "postgres"
)

// Drivers lists the supported connection types.
func Drivers() []string {
	return []string{DriverPGX, DriverSQL, DriverSQLX}
}

// Open connects to the database behind dsn with the given connection type and returns a Loader on top of it.
// The returned close function releases the connection; it is nil when Open fails.
func Open(ctx context.Context, driver string, dsn string, options ...Option) (*Loader, func(), error) {
	if dsn == "" {
		return nil, nil, ErrEmptyDSN
	}

	switch driver {
	case DriverPGX, "":
		return openPGXPool(ctx, dsn, options...)

	case DriverSQL:
		db, err := openSQLDB(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		loader, err := NewLoaderFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return loader, func() { _ = db.Close() }, nil

	case DriverSQLX:
		db, err := openSQLDB(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}

		dbx := sqlx.NewDb(db, postgresDriverName)

		loader, err := NewLoaderFromSQLX(dbx, options...)
		if err != nil {
			_ = dbx.Close()
			return nil, nil, err
		}

		return loader, func() { _ = dbx.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

func openPGXPool(ctx context.Context, dsn string, options ...Option) (*Loader, func(), error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse dsn: %w", err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	loader, err := NewLoaderFromPGXPool(pool, options...)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	return loader, pool.Close, nil
}

func openSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open(postgresDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	return db, nil
}
