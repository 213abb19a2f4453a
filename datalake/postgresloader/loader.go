package postgresloader

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
	"github.com/AntonStoeckl/synthetic-datalake-go/datalake/postgresloader/internal/adapters"
)

const (
	defaultBatchSize         = 1000
	dialectPostgres          = "postgres"
	colClientID              = "client_id"
	colProductID             = "product_id"
	logMsgSQLExecuted        = "executed sql for: "
	logMsgSetLoaded          = "entity set loaded"
	logMsgLoadCompleted      = "load completed"
	logMsgBuildInsertFailed  = "failed to build insert statement"
	logMsgDBExecFailed       = "database execution failed"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrSet               = "set"
	logAttrRows              = "rows"
	logAttrInserted          = "inserted"
	logAttrBatches           = "batches"
	logAttrDurationMS        = "duration_ms"
	logActionCreateTable     = "create table"
	logActionTruncate        = "truncate"
	logActionInsert          = "insert"
	logActionCount           = "count"
)

// Loader writes datasets into PostgreSQL.
type Loader struct {
	db        adapters.DBAdapter
	batchSize int
	truncate  bool
	logger    Logger
}

// SetReport summarizes the load of one entity set.
type SetReport struct {
	Rows     int
	Inserted int64
	Batches  int
}

// Report summarizes a Load.
type Report struct {
	Sets     map[datalake.EntitySet]SetReport
	Duration time.Duration
}

// NewLoaderFromPGXPool creates a new Loader using a pgx Pool with optional configuration.
func NewLoaderFromPGXPool(db *pgxpool.Pool, options ...Option) (*Loader, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newLoader(adapters.NewPGXAdapter(db), options...)
}

// NewLoaderFromSQLDB creates a new Loader using a sql.DB with optional configuration.
func NewLoaderFromSQLDB(db *sql.DB, options ...Option) (*Loader, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newLoader(adapters.NewSQLAdapter(db), options...)
}

// NewLoaderFromSQLX creates a new Loader using a sqlx.DB with optional configuration.
func NewLoaderFromSQLX(db *sqlx.DB, options ...Option) (*Loader, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newLoader(adapters.NewSQLXAdapter(db), options...)
}

func newLoader(db adapters.DBAdapter, options ...Option) (*Loader, error) {
	l := &Loader{
		db:        db,
		batchSize: defaultBatchSize,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// EnsureSchema creates every data lake table that does not exist yet.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	for _, table := range tables {
		if _, err := l.exec(ctx, table.createStatement(), logActionCreateTable); err != nil {
			return err
		}
	}

	return nil
}

// Truncate empties all data lake tables.
func (l *Loader) Truncate(ctx context.Context) error {
	_, err := l.exec(ctx, truncateStatement(), logActionTruncate)
	return err
}

// Load creates missing tables, truncates them if configured, and inserts every entity set of the dataset.
// Rows whose primary key already exists are skipped.
func (l *Loader) Load(ctx context.Context, dataset datalake.Dataset) (Report, error) {
	start := time.Now()
	report := Report{Sets: make(map[datalake.EntitySet]SetReport, len(tables))}

	if err := l.EnsureSchema(ctx); err != nil {
		return Report{}, err
	}

	if l.truncate {
		if err := l.Truncate(ctx); err != nil {
			return Report{}, err
		}
	}

	for _, table := range tables {
		setReport, err := l.loadTable(ctx, table, rowsFor(table.set, dataset))
		if err != nil {
			return Report{}, err
		}

		report.Sets[table.set] = setReport
	}

	report.Duration = time.Since(start)

	l.logOperation(logMsgLoadCompleted, logAttrDurationMS, durationToMilliseconds(report.Duration))

	return report, nil
}

func (l *Loader) loadTable(ctx context.Context, table tableSchema, rows [][]any) (SetReport, error) {
	start := time.Now()
	setReport := SetReport{Rows: len(rows)}

	for first := 0; first < len(rows); first += l.batchSize {
		last := min(first+l.batchSize, len(rows))

		sqlQuery, buildErr := buildInsertStatement(table, rows[first:last])
		if buildErr != nil {
			if l.logger != nil {
				l.logger.Error(logMsgBuildInsertFailed, logAttrError, buildErr.Error(), logAttrSet, string(table.set))
			}

			return SetReport{}, buildErr
		}

		inserted, execErr := l.exec(ctx, sqlQuery, logActionInsert)
		if execErr != nil {
			return SetReport{}, execErr
		}

		setReport.Inserted += inserted
		setReport.Batches++
	}

	l.logOperation(logMsgSetLoaded,
		logAttrSet, string(table.set),
		logAttrRows, setReport.Rows,
		logAttrInserted, setReport.Inserted,
		logAttrBatches, setReport.Batches,
		logAttrDurationMS, durationToMilliseconds(time.Since(start)),
	)

	return setReport, nil
}

func buildInsertStatement(table tableSchema, rows [][]any) (string, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(string(table.set)).
		Cols(table.columnNames()...).
		Vals(rows...).
		OnConflict(goqu.DoNothing())

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingStatementFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// Count returns the number of rows per data lake table.
func (l *Loader) Count(ctx context.Context) (map[datalake.EntitySet]int64, error) {
	counts := make(map[datalake.EntitySet]int64, len(tables))

	for _, table := range tables {
		sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
			From(string(table.set)).
			Select(goqu.COUNT(goqu.Star())).
			ToSQL()
		if toSQLErr != nil {
			return nil, errors.Join(ErrBuildingStatementFailed, toSQLErr)
		}

		count, err := l.queryCount(ctx, sqlQuery)
		if err != nil {
			return nil, err
		}

		counts[table.set] = count
	}

	return counts, nil
}

func (l *Loader) queryCount(ctx context.Context, sqlQuery string) (int64, error) {
	start := time.Now()
	rows, queryErr := l.db.Query(ctx, sqlQuery)
	l.logQueryWithDuration(sqlQuery, logActionCount, time.Since(start))

	if queryErr != nil {
		if l.logger != nil {
			l.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(ErrCountingRowsFailed, queryErr)
	}
	defer l.closeRows(rows)

	var count int64
	if rows.Next() {
		if scanErr := rows.Scan(&count); scanErr != nil {
			return 0, errors.Join(ErrCountingRowsFailed, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return 0, errors.Join(ErrCountingRowsFailed, rowsErr)
	}

	return count, nil
}

// exec executes a statement and returns the number of affected rows.
func (l *Loader) exec(ctx context.Context, sqlQuery string, action string) (int64, error) {
	start := time.Now()
	result, execErr := l.db.Exec(ctx, sqlQuery)
	l.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if execErr != nil {
		if l.logger != nil {
			l.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return 0, errors.Join(ErrExecutingStatementFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		if l.logger != nil {
			l.logger.Error(logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		}

		return 0, errors.Join(ErrExecutingStatementFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

func (l *Loader) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if l.logger != nil {
			l.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (l *Loader) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if l.logger != nil {
		l.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level.
func (l *Loader) logOperation(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func durationToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
