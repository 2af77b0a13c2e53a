package lookup

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig configures ConnectPostgres.
type PostgresConfig struct {
	ConnectionString  string        `env:"PG_CONN_URL,required"`
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
}

// ConnectPostgres opens a pool and pings it. Failed attempts back off
// linearly: attempt n waits n*RetryInterval.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParsePostgresConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	var lastErr error
	for i := range max(cfg.RetryAttempts, 1) {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrPostgresNotReady, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrPostgresNotReady, lastErr)
}

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// PostgresColumn checks whether a value is present in a table column.
type PostgresColumn struct {
	db    Querier
	query string
}

// NewPostgresColumn creates a checker for column in table. table may be
// schema-qualified ("auth.users"). With FoldCase the column is compared
// through lower(), so the stored values need no normalization.
func NewPostgresColumn(db Querier, table, column string, opts ...Option) (*PostgresColumn, error) {
	if db == nil {
		return nil, ErrNilClient
	}
	if !identifierPattern.MatchString(table) {
		return nil, errors.Join(ErrInvalidIdentifier, fmt.Errorf("table %q", table))
	}
	if !identifierPattern.MatchString(column) || len(splitIdent(column)) != 1 {
		return nil, errors.Join(ErrInvalidIdentifier, fmt.Errorf("column %q", column))
	}

	o := newOptions(opts)
	col := pgx.Identifier{column}.Sanitize()
	cmp := col + " = $1"
	if o.fold {
		cmp = "lower(" + col + ") = lower($1)"
	}
	return &PostgresColumn{
		db:    db,
		query: fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s)", pgx.Identifier(splitIdent(table)).Sanitize(), cmp),
	}, nil
}

// Query returns the SQL statement issued by Exists.
func (c *PostgresColumn) Query() string { return c.query }

// Exists reports whether any row holds value.
func (c *PostgresColumn) Exists(ctx context.Context, value string) (bool, error) {
	var exists bool
	if err := c.db.QueryRow(ctx, c.query, strings.TrimSpace(value)).Scan(&exists); err != nil {
		return false, errors.Join(ErrLookupFailed, err)
	}
	return exists, nil
}

func splitIdent(s string) []string {
	if schema, name, ok := strings.Cut(s, "."); ok {
		return []string{schema, name}
	}
	return []string{s}
}
