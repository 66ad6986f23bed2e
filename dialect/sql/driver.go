package sql

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/minyyy/spark"
	"github.com/minyyy/spark/dialect"
)

// Driver runs compiled statements against a database/sql backend. Every
// error returned by the backend passes through the dialect's Classify,
// so callers always see one of the engine's semantic error categories.
type Driver struct {
	db      *sql.DB
	dialect dialect.Dialect
	cfg     *spark.Config
	cache   Cache
}

// Option configures a Driver.
type Option func(*Driver)

// WithConfig attaches the engine configuration. The pushdown section
// controls which functions and aggregates may be compiled.
func WithConfig(cfg *spark.Config) Option {
	return func(d *Driver) {
		d.cfg = cfg
	}
}

// WithCache attaches a compile cache for pushdown SQL.
func WithCache(c Cache) Option {
	return func(d *Driver) {
		d.cache = c
	}
}

// WithDialect overrides the dialect selected from the connection URL.
func WithDialect(dl dialect.Dialect) Option {
	return func(d *Driver) {
		d.dialect = dl
	}
}

// Open wraps database/sql.Open and selects the dialect from the
// connection URL via the engine registry.
func Open(driverName, url string, opts ...Option) (*Driver, error) {
	db, err := sql.Open(driverName, url)
	if err != nil {
		return nil, err
	}
	return OpenDB(url, db, opts...), nil
}

// OpenDB wraps an existing database/sql.DB with a Driver.
func OpenDB(url string, db *sql.DB, opts ...Option) *Driver {
	d := &Driver{db: db, dialect: dialect.For(url)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB returns the underlying *sql.DB instance.
func (d *Driver) DB() *sql.DB { return d.db }

// Dialect returns the dialect serving this connection.
func (d *Driver) Dialect() dialect.Dialect { return d.dialect }

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.db.Close() }

// Exec executes a statement. Backend errors come back classified.
func (d *Driver) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := d.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, d.dialect.Classify(err.Error(), err)
	}
	return res, nil
}

// Query executes a query. Backend errors come back classified.
func (d *Driver) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, d.dialect.Classify(err.Error(), err)
	}
	return rows, nil
}

// Tx starts a transaction whose errors come back classified.
func (d *Driver) Tx(ctx context.Context) (*Tx, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, d.dialect.Classify(err.Error(), err)
	}
	return &Tx{tx: tx, dialect: d.dialect}, nil
}

// Tx is a transaction scoped to a single connection.
type Tx struct {
	tx      *sql.Tx
	dialect dialect.Dialect
}

// Exec executes a statement within the transaction.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, t.dialect.Classify(err.Error(), err)
	}
	return res, nil
}

// Query executes a query within the transaction.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, t.dialect.Classify(err.Error(), err)
	}
	return rows, nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback rolls back the transaction.
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// CompileExpr compiles e for this connection's dialect, honoring the
// configured function deny list and the compile cache when present.
func (d *Driver) CompileExpr(e Expr) (string, bool) {
	if d.cfg != nil {
		for _, name := range d.cfg.Pushdown.DisabledFunctions {
			if ContainsFunc(e, name) {
				slog.Warn("pushdown disabled by configuration", "func", strings.ToUpper(name), "expr", Sprint(e))
				return "", false
			}
		}
	}
	key := d.dialect.Name() + ":" + fingerprint(e)
	if d.cache != nil {
		if s, ok, hit := cacheGet(d.cache, key); hit {
			return s, ok
		}
	}
	s, ok := CompileExpr(d.dialect, e)
	if d.cache != nil {
		cacheSet(d.cache, key, s, ok)
	}
	return s, ok
}

// CompileAggregate compiles the aggregate call for this connection's
// dialect. Aggregate pushdown can be switched off in configuration.
func (d *Driver) CompileAggregate(a *AggregateFunc) (string, bool) {
	if d.cfg != nil && !d.cfg.Pushdown.Aggregates {
		return "", false
	}
	return CompileAggregateFunc(d.dialect, a)
}
