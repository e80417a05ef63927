package pgkv

import (
	"context"
	"database/sql"
	"embed"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/trezcool/edutrack/storage/kv"
)

const (
	driverName    = "postgres"
	migrationsDir = "migrations"

	getQuery = `SELECT value FROM kv_store WHERE key = $1`
	putQuery = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var (
	gooseRunFunc = goose.Run // mockable
	nowFunc      = time.Now  // mockable
)

type store struct {
	db *sqlx.DB
}

var _ kv.Store = (*store)(nil)

// New wraps an open connection. The kv_store table must exist (see Migrate).
func New(db *sqlx.DB) kv.Store {
	return &store{db: db}
}

// Open connects to `dsn`, waits for the database to be ready and applies pending migrations.
func Open(dsn string) (kv.Store, error) {
	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db.DB); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	if err = Migrate(db.DB, "up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db), nil
}

// Connect opens `dsn` without migrating, for the migrate admin command.
func Connect(dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate runs a goose command (up, down, status, version, redo, reset, ...) against the embedded migrations.
func Migrate(db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(driverName); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := gooseRunFunc(command, db, migrationsDir, args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

func (s *store) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	if err := s.db.GetContext(ctx, &value, getQuery, key); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return nil, kv.ErrNotFound
		}
		return nil, errors.Wrapf(err, "getting %q", key)
	}
	return []byte(value), nil
}

func (s *store) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, putQuery, key, string(value), nowFunc().UTC()); err != nil {
		return errors.Wrapf(err, "putting %q", key)
	}
	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}
