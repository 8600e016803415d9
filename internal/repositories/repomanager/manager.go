// Package repomanager opens vocabulary stores: it applies the embedded schema
// with goose and runs work inside a scope that commits on success and rolls
// back on error or panic.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/dbx"
	"github.com/ahrism10M501/voca/internal/logging"
	"github.com/ahrism10M501/voca/internal/migrations"
	"github.com/ahrism10M501/voca/internal/repositories/vocab"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

type Option func(*Manager)

func WithLogger(l logging.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithOpener replaces sql.Open, mostly for tests.
func WithOpener(open dbx.OpenFunc) Option {
	return func(m *Manager) { m.open = open }
}

// WithReconnect sets the attempt count and initial backoff used by Ready.
func WithReconnect(attempts uint64, backoff time.Duration) Option {
	return func(m *Manager) {
		m.attempts = attempts
		m.backoff = backoff
	}
}

// Manager owns the store location and hands out one scope at a time.
type Manager struct {
	dialect  vocab.Dialect
	dsn      string
	log      logging.Logger
	open     dbx.OpenFunc
	attempts uint64
	backoff  time.Duration

	active atomic.Bool
}

func New(driver, dsn string, opts ...Option) (*Manager, error) {
	d, err := vocab.DialectFor(driver)
	if err != nil {
		return nil, err
	}
	m := &Manager{
		dialect:  d,
		dsn:      dsn,
		log:      logging.NewNop(),
		open:     sql.Open,
		attempts: 1,
		backoff:  100 * time.Millisecond,
	}
	for _, o := range opts {
		o(m)
	}
	return m, nil
}

func (m *Manager) Dialect() vocab.Dialect {
	return m.dialect
}

// Migrate applies the embedded schema for the manager's dialect.
func (m *Manager) Migrate(ctx context.Context) error {
	db, err := m.open(m.dialect.Driver, m.dsn)
	if err != nil {
		return common.StoreError("open database", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, log: m.log})
	if err := goose.SetDialect(m.dialect.Goose); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.MigrationsDir()); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Ready waits for the store to accept a connection, retrying with
// exponential backoff, and releases it again.
func (m *Manager) Ready(ctx context.Context) error {
	conn := m.newConn()
	if err := dbx.Reconnect(ctx, conn, m.attempts, m.backoff); err != nil {
		return err
	}
	return conn.Close()
}

// Scope connects, runs fn with a store bound to the connection, then
// commits and closes. If fn returns an error or panics the work is rolled
// back and the connection closed before the error or panic propagates.
// The store must not be retained: after Scope returns every call on it
// fails with common.ErrNotConnected.
func (m *Manager) Scope(ctx context.Context, fn func(ctx context.Context, store vocab.Store) error) (err error) {
	if !m.active.CompareAndSwap(false, true) {
		return common.ErrScopeActive
	}
	defer m.active.Store(false)

	conn := m.newConn()
	if err := conn.Connect(ctx); err != nil {
		return err
	}

	log := m.log.With("scope_id", uuid.NewString())
	store := vocab.NewSQLStore(conn, m.dialect, log)

	defer func() {
		if p := recover(); p != nil {
			_ = conn.Rollback()
			_ = conn.Close()
			log.Error(ctx, "scope panicked, rolled back", "panic", p)
			panic(p)
		}
		if err != nil {
			if rbErr := conn.Rollback(); rbErr != nil {
				log.Error(ctx, "rollback failed", "error", rbErr)
			}
			_ = conn.Close()
			log.Warn(ctx, "scope rolled back", "error", err)
			return
		}
		if err = conn.Commit(); err != nil {
			_ = conn.Close()
			return
		}
		err = conn.Close()
		log.Debug(ctx, "scope committed")
	}()

	err = fn(ctx, store)
	return err
}

func (m *Manager) newConn() *dbx.Conn {
	return dbx.NewConn(m.dialect.Driver, m.dsn, dbx.WithOpener(m.open), dbx.WithLogger(m.log))
}

// gooseLogger routes goose output to our logger at debug level.
type gooseLogger struct {
	ctx context.Context
	log logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Debug(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(g.ctx, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}
