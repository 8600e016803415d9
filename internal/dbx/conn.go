package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ahrism10M501/voca/internal/common"
	"github.com/ahrism10M501/voca/internal/logging"
)

// OpenFunc opens a database handle. sql.Open is the default.
type OpenFunc func(driverName, dsn string) (*sql.DB, error)

type ConnOption func(*Conn)

func WithOpener(open OpenFunc) ConnOption {
	return func(c *Conn) { c.open = open }
}

func WithLogger(l logging.Logger) ConnOption {
	return func(c *Conn) { c.log = l }
}

// Conn owns one connection to a named store and the transaction running on
// it. Statements issued through Cursor run inside that transaction until
// Commit or Rollback; the next Cursor call begins a new one.
//
// Conn is not safe for concurrent use.
type Conn struct {
	driver string
	dsn    string
	open   OpenFunc
	log    logging.Logger

	db *sql.DB
	tx *sql.Tx
}

func NewConn(driver, dsn string, opts ...ConnOption) *Conn {
	c := &Conn{driver: driver, dsn: dsn, open: sql.Open, log: logging.NewNop()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Conn) Connected() bool {
	return c.db != nil
}

// Connect opens the store. It is a no-op when already connected.
func (c *Conn) Connect(ctx context.Context) error {
	if c.db != nil {
		c.log.Debug(ctx, "already connected", "driver", c.driver)
		return nil
	}

	db, err := c.open(c.driver, c.dsn)
	if err != nil {
		return common.StoreError("open database", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return common.StoreError("ping database", err)
	}

	c.db = db
	c.log.Debug(ctx, "connected", "driver", c.driver)
	return nil
}

// Cursor returns the live transactional handle, beginning a transaction if
// none is active.
func (c *Conn) Cursor(ctx context.Context) (DBTX, error) {
	if c.db == nil {
		return nil, common.ErrNotConnected
	}
	if c.tx == nil {
		tx, err := c.db.BeginTx(ctx, nil)
		if err != nil {
			return nil, common.StoreError("begin transaction", err)
		}
		c.tx = tx
	}
	return c.tx, nil
}

// Commit commits the active transaction. Without one it does nothing.
func (c *Conn) Commit() error {
	if c.db == nil {
		return fmt.Errorf("commit: %w", common.ErrNotConnected)
	}
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	if err := tx.Commit(); err != nil {
		return common.StoreError("commit", err)
	}
	return nil
}

// Rollback discards the active transaction. Without one it does nothing.
func (c *Conn) Rollback() error {
	if c.db == nil {
		return fmt.Errorf("rollback: %w", common.ErrNotConnected)
	}
	if c.tx == nil {
		return nil
	}
	tx := c.tx
	c.tx = nil
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return common.StoreError("rollback", err)
	}
	return nil
}

// Close discards any uncommitted work and releases the connection.
func (c *Conn) Close() error {
	if c.db == nil {
		return fmt.Errorf("close: %w", common.ErrNotConnected)
	}
	rbErr := c.Rollback()

	db := c.db
	c.db = nil
	if err := db.Close(); err != nil {
		return common.StoreError("close database", err)
	}
	c.log.Debug(context.Background(), "connection closed", "driver", c.driver)
	return rbErr
}
