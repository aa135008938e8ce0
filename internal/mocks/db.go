package mocks

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"sync/atomic"
)

// errNoopStatement is returned for any SQL sent to the no-op driver.
var errNoopStatement = errors.New("mocks: no-op database does not execute statements")

// TxCounter records how transactions on a mock database ended.
type TxCounter struct {
	Begun      atomic.Int64
	Committed  atomic.Int64
	RolledBack atomic.Int64
}

type noopDriver struct{}

// Open implements driver.Driver. The DSN is unused.
func (noopDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("mocks: open the no-op driver through NewMockDB")
}

type noopConnector struct {
	counter *TxCounter
	pingErr *atomic.Pointer[error]
}

func (c noopConnector) Connect(context.Context) (driver.Conn, error) {
	return &noopConn{counter: c.counter, pingErr: c.pingErr}, nil
}

func (noopConnector) Driver() driver.Driver { return noopDriver{} }

type noopConn struct {
	counter *TxCounter
	pingErr *atomic.Pointer[error]
}

func (c *noopConn) Prepare(string) (driver.Stmt, error) { return nil, errNoopStatement }
func (c *noopConn) Close() error                        { return nil }

func (c *noopConn) Begin() (driver.Tx, error) {
	c.counter.Begun.Add(1)
	return noopTx{counter: c.counter}, nil
}

// Ping implements driver.Pinger.
func (c *noopConn) Ping(context.Context) error {
	if p := c.pingErr.Load(); p != nil {
		return *p
	}
	return nil
}

type noopTx struct {
	counter *TxCounter
}

func (t noopTx) Commit() error {
	t.counter.Committed.Add(1)
	return nil
}

func (t noopTx) Rollback() error {
	t.counter.RolledBack.Add(1)
	return nil
}

// MockDB wraps a *sql.DB whose connections accept transactions and pings
// but refuse to execute SQL.
type MockDB struct {
	*sql.DB
	Tx      *TxCounter
	pingErr *atomic.Pointer[error]
}

// NewMockDB creates a new MockDB. Close it when done.
func NewMockDB() *MockDB {
	counter := &TxCounter{}
	pingErr := &atomic.Pointer[error]{}
	db := sql.OpenDB(noopConnector{counter: counter, pingErr: pingErr})
	return &MockDB{DB: db, Tx: counter, pingErr: pingErr}
}

// SetPingError makes subsequent pings fail with err, or succeed again when err is nil.
func (m *MockDB) SetPingError(err error) {
	if err == nil {
		m.pingErr.Store(nil)
		return
	}
	m.pingErr.Store(&err)
}
