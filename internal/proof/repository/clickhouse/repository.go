// Package clickhouse reads and writes the block tx-id index kept in ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/goodnatureofminers/blockinsight7000-proof/internal/proof/model"
)

// ErrNotFound is returned when the index holds no rows for the requested block window.
var ErrNotFound = errors.New("block not indexed")

type Repository struct {
	conn    Conn
	metrics Metrics
	network model.Network
}

func NewRepository(dsn string, network model.Network, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if network == "" {
		return nil, errors.New("network is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: driverConn{conn: conn}, metrics: metrics, network: network}, nil
}

// Close releases the underlying connection.
func (r *Repository) Close() error {
	return r.conn.Close()
}

type driverConn struct {
	conn driver.Conn
}

func (c driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c driverConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	batch, err := c.conn.PrepareBatch(ctx, query)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (c driverConn) Close() error {
	return c.conn.Close()
}
