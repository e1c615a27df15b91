package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/teaching-scheduler-api/internal/models"
)

// QueryObserver receives query timings.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// Store is the gateway to the hosted Postgres backend. Besides row access it
// remembers the last known connection state so health reporting can answer
// without touching the network.
type Store struct {
	db       *sqlx.DB
	logger   *zap.Logger
	observer QueryObserver

	mu      sync.RWMutex
	state   models.ConnectionState
	lastErr error
}

// NewStore wraps db. The store starts in the connecting state until the first ping.
func NewStore(db *sqlx.DB, logger *zap.Logger, observer QueryObserver) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		db:       db,
		logger:   logger,
		observer: observer,
		state:    models.ConnectionConnecting,
	}
}

// Connect verifies connectivity once and records the outcome.
func (s *Store) Connect(ctx context.Context) error {
	ok, err := s.Ping(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("database ping returned no result")
	}
	return nil
}

// Ping runs a trivial query. It reports false without an error when the
// database answered but not as expected, and an error when the query failed.
func (s *Store) Ping(ctx context.Context) (bool, error) {
	if s.db == nil {
		s.setState(models.ConnectionDisconnected, nil)
		return false, nil
	}

	start := time.Now()
	var one int
	err := s.db.QueryRowxContext(ctx, "SELECT 1").Scan(&one)
	s.observe("ping", start)
	if err != nil {
		if !callerGone(ctx, err) {
			s.setState(models.ConnectionError, err)
		}
		return false, fmt.Errorf("ping database: %w", err)
	}
	if one != 1 {
		s.setState(models.ConnectionError, fmt.Errorf("unexpected ping result %d", one))
		return false, nil
	}
	s.setState(models.ConnectionConnected, nil)
	return true, nil
}

// FetchRows returns up to limit rows of table. A non-positive limit fetches everything.
func (s *Store) FetchRows(ctx context.Context, table string, limit int) ([]models.Row, error) {
	if s.db == nil {
		return nil, fmt.Errorf("fetch rows from %s: no database configured", table)
	}
	query := "SELECT * FROM " + pq.QuoteIdentifier(table)
	var args []interface{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	start := time.Now()
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		s.observe("fetch:"+table, start)
		s.recordFailure(err)
		return nil, fmt.Errorf("fetch rows from %s: %w", table, err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	s.observe("fetch:"+table, start)
	if err != nil {
		return nil, fmt.Errorf("scan rows from %s: %w", table, err)
	}
	return result, nil
}

// RPC calls a set-returning database function using named argument notation.
func (s *Store) RPC(ctx context.Context, fn string, params map[string]interface{}) ([]models.Row, error) {
	if s.db == nil {
		return nil, fmt.Errorf("rpc %s: no database configured", fn)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	placeholders := make([]string, len(keys))
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("%s => $%d", pq.QuoteIdentifier(k), i+1)
		args[i] = params[k]
	}
	query := fmt.Sprintf("SELECT * FROM %s(%s)", pq.QuoteIdentifier(fn), strings.Join(placeholders, ", "))

	start := time.Now()
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		s.observe("rpc:"+fn, start)
		s.recordFailure(err)
		return nil, fmt.Errorf("rpc %s: %w", fn, err)
	}
	defer rows.Close()

	result, err := scanRows(rows)
	s.observe("rpc:"+fn, start)
	if err != nil {
		return nil, fmt.Errorf("scan rpc %s: %w", fn, err)
	}
	return result, nil
}

// Status returns the last known connection state.
func (s *Store) Status() models.ConnectionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Offline reports whether the store is not currently connected.
func (s *Store) Offline() bool {
	return s.Status() != models.ConnectionConnected
}

// LastError returns the most recent connection error, if any.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Monitor pings on every tick until ctx is cancelled, logging state changes.
func (s *Store) Monitor(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			before := s.Status()
			_, err := s.Ping(ctx)
			if after := s.Status(); after != before {
				fields := []zap.Field{zap.String("from", string(before)), zap.String("to", string(after))}
				if err != nil {
					fields = append(fields, zap.Error(err))
				}
				s.logger.Warn("database connection state changed", fields...)
			}
		}
	}
}

// Close releases the pool and marks the store disconnected.
func (s *Store) Close() error {
	s.setState(models.ConnectionDisconnected, nil)
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) setState(state models.ConnectionState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	if err != nil || state == models.ConnectionConnected {
		s.lastErr = err
	}
}

// recordFailure downgrades the state only for connection level failures;
// query errors such as a missing table leave it untouched.
func (s *Store) recordFailure(err error) {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		s.setState(models.ConnectionError, err)
	}
}

// callerGone reports whether err comes from the caller abandoning ctx rather
// than from the database. Such failures leave the cached state untouched.
func callerGone(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func (s *Store) observe(label string, start time.Time) {
	if s.observer != nil {
		s.observer.ObserveDBQuery(label, time.Since(start))
	}
}

func scanRows(rows *sqlx.Rows) ([]models.Row, error) {
	result := make([]models.Row, 0)
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, err
		}
		for k, v := range row {
			if b, ok := v.([]byte); ok {
				row[k] = string(b)
			}
		}
		result = append(result, models.Row(row))
	}
	return result, rows.Err()
}
