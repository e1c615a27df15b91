package database

import (
	"fmt"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/noah-isme/teaching-scheduler-api/pkg/config"
)

// NewPostgres returns a configured PostgreSQL client. The pool is opened
// lazily; callers decide when to verify connectivity so the service can
// start while the hosted database is unreachable.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	return db, nil
}

// DSN builds the lib/pq connection string. DATABASE_URL wins over discrete
// fields; connect_timeout is applied to both forms.
func DSN(cfg config.DatabaseConfig) (string, error) {
	timeout := int(cfg.ConnectTimeout / time.Second)
	if timeout <= 0 {
		timeout = 5
	}

	if cfg.URL != "" {
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", fmt.Errorf("parse database url: %w", err)
		}
		if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			return "", fmt.Errorf("unsupported database url scheme %q", u.Scheme)
		}
		q := u.Query()
		if q.Get("connect_timeout") == "" {
			q.Set("connect_timeout", fmt.Sprintf("%d", timeout))
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
		timeout,
	), nil
}
