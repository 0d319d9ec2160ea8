package config

import (
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DSN returns the PostgreSQL connection string for the companion web
// database. The result contains the password in cleartext; it exists to be
// handed to the driver, never to be logged.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Database,
	}
	if d.User != "" {
		if d.Password.IsSet() {
			u.User = url.UserPassword(d.User, d.Password.Reveal())
		} else {
			u.User = url.User(d.User)
		}
	}
	sslmode := "require"
	if !d.SSLEnabled() {
		sslmode = "disable"
	}
	u.RawQuery = "sslmode=" + sslmode
	return u.String()
}

// PoolConfig parses the section into a pgx pool configuration for the
// database-access stage. Parsing only; no connection is opened here.
func (d DatabaseConfig) PoolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(d.DSN())
	if err != nil {
		return nil, fmt.Errorf("config: database settings: %w", err)
	}
	return cfg, nil
}
