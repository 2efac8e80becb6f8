package sqlstore

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// dialect holds what differs between backends: DDL, placeholder syntax and
// how a unique-constraint violation is reported.
type dialect struct {
	name            string
	schema          []string
	dollarParams    bool
	uniqueViolation func(error) bool
}

// rebind rewrites '?' placeholders to $n for dialects that need it. Queries
// in this package never contain literal question marks.
func (d dialect) rebind(query string) string {
	if !d.dollarParams {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var sqliteDialect = dialect{
	name: "sqlite",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'User',
			created_at    TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS asset_types (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS service_centers (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			name    TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city    TEXT NOT NULL DEFAULT '',
			state   TEXT NOT NULL DEFAULT '',
			zip     TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS service_appointments (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			asset_type_id     INTEGER NOT NULL REFERENCES asset_types(id),
			service_center_id INTEGER NOT NULL REFERENCES service_centers(id),
			appointment_date  TIMESTAMP NOT NULL,
			asset_make        TEXT NOT NULL DEFAULT '',
			asset_year        INTEGER NOT NULL DEFAULT 0,
			notes             TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMP NOT NULL,
			updated_at        TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_date ON service_appointments (appointment_date)`,
	},
	uniqueViolation: func(err error) bool {
		var se sqlite3.Error
		return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
	},
}

var postgresDialect = dialect{
	name:         "postgres",
	dollarParams: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            BIGSERIAL PRIMARY KEY,
			username      TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'User',
			created_at    TIMESTAMPTZ NOT NULL,
			CONSTRAINT users_username_key UNIQUE (username)
		)`,
		`CREATE TABLE IF NOT EXISTS asset_types (
			id   BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS service_centers (
			id      BIGSERIAL PRIMARY KEY,
			name    TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			city    TEXT NOT NULL DEFAULT '',
			state   TEXT NOT NULL DEFAULT '',
			zip     TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS service_appointments (
			id                BIGSERIAL PRIMARY KEY,
			asset_type_id     BIGINT NOT NULL REFERENCES asset_types(id),
			service_center_id BIGINT NOT NULL REFERENCES service_centers(id),
			appointment_date  TIMESTAMPTZ NOT NULL,
			asset_make        TEXT NOT NULL DEFAULT '',
			asset_year        INTEGER NOT NULL DEFAULT 0,
			notes             TEXT NOT NULL DEFAULT '',
			created_at        TIMESTAMPTZ NOT NULL,
			updated_at        TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_date ON service_appointments (appointment_date)`,
	},
	uniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
}
