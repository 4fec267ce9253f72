package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitSchema creates the clients/users tables when they do not exist yet.
// Columns mirror the document fields; ISO timestamps are stored as text and
// the epoch-ms column drives ordering.
func InitSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name TEXT NOT NULL,
		phone TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		service TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		date TEXT NOT NULL,
		ts BIGINT NOT NULL,
		source TEXT NOT NULL DEFAULT 'website_form',
		ip TEXT NOT NULL DEFAULT '',
		local_ref TEXT,
		assigned_to TEXT,
		assigned_to_name TEXT NOT NULL DEFAULT '',
		assigned_at TEXT NOT NULL DEFAULT '',
		completed_by TEXT NOT NULL DEFAULT '',
		completed_by_name TEXT NOT NULL DEFAULT '',
		completed_at TEXT NOT NULL DEFAULT ''
	);
	CREATE UNIQUE INDEX IF NOT EXISTS clients_local_ref_key
		ON clients (local_ref) WHERE local_ref IS NOT NULL;
	CREATE INDEX IF NOT EXISTS clients_ts_idx ON clients (ts DESC);
	CREATE INDEX IF NOT EXISTS clients_assigned_to_idx ON clients (assigned_to);

	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		specialty TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'tecnico',
		active BOOLEAN NOT NULL DEFAULT TRUE,
		password_h TEXT NOT NULL,
		created TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		last_login TEXT NOT NULL DEFAULT '',
		last_login_ip TEXT NOT NULL DEFAULT '',
		deactivated_at TEXT NOT NULL DEFAULT '',
		deactivated_by TEXT NOT NULL DEFAULT '',
		activated_at TEXT NOT NULL DEFAULT '',
		activated_by TEXT NOT NULL DEFAULT ''
	);
	`)
	return err
}
