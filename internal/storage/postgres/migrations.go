package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema statements, applied in order on startup. users and groups come
// first because the other tables reference them. seq breaks same-second
// created_at ties in insertion order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS group_members (
		group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		joined_at BIGINT NOT NULL,
		left_at BIGINT,
		PRIMARY KEY (group_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		seq BIGSERIAL,
		group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		payer_id TEXT NOT NULL REFERENCES users(id),
		description TEXT NOT NULL,
		amount BIGINT NOT NULL,
		split_kind TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS expense_splits (
		expense_id TEXT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL REFERENCES users(id),
		amount BIGINT NOT NULL,
		position INT NOT NULL DEFAULT 0,
		PRIMARY KEY (expense_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS settlements (
		id TEXT PRIMARY KEY,
		seq BIGSERIAL,
		group_id TEXT NOT NULL REFERENCES groups(id) ON DELETE CASCADE,
		from_user_id TEXT NOT NULL REFERENCES users(id),
		to_user_id TEXT NOT NULL REFERENCES users(id),
		amount BIGINT NOT NULL,
		created_at BIGINT NOT NULL,
		created_by TEXT NOT NULL,
		note TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_group_members_group_id ON group_members(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_group_id ON expenses(group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expense_splits_expense_id ON expense_splits(expense_id)`,
	`CREATE INDEX IF NOT EXISTS idx_settlements_group_id ON settlements(group_id)`,
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
