// Package postgres stores tokens, profiles, connections, nudges and subscriptions in PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

type StoreDeps struct {
	Context     context.Context
	DatabaseURL string
}

func New(deps StoreDeps) (*Store, error) {
	pool, err := pgxpool.New(deps.Context, deps.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}

	if err := pool.Ping(deps.Context); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	store := &Store{
		pool: pool,
	}

	if err := store.ensureTables(deps.Context); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure tables: %w", err)
	}

	return store, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

var schema = []struct {
	name string
	sql  string
}{
	{
		name: "user_profiles table",
		sql: `
		CREATE TABLE IF NOT EXISTS user_profiles (
			id TEXT PRIMARY KEY,
			full_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			linkedin_connected BOOLEAN NOT NULL DEFAULT FALSE,
			notification_email BOOLEAN NOT NULL DEFAULT TRUE,
			notification_frequency TEXT NOT NULL DEFAULT 'weekly',
			timezone TEXT NOT NULL DEFAULT 'UTC',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "user_credentials table",
		sql: `
		CREATE TABLE IF NOT EXISTS user_credentials (
			user_id TEXT PRIMARY KEY,
			linkedin_tokens JSONB,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "connections table",
		sql: `
		CREATE TABLE IF NOT EXISTS connections (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			linkedin_id TEXT NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			headline TEXT NOT NULL DEFAULT '',
			profile_url TEXT NOT NULL DEFAULT '',
			avatar_url TEXT NOT NULL DEFAULT '',
			last_activity_date TIMESTAMPTZ,
			last_activity_type TEXT NOT NULL DEFAULT '',
			last_activity_content TEXT NOT NULL DEFAULT '',
			engagement_count INT NOT NULL DEFAULT 0,
			last_engagement_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, linkedin_id)
		)`,
	},
	{
		name: "connections activity index",
		sql:  `CREATE INDEX IF NOT EXISTS idx_connections_activity ON connections(user_id, last_activity_date DESC)`,
	},
	{
		name: "nudges table",
		sql: `
		CREATE TABLE IF NOT EXISTS nudges (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			connection_id TEXT NOT NULL REFERENCES connections(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			activity_description TEXT NOT NULL DEFAULT '',
			suggestions JSONB NOT NULL DEFAULT '[]',
			status TEXT NOT NULL DEFAULT 'pending',
			scheduled_for TIMESTAMPTZ NOT NULL,
			sent_at TIMESTAMPTZ,
			acted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "nudges status index",
		sql:  `CREATE INDEX IF NOT EXISTS idx_nudges_user_status ON nudges(user_id, status, created_at)`,
	},
	{
		name: "subscriptions table",
		sql: `
		CREATE TABLE IF NOT EXISTS subscriptions (
			user_id TEXT PRIMARY KEY,
			plan_type TEXT NOT NULL DEFAULT 'free',
			status TEXT NOT NULL DEFAULT 'active',
			nudges_limit INT NOT NULL DEFAULT 5,
			stripe_subscription_id TEXT NOT NULL DEFAULT '',
			current_period_end TIMESTAMPTZ
		)`,
	},
}

func (s *Store) ensureTables(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}

	return nil
}
