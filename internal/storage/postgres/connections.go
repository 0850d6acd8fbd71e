package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/networknudge/networknudge/internal/domain"
)

const connectionColumns = `id, user_id, linkedin_id, name, headline, profile_url, avatar_url,
	last_activity_date, last_activity_type, last_activity_content, engagement_count, last_engagement_date, created_at`

func scanConnection(row pgx.Row) (domain.Connection, error) {
	var connection domain.Connection

	err := row.Scan(
		&connection.ID,
		&connection.UserID,
		&connection.LinkedInID,
		&connection.Name,
		&connection.Headline,
		&connection.ProfileURL,
		&connection.AvatarURL,
		&connection.LastActivityDate,
		&connection.LastActivityType,
		&connection.LastActivityContent,
		&connection.EngagementCount,
		&connection.LastEngagementDate,
		&connection.CreatedAt,
	)

	return connection, err
}

func (s *Store) UpsertConnections(ctx context.Context, userID string, connections []domain.Connection) (int, error) {
	if len(connections) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, connection := range connections {
		batch.Queue(`
			INSERT INTO connections (id, user_id, linkedin_id, name, headline, profile_url, avatar_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, linkedin_id) DO UPDATE SET
				name = EXCLUDED.name,
				headline = EXCLUDED.headline,
				profile_url = EXCLUDED.profile_url,
				avatar_url = EXCLUDED.avatar_url
		`,
			uuid.NewString(),
			userID,
			connection.LinkedInID,
			connection.Name,
			connection.Headline,
			connection.ProfileURL,
			connection.AvatarURL,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	written := 0
	for range connections {
		tag, err := results.Exec()
		if err != nil {
			return written, fmt.Errorf("failed to upsert connection: %w", err)
		}
		written += int(tag.RowsAffected())
	}

	return written, nil
}

func (s *Store) UpdateLastActivity(ctx context.Context, userID, linkedInID string, activity domain.ConnectionActivity) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE connections
		SET last_activity_date = $3, last_activity_type = $4, last_activity_content = $5
		WHERE user_id = $1 AND linkedin_id = $2
			AND (last_activity_date IS NULL OR last_activity_date <= $3)
	`, userID, linkedInID, activity.Date, activity.Type, activity.Content)
	if err != nil {
		return fmt.Errorf("failed to update connection activity: %w", err)
	}

	return nil
}

func (s *Store) ListRecentlyActive(ctx context.Context, userID string, limit int) ([]domain.Connection, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+connectionColumns+`
		FROM connections
		WHERE user_id = $1
		ORDER BY last_activity_date DESC NULLS LAST, created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	defer rows.Close()

	var connections []domain.Connection
	for rows.Next() {
		connection, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		connections = append(connections, connection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate connections: %w", err)
	}

	return connections, nil
}
