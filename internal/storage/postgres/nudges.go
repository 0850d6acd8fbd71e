package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/networknudge/networknudge/internal/domain"
)

func (s *Store) CountPendingSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM nudges WHERE user_id = $1 AND status = $2 AND created_at >= $3
	`, userID, string(domain.NudgeStatusPending), since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending nudges: %w", err)
	}

	return count, nil
}

func (s *Store) CreateNudge(ctx context.Context, nudge domain.Nudge) error {
	if nudge.ID == "" {
		nudge.ID = uuid.NewString()
	}

	if nudge.Status == "" {
		nudge.Status = domain.NudgeStatusPending
	}

	suggestionsJSON, err := json.Marshal(nudge.Suggestions)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO nudges (id, user_id, connection_id, type, activity_description, suggestions, status, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		nudge.ID,
		nudge.UserID,
		nudge.ConnectionID,
		nudge.Type,
		nudge.ActivityDescription,
		suggestionsJSON,
		string(nudge.Status),
		nudge.ScheduledFor,
	)
	if err != nil {
		return fmt.Errorf("failed to create nudge: %w", err)
	}

	return nil
}

func (s *Store) ListUnsentPending(ctx context.Context, userID string, limit int) ([]domain.DigestEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT n.id, n.user_id, n.connection_id, n.type, n.activity_description, n.suggestions,
			n.status, n.scheduled_for, n.created_at, c.id, c.linkedin_id, c.name, c.headline, c.profile_url
		FROM nudges n
		JOIN connections c ON c.id = n.connection_id
		WHERE n.user_id = $1 AND n.status = $2 AND n.sent_at IS NULL
		ORDER BY n.created_at
		LIMIT $3
	`, userID, string(domain.NudgeStatusPending), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending nudges: %w", err)
	}
	defer rows.Close()

	var entries []domain.DigestEntry
	for rows.Next() {
		var entry domain.DigestEntry
		var suggestionsJSON []byte
		var status string

		err := rows.Scan(
			&entry.Nudge.ID,
			&entry.Nudge.UserID,
			&entry.Nudge.ConnectionID,
			&entry.Nudge.Type,
			&entry.Nudge.ActivityDescription,
			&suggestionsJSON,
			&status,
			&entry.Nudge.ScheduledFor,
			&entry.Nudge.CreatedAt,
			&entry.Connection.ID,
			&entry.Connection.LinkedInID,
			&entry.Connection.Name,
			&entry.Connection.Headline,
			&entry.Connection.ProfileURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan nudge: %w", err)
		}

		entry.Nudge.Status = domain.NudgeStatus(status)
		entry.Connection.UserID = entry.Nudge.UserID

		if suggestionsJSON != nil {
			if err := json.Unmarshal(suggestionsJSON, &entry.Nudge.Suggestions); err != nil {
				return nil, fmt.Errorf("failed to unmarshal suggestions: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate nudges: %w", err)
	}

	return entries, nil
}

func (s *Store) MarkSent(ctx context.Context, nudgeIDs []string, sentAt time.Time) error {
	if len(nudgeIDs) == 0 {
		return nil
	}

	_, err := s.pool.Exec(ctx, `UPDATE nudges SET sent_at = $2 WHERE id = ANY($1)`, nudgeIDs, sentAt)
	if err != nil {
		return fmt.Errorf("failed to mark nudges sent: %w", err)
	}

	return nil
}
