package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/networknudge/networknudge/internal/domain"
)

const profileColumns = `id, full_name, email, linkedin_connected, notification_email, notification_frequency, timezone, created_at`

func scanProfile(row pgx.Row) (domain.Profile, error) {
	var profile domain.Profile
	var frequency string

	err := row.Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Email,
		&profile.LinkedInConnected,
		&profile.NotificationEmail,
		&frequency,
		&profile.Timezone,
		&profile.CreatedAt,
	)
	profile.NotificationFrequency = domain.NotificationFrequency(frequency)

	return profile, err
}

func (s *Store) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	profile, err := scanProfile(s.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (s *Store) SetLinkedInConnected(ctx context.Context, userID string, connected bool) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_profiles (id, linkedin_connected) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET linkedin_connected = EXCLUDED.linkedin_connected
	`, userID, connected)
	if err != nil {
		return fmt.Errorf("failed to update profile connection flag: %w", err)
	}

	return nil
}

func (s *Store) ListDigestRecipients(ctx context.Context) ([]domain.Profile, error) {
	return s.listProfiles(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE notification_email = TRUE ORDER BY created_at`)
}

func (s *Store) ListLinkedInConnected(ctx context.Context) ([]domain.Profile, error) {
	return s.listProfiles(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE linkedin_connected = TRUE ORDER BY created_at`)
}

func (s *Store) listProfiles(ctx context.Context, query string) ([]domain.Profile, error) {
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}

	return profiles, nil
}
