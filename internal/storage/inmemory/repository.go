package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/networknudge/networknudge/internal/domain"
)

// Repository implements the profile, connection, nudge and subscription repositories.
type Repository struct {
	mu            sync.RWMutex
	profiles      map[string]domain.Profile
	connections   map[string]domain.Connection
	nudges        map[string]domain.Nudge
	subscriptions map[string]domain.Subscription

	clock clockwork.Clock
}

func NewRepository(clock clockwork.Clock) *Repository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Repository{
		profiles:      make(map[string]domain.Profile),
		connections:   make(map[string]domain.Connection),
		nudges:        make(map[string]domain.Nudge),
		subscriptions: make(map[string]domain.Subscription),
		clock:         clock,
	}
}

func (r *Repository) SaveProfile(profile domain.Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profiles[profile.ID] = profile
}

func (r *Repository) SaveSubscription(subscription domain.Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.subscriptions[subscription.UserID] = subscription
}

// SaveNudge stores a nudge as is, keeping its CreatedAt.
func (r *Repository) SaveNudge(nudge domain.Nudge) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nudges[nudge.ID] = nudge
}

func (r *Repository) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return domain.Profile{}, fmt.Errorf("profile %s: %w", userID, domain.ErrNotFound)
	}

	return profile, nil
}

func (r *Repository) SetLinkedInConnected(ctx context.Context, userID string, connected bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[userID]
	if !ok {
		profile = domain.Profile{ID: userID, CreatedAt: r.clock.Now()}
	}
	profile.LinkedInConnected = connected
	r.profiles[userID] = profile

	return nil
}

func (r *Repository) ListDigestRecipients(ctx context.Context) ([]domain.Profile, error) {
	return r.filterProfiles(func(p domain.Profile) bool { return p.NotificationEmail }), nil
}

func (r *Repository) ListLinkedInConnected(ctx context.Context) ([]domain.Profile, error) {
	return r.filterProfiles(func(p domain.Profile) bool { return p.LinkedInConnected }), nil
}

func (r *Repository) filterProfiles(keep func(domain.Profile) bool) []domain.Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var profiles []domain.Profile
	for _, profile := range r.profiles {
		if keep(profile) {
			profiles = append(profiles, profile)
		}
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID < profiles[j].ID
	})

	return profiles
}

func (r *Repository) UpsertConnections(ctx context.Context, userID string, connections []domain.Connection) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, incoming := range connections {
		existing, ok := r.findConnection(userID, incoming.LinkedInID)
		if !ok {
			existing = domain.Connection{
				ID:         uuid.NewString(),
				UserID:     userID,
				LinkedInID: incoming.LinkedInID,
				CreatedAt:  r.clock.Now(),
			}
		}

		existing.Name = incoming.Name
		existing.Headline = incoming.Headline
		existing.ProfileURL = incoming.ProfileURL
		existing.AvatarURL = incoming.AvatarURL
		r.connections[existing.ID] = existing
	}

	return len(connections), nil
}

func (r *Repository) findConnection(userID, linkedInID string) (domain.Connection, bool) {
	for _, connection := range r.connections {
		if connection.UserID == userID && connection.LinkedInID == linkedInID {
			return connection, true
		}
	}

	return domain.Connection{}, false
}

func (r *Repository) UpdateLastActivity(ctx context.Context, userID, linkedInID string, activity domain.ConnectionActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	connection, ok := r.findConnection(userID, linkedInID)
	if !ok {
		return nil
	}

	if connection.LastActivityDate != nil && connection.LastActivityDate.After(activity.Date) {
		return nil
	}

	date := activity.Date
	connection.LastActivityDate = &date
	connection.LastActivityType = activity.Type
	connection.LastActivityContent = activity.Content
	r.connections[connection.ID] = connection

	return nil
}

func (r *Repository) ListRecentlyActive(ctx context.Context, userID string, limit int) ([]domain.Connection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var connections []domain.Connection
	for _, connection := range r.connections {
		if connection.UserID == userID {
			connections = append(connections, connection)
		}
	}

	sort.Slice(connections, func(i, j int) bool {
		a, b := connections[i].LastActivityDate, connections[j].LastActivityDate
		switch {
		case a == nil && b == nil:
			return connections[i].Name < connections[j].Name
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})

	if limit > 0 && len(connections) > limit {
		connections = connections[:limit]
	}

	return connections, nil
}

func (r *Repository) CountPendingSince(ctx context.Context, userID string, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, nudge := range r.nudges {
		if nudge.UserID == userID && nudge.Status == domain.NudgeStatusPending && !nudge.CreatedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

func (r *Repository) CreateNudge(ctx context.Context, nudge domain.Nudge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.connections[nudge.ConnectionID]; !ok {
		return fmt.Errorf("connection %s: %w", nudge.ConnectionID, domain.ErrNotFound)
	}

	if nudge.ID == "" {
		nudge.ID = uuid.NewString()
	}
	if nudge.Status == "" {
		nudge.Status = domain.NudgeStatusPending
	}
	if nudge.CreatedAt.IsZero() {
		nudge.CreatedAt = r.clock.Now()
	}

	r.nudges[nudge.ID] = nudge

	return nil
}

func (r *Repository) ListUnsentPending(ctx context.Context, userID string, limit int) ([]domain.DigestEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []domain.DigestEntry
	for _, nudge := range r.nudges {
		if nudge.UserID != userID || nudge.Status != domain.NudgeStatusPending || nudge.SentAt != nil {
			continue
		}

		connection, ok := r.connections[nudge.ConnectionID]
		if !ok {
			continue
		}

		entries = append(entries, domain.DigestEntry{Nudge: nudge, Connection: connection})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Nudge.CreatedAt.Before(entries[j].Nudge.CreatedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func (r *Repository) MarkSent(ctx context.Context, nudgeIDs []string, sentAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range nudgeIDs {
		nudge, ok := r.nudges[id]
		if !ok {
			continue
		}
		sent := sentAt
		nudge.SentAt = &sent
		r.nudges[id] = nudge
	}

	return nil
}

func (r *Repository) GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscription, ok := r.subscriptions[userID]
	if !ok {
		return nil, nil
	}

	return &subscription, nil
}

// Nudges returns every stored nudge of a user, oldest first.
func (r *Repository) Nudges(userID string) []domain.Nudge {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var nudges []domain.Nudge
	for _, nudge := range r.nudges {
		if nudge.UserID == userID {
			nudges = append(nudges, nudge)
		}
	}

	sort.Slice(nudges, func(i, j int) bool {
		return nudges[i].CreatedAt.Before(nudges[j].CreatedAt)
	})

	return nudges
}
