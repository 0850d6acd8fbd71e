package domain

import (
	"context"
	"time"
)

// Connection is a stored 1st-degree connection of a user
type Connection struct {
	ID                  string
	UserID              string
	LinkedInID          string
	Name                string
	Headline            string
	ProfileURL          string
	AvatarURL           string
	LastActivityDate    *time.Time
	LastActivityType    string
	LastActivityContent string
	EngagementCount     int
	LastEngagementDate  *time.Time
	CreatedAt           time.Time
}

// FirstName is the first word of the connection's name.
func (c Connection) FirstName() string {
	return firstName(c.Name)
}

type ConnectionActivity struct {
	Date    time.Time
	Type    string
	Content string
}

type ConnectionRepository interface {
	// UpsertConnections inserts or updates by (user_id, linkedin_id) and returns the number written.
	UpsertConnections(ctx context.Context, userID string, connections []Connection) (int, error)
	UpdateLastActivity(ctx context.Context, userID, linkedInID string, activity ConnectionActivity) error
	// ListRecentlyActive orders by last activity, newest first.
	ListRecentlyActive(ctx context.Context, userID string, limit int) ([]Connection, error)
}
