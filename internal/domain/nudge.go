package domain

import (
	"context"
	"time"
)

type NudgeStatus string

const (
	NudgeStatusPending   NudgeStatus = "pending"
	NudgeStatusCompleted NudgeStatus = "completed"
	NudgeStatusDismissed NudgeStatus = "dismissed"
)

const NudgeTypeGeneral = "general"

type Nudge struct {
	ID                  string
	UserID              string
	ConnectionID        string
	Type                string
	ActivityDescription string
	Suggestions         []string
	Status              NudgeStatus
	ScheduledFor        time.Time
	SentAt              *time.Time
	ActedAt             *time.Time
	CreatedAt           time.Time
}

// DigestEntry is a pending nudge together with the connection it is about.
type DigestEntry struct {
	Nudge      Nudge
	Connection Connection
}

type NudgeRepository interface {
	CountPendingSince(ctx context.Context, userID string, since time.Time) (int, error)
	CreateNudge(ctx context.Context, nudge Nudge) error
	ListUnsentPending(ctx context.Context, userID string, limit int) ([]DigestEntry, error)
	MarkSent(ctx context.Context, nudgeIDs []string, sentAt time.Time) error
}
