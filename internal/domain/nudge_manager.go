package domain

import "context"

const (
	NudgeCandidates    = 5
	NudgeLimitMessage  = "Nudge limit reached"
	NoConnectionsFound = "No connections found"
	NudgesGenerated    = "Nudges generated successfully"
)

type GenerateNudgesResult struct {
	Message       string `json:"message"`
	NudgesCreated int    `json:"nudgesCreated"`
}

type NudgeManager interface {
	GenerateNudges(ctx context.Context, userID string) (GenerateNudgesResult, error)
}
