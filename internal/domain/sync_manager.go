package domain

import "context"

type SyncResult struct {
	Connections int  `json:"connections"`
	Activities  int  `json:"activities"`
	Degraded    bool `json:"degraded"`
}

type SyncManager interface {
	SyncAccount(ctx context.Context, accountID string) (SyncResult, error)
	// SyncAll syncs every connected account and returns how many succeeded.
	SyncAll(ctx context.Context) (int, error)
}
