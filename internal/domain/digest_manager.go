package domain

import "context"

type DigestResult struct {
	Message    string `json:"message"`
	EmailsSent int    `json:"emailsSent"`
}

type DigestManager interface {
	SendDigests(ctx context.Context) (DigestResult, error)
}
