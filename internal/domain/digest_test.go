package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldSendDigest(t *testing.T) {
	evenMonday := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	oddMonday := time.Date(2024, time.March, 11, 9, 0, 0, 0, time.UTC)
	tuesday := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	lateSundayUTC := time.Date(2024, time.March, 3, 23, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		frequency NotificationFrequency
		timezone  string
		now       time.Time
		want      bool
	}{
		{name: "daily on tuesday", frequency: NotificationFrequencyDaily, now: tuesday, want: true},
		{name: "weekly on monday", frequency: NotificationFrequencyWeekly, now: evenMonday, want: true},
		{name: "weekly on tuesday", frequency: NotificationFrequencyWeekly, now: tuesday, want: false},
		{name: "biweekly on even monday", frequency: NotificationFrequencyBiweekly, now: evenMonday, want: true},
		{name: "biweekly on odd monday", frequency: NotificationFrequencyBiweekly, now: oddMonday, want: false},
		{name: "biweekly on tuesday", frequency: NotificationFrequencyBiweekly, now: tuesday, want: false},
		{name: "never", frequency: NotificationFrequencyNever, now: evenMonday, want: false},
		{name: "unknown frequency", frequency: "hourly", now: evenMonday, want: false},
		{name: "weekly sunday in utc", frequency: NotificationFrequencyWeekly, now: lateSundayUTC, want: false},
		{name: "weekly monday in berlin", frequency: NotificationFrequencyWeekly, timezone: "Europe/Berlin", now: lateSundayUTC, want: true},
		{name: "invalid timezone falls back to utc", frequency: NotificationFrequencyWeekly, timezone: "Mars/Olympus", now: lateSundayUTC, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldSendDigest(tt.frequency, tt.timezone, tt.now))
		})
	}
}

func TestRenderDigest(t *testing.T) {
	entries := []DigestEntry{
		{
			Nudge: Nudge{
				ActivityDescription: "Started a new position",
				Suggestions:         []string{"Congratulations on the new role, Ada!", "Exciting move!"},
			},
			Connection: Connection{Name: "Ada Lovelace"},
		},
		{
			Nudge:      Nudge{ActivityDescription: "Shared a post"},
			Connection: Connection{Name: "Grace Hopper"},
		},
	}

	subject, body := RenderDigest(Profile{FullName: "Alan Turing"}, entries, "https://app.networknudge.io")

	assert.Equal(t, "You have 2 new engagement suggestions", subject)
	assert.True(t, strings.HasPrefix(body, "Hi Alan Turing,\n"))
	assert.Contains(t, body, "You have 2 new engagement suggestions for your network:")
	assert.Contains(t, body, "1. Ada Lovelace - Started a new position\n   Suggestion: Congratulations on the new role, Ada!\n")
	assert.Contains(t, body, "2. Grace Hopper - Shared a post\n")
	assert.NotContains(t, body, "Exciting move!")
	assert.Contains(t, body, "https://app.networknudge.io")

	_, anonymous := RenderDigest(Profile{}, entries[:1], "https://app.networknudge.io")
	assert.True(t, strings.HasPrefix(anonymous, "Hi there,\n"))
}
