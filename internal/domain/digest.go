package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DigestMaxNudges = 5
	week            = 7 * 24 * time.Hour
)

// ShouldSendDigest applies the notification cadence at now in the user's time zone.
// Biweekly digests go out on Mondays of even-numbered weeks since the Unix epoch.
func ShouldSendDigest(frequency NotificationFrequency, timezone string, now time.Time) bool {
	local := now.In(location(timezone))

	switch frequency {
	case NotificationFrequencyDaily:
		return true
	case NotificationFrequencyWeekly:
		return local.Weekday() == time.Monday
	case NotificationFrequencyBiweekly:
		weekNumber := now.UnixMilli() / week.Milliseconds()
		return local.Weekday() == time.Monday && weekNumber%2 == 0
	default:
		return false
	}
}

func location(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

// RenderDigest builds the subject and plain-text body of a digest e-mail.
func RenderDigest(profile Profile, entries []DigestEntry, appURL string) (string, string) {
	name := strings.TrimSpace(profile.FullName)
	if name == "" {
		name = "there"
	}

	subject := fmt.Sprintf("You have %d new engagement suggestions", len(entries))
	if len(entries) == 1 {
		subject = "You have 1 new engagement suggestion"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "You have %d new engagement suggestions for your network:\n\n", len(entries))

	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, entry.Connection.Name, entry.Nudge.ActivityDescription)
		if len(entry.Nudge.Suggestions) > 0 {
			fmt.Fprintf(&b, "   Suggestion: %s\n", entry.Nudge.Suggestions[0])
		}
		b.WriteString("\n")
	}

	b.WriteString("Log in to Network Nudge to view all suggestions and take action:\n")
	fmt.Fprintf(&b, "%s\n\n", appURL)
	b.WriteString("Best regards,\nThe Network Nudge Team\n")

	return subject, b.String()
}
