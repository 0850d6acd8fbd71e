package linkedin

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const connectionsProjection = "(id,firstName,lastName,headline,profilePicture(displayImage),publicProfileUrl)"

// Profile returns the authenticated member's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	body, err := c.Get(ctx, "/me")
	if err != nil {
		return Profile{}, fmt.Errorf("failed to get linkedin profile: %w", err)
	}

	me := gjson.ParseBytes(body)

	return Profile{
		ID:         me.Get("id").String(),
		FirstName:  localized(me.Get("firstName")),
		LastName:   localized(me.Get("lastName")),
		PictureURL: me.Get("profilePicture.displayImage").String(),
	}, nil
}

// FetchConnections returns one page of 1st-degree connections.
func (c *Client) FetchConnections(ctx context.Context, page Page) ([]Connection, error) {
	page = page.normalize()
	endpoint := fmt.Sprintf("/relationships/connections?start=%d&count=%d&projection=%s", page.Start, page.Count, connectionsProjection)

	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linkedin connections: %w", err)
	}

	elements := gjson.GetBytes(body, "elements").Array()
	connections := make([]Connection, 0, len(elements))

	for _, element := range elements {
		connections = append(connections, Connection{
			ID:         element.Get("id").String(),
			FirstName:  localized(element.Get("firstName")),
			LastName:   localized(element.Get("lastName")),
			Headline:   localized(element.Get("headline")),
			PictureURL: element.Get("profilePicture.displayImage").String(),
			ProfileURL: element.Get("publicProfileUrl").String(),
		})
	}

	return connections, nil
}

// Connections is the lossy variant of FetchConnections.
func (c *Client) Connections(ctx context.Context, page Page) ListResult[Connection] {
	return lossy(c.FetchConnections(ctx, page))
}

// FetchActivities returns one page of recent network activities.
func (c *Client) FetchActivities(ctx context.Context, page Page) ([]Activity, error) {
	page = page.normalize()

	body, err := c.Get(ctx, fmt.Sprintf("/activities?start=%d&count=%d", page.Start, page.Count))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linkedin activities: %w", err)
	}

	elements := gjson.GetBytes(body, "elements").Array()
	activities := make([]Activity, 0, len(elements))
	now := c.clock.Now().UnixMilli()

	for _, element := range elements {
		actor := "Unknown"
		if a := element.Get("actor"); a.Exists() && a.Type != gjson.Null {
			actor = strings.TrimSpace(localized(a.Get("firstName")) + " " + localized(a.Get("lastName")))
		}

		activities = append(activities, Activity{
			ID:          element.Get("id").String(),
			Type:        MapActivityType(element.Get("activity.activityType").String()),
			Timestamp:   timestampOr(element.Get("activity.timestamp"), now),
			Description: element.Get("activity.description").String(),
			Actor:       actor,
			Content:     element.Get("activity.content").String(),
		})
	}

	return activities, nil
}

// Activities is the lossy variant of FetchActivities.
func (c *Client) Activities(ctx context.Context, page Page) ListResult[Activity] {
	return lossy(c.FetchActivities(ctx, page))
}

// FetchProfileUpdates returns one page of profile updates such as job changes and work anniversaries.
func (c *Client) FetchProfileUpdates(ctx context.Context, page Page) ([]Activity, error) {
	page = page.normalize()

	body, err := c.Get(ctx, fmt.Sprintf("/profileUpdates?start=%d&count=%d", page.Start, page.Count))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linkedin profile updates: %w", err)
	}

	elements := gjson.GetBytes(body, "elements").Array()
	updates := make([]Activity, 0, len(elements))
	now := c.clock.Now().UnixMilli()

	for _, element := range elements {
		updateType := ActivityTypeAnniversary
		actor := "Unknown"

		if firstName := localized(element.Get("actor.firstName")); firstName != "" {
			updateType = ActivityTypeJobChange
			actor = strings.TrimSpace(firstName + " " + localized(element.Get("actor.lastName")))
		}

		updates = append(updates, Activity{
			ID:          element.Get("id").String(),
			Type:        updateType,
			Timestamp:   timestampOr(element.Get("timestamp"), now),
			Description: element.Get("description").String(),
			Actor:       actor,
			Content:     element.Get("content").String(),
		})
	}

	return updates, nil
}

// ProfileUpdates is the lossy variant of FetchProfileUpdates.
func (c *Client) ProfileUpdates(ctx context.Context, page Page) ListResult[Activity] {
	return lossy(c.FetchProfileUpdates(ctx, page))
}

func lossy[T any](items []T, err error) ListResult[T] {
	if err != nil {
		log.Error().Err(err).Msg("linkedin list read degraded to empty result")
		return Degraded[T](err)
	}

	return Ok(items)
}

// localized reads a multi-locale name field, accepting a plain string as well.
func localized(field gjson.Result) string {
	if field.IsObject() {
		if value := field.Get("localized.en_US"); value.Exists() {
			return value.String()
		}

		var first string
		field.Get("localized").ForEach(func(_, value gjson.Result) bool {
			first = value.String()
			return false
		})

		return first
	}

	if field.Type == gjson.String {
		return field.String()
	}

	return ""
}

func timestampOr(field gjson.Result, fallback int64) int64 {
	if field.Type != gjson.Number {
		return fallback
	}

	if ts := field.Int(); ts > 0 {
		return ts
	}

	return fallback
}
