package linkedin

// Profile is the authenticated member's own profile
type Profile struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	PictureURL string `json:"pictureUrl,omitempty"`
}

// Connection is a flattened 1st-degree connection
type Connection struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Headline   string `json:"headline,omitempty"`
	PictureURL string `json:"pictureUrl,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// Name returns "first last" without stray spaces.
func (c Connection) Name() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}

	return c.FirstName + " " + c.LastName
}

// Activity is a normalized activity or profile update
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Timestamp   int64        `json:"timestamp"` // epoch milliseconds
	Description string       `json:"description"`
	Actor       string       `json:"actor"`
	Content     string       `json:"content,omitempty"`
}

// Page selects a window of a paginated list
type Page struct {
	Start int
	Count int
}

func (p Page) normalize() Page {
	if p.Start < 0 {
		p.Start = 0
	}

	if p.Count <= 0 {
		p.Count = DefaultPageSize
	}

	return p
}
