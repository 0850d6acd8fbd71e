package domain

import (
	"fmt"
	"strings"
)

var suggestionTemplates = map[string][]string{
	"post": {
		"Great insights, %[1]s! This really resonates with my experience in the field.",
		"Thanks for sharing this! Would love to hear more about your perspective on this topic.",
		"This is exactly what I've been thinking about lately. Let's catch up soon to discuss!",
	},
	"job_change": {
		"Congratulations on the new role, %[1]s! Well deserved and exciting times ahead!",
		"Exciting move! Wishing you all the best in your new position. Let's celebrate soon!",
		"Great to see you taking this next step in your career! Very well deserved.",
	},
	"anniversary": {
		"Congratulations on this milestone, %[1]s! Your dedication is truly inspiring.",
		"What an achievement! Time flies when you're making an impact.",
		"Wow, that's impressive! Congrats on this milestone, %[1]s!",
	},
	NudgeTypeGeneral: {
		"Hey %[1]s, hope you're doing well! It's been a while since we last connected.",
		"Hi %[1]s, just wanted to check in and see how things are going on your end!",
		"%[1]s, let's catch up soon! Would love to hear what you've been working on.",
	},
}

// GenerateSuggestions returns outreach messages for an activity type, addressed by first name.
// Types without templates get the general ones.
func GenerateSuggestions(activityType, name string) []string {
	templates, ok := suggestionTemplates[activityType]
	if !ok {
		templates = suggestionTemplates[NudgeTypeGeneral]
	}

	first := firstName(name)
	suggestions := make([]string, 0, len(templates))
	for _, template := range templates {
		if !strings.Contains(template, "%[1]s") {
			suggestions = append(suggestions, template)
			continue
		}
		suggestions = append(suggestions, fmt.Sprintf(template, first))
	}

	return suggestions
}

func firstName(name string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(name), " ")
	return first
}
