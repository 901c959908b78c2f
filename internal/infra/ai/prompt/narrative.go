package prompt

import (
	"fmt"
	"strings"
)

// GetSystemPrompt frames the model as a quality engineer writing for the
// next shift.
func GetSystemPrompt() string {
	return `You are a manufacturing quality engineer on a railway traction assembly line. You receive pattern alerts detected in the rework log and write a short shift-handover note.

Requirements:
- Plain text only, no markdown headings, no code fences.
- At most 6 sentences.
- Lead with the highest-severity pattern.
- For each pattern, name one concrete containment step the next shift can take.
- Do not invent numbers that are not in the alerts.`
}

// GetUserPrompt wraps the alert digest.
func GetUserPrompt(digest string) string {
	digest = strings.TrimSpace(digest)
	if digest == "" {
		digest = "(no alerts)"
	}
	return fmt.Sprintf("Alerts detected in the rework log:\n%s\n\nWrite the handover note.", digest)
}
