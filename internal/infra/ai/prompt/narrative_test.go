package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserPrompt(t *testing.T) {
	p := GetUserPrompt("- [shift/high] Routing Defect 75% linked to B (Second) Shift (3 of 4 occurrences)\n")
	assert.Contains(t, p, "Routing Defect 75% linked to B (Second) Shift")
	assert.Contains(t, p, "handover note")

	assert.Contains(t, GetUserPrompt("  "), "(no alerts)")
}

func TestGetSystemPrompt(t *testing.T) {
	assert.Contains(t, GetSystemPrompt(), "shift-handover")
}
