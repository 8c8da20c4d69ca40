package notifications

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"matchmill/internal/game"
)

func displayKey(key string) string {
	if key = strings.TrimSpace(key); key == "" {
		return "(unkeyed)"
	}
	return key
}

func titleCase(value string) string {
	if value = strings.TrimSpace(value); value == "" {
		return "Unknown"
	}
	return cases.Title(language.English).String(value)
}

func resultText(m *game.Match) string {
	var outcome string
	switch {
	case m.Won == nil:
		outcome = "result unknown"
	case *m.Won:
		outcome = "victory"
	default:
		outcome = "defeat"
	}
	if m.Score != nil {
		return fmt.Sprintf("%s %s", outcome, m.Score)
	}
	return outcome
}

func formatDuration(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	if d < 0 {
		d = 0
	}
	return d.String()
}
