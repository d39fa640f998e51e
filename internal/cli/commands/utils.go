package commands

import (
	"os"

	"golang.org/x/term"
)

// Helper functions shared across commands

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// descriptionWidth picks a truncation width for description columns based
// on the terminal, falling back to 40 when not a TTY.
func descriptionWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 60 {
		return w - 50
	}
	return 40
}
