// Package style holds the colors and glyphs shared by the log handler and
// the task renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Cyan   = lipgloss.Color("#0EA5E9")
)

// Glyphs prefixed to log lines and task summaries.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)
