package report

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Render renders markdown for a terminal. Style is a glamour standard style
// name ("dark", "light", "notty", ...) or "auto" to detect the terminal.
func Render(markdown, style string) (string, error) {
	opt := glamour.WithAutoStyle()
	if s := strings.ToLower(strings.TrimSpace(style)); s != "" && s != "auto" {
		opt = glamour.WithStandardStyle(s)
	}

	r, err := glamour.NewTermRenderer(opt, glamour.WithWordWrap(120))
	if err != nil {
		return "", err
	}
	return r.Render(markdown)
}
