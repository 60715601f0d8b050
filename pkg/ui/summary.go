package ui

import (
	"fmt"
	"io"
	"strings"
)

// Row is one label/value line of a summary block.
type Row struct {
	Label string
	Value string
	// Level, when set, colors the value like a severity.
	Level string
}

// Summary writes a titled block of aligned label/value rows.
func Summary(w io.Writer, title string, rows []Row) {
	fmt.Fprintln(w, TitleStyle.Render(title))
	for _, r := range rows {
		value := ValueStyle.Render(r.Value)
		if r.Level != "" {
			value = SeverityStyle(r.Level).Render(r.Value)
		}
		fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render(r.Label), value)
	}
}

// Successf writes a green check line.
func Successf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, SuccessStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warnf writes an amber warning line.
func Warnf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, WarningStyle.Render("! "+fmt.Sprintf(format, args...)))
}

// Errorf writes a red error line.
func Errorf(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, ErrorStyle.Render("✗ "+fmt.Sprintf(format, args...)))
}

// List writes a muted heading followed by bulleted items. Nothing is
// written for an empty list.
func List(w io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w, MutedStyle.Render(heading))
	for _, item := range items {
		fmt.Fprintf(w, "  • %s\n", item)
	}
}

// Join renders a comma separated list, or "none".
func Join(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
