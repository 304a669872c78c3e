package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"
)

// ANSI styles for terminal output.
const (
	styleReset = "\033[0m"
	styleError = "\033[1;31m"
	styleTitle = "\033[1;37m"
	styleNote  = "\033[36m"
	styleDim   = "\033[90m"
	styleLink  = "\033[34m"
)

var colorEnabled = true

// DisableColors turns off ANSI styling in Format and PrintError.
func DisableColors() {
	colorEnabled = false
}

func paint(style, text string) string {
	if !colorEnabled {
		return text
	}
	return style + text + styleReset
}

// Format renders the error for terminal display: a header with code and
// message, the offending pattern and location, then detail, cause, hint,
// example and documentation link when present.
func (e *RouteError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	if e.Code != "" {
		fmt.Fprintf(&b, "%s%s\n\n", paint(styleError, "ERROR "), paint(styleTitle, e.Code+": "+e.Message))
	} else {
		fmt.Fprintf(&b, "%s%s\n\n", paint(styleError, "ERROR: "), paint(styleTitle, e.Message))
	}

	if e.Pattern != "" || e.Location != nil {
		where := paint(styleNote, e.Pattern)
		if e.Location != nil {
			if e.Pattern != "" {
				where += paint(styleDim, "  ← ")
			}
			where += paint(styleDim, e.Location.String())
		}
		fmt.Fprintf(&b, "  %s\n\n", where)
	}

	if lines := wrapText(e.Detail, 70); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(styleDim, "Cause: "), e.Wrapped.Error())
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(styleNote, "Hint: "), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint(styleNote, "Example:"))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.DocURL != "" {
		fmt.Fprintf(&b, "  %s%s\n", paint(styleDim, "Learn more: "), paint(styleLink, e.DocURL))
	}

	return b.String()
}

// FormatCompact renders the error on one line:
// "file#route: CODE: message (pattern)".
func (e *RouteError) FormatCompact() string {
	var parts []string
	if e.Location != nil {
		parts = append(parts, e.Location.String())
	}
	if e.Code != "" {
		parts = append(parts, e.Code)
	}
	parts = append(parts, e.Message)

	line := strings.Join(parts, ": ")
	if e.Pattern != "" {
		line += " (" + e.Pattern + ")"
	}
	return line
}

// wrapText splits text into lines of at most width bytes where word
// boundaries allow.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}

// PrintError writes err to stderr, fully formatted when it is a *RouteError.
func PrintError(err error) {
	var re *RouteError
	if stderrors.As(err, &re) {
		fmt.Fprint(os.Stderr, re.Format())
		return
	}
	fmt.Fprintf(os.Stderr, "\n%s %s\n\n", paint(styleError, "ERROR:"), err.Error())
}
