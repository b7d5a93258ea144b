package output

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/reposcore/reposcore/internal/model"
)

// ansiRegex matches ANSI escape sequences
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TableFormatter formats results as a terminal report
type TableFormatter struct{}

// hyperlink creates a clickable terminal hyperlink using OSC 8
// Format: \033]8;;URL\033\\TEXT\033]8;;\033\\
func hyperlink(text, url string) string {
	// Only use hyperlinks if stdout is a terminal
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return text
	}
	return fmt.Sprintf("\033]8;;%s\033\\%s\033]8;;\033\\", url, text)
}

// stripAnsi removes ANSI escape sequences from a string
func stripAnsi(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// displayWidth returns the visible width of a string in terminal columns
func displayWidth(s string) int {
	return runewidth.StringWidth(stripAnsi(s))
}

// padRight pads a string with spaces to reach the target visible width
func padRight(s string, targetWidth int) string {
	width := displayWidth(s)
	if width >= targetWidth {
		return s
	}
	return s + strings.Repeat(" ", targetWidth-width)
}

// Format outputs one report block per scored repository.
func (f *TableFormatter) Format(results []model.ScoreResult, w io.Writer) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f.formatResult(r, w)
	}
	return nil
}

func (f *TableFormatter) formatResult(r model.ScoreResult, w io.Writer) {
	const labelWidth = 22

	title := hyperlink(r.Repository.FullName(), r.Repository.HTMLURL())
	fmt.Fprintf(w, "%s\n", color.New(color.Bold).Sprint(title))
	fmt.Fprintln(w, strings.Repeat("-", 48))

	row := func(label string, value string) {
		fmt.Fprintf(w, "%s  %s\n", padRight(label, labelWidth), value)
	}

	row("Stars", fmt.Sprintf("%d", r.Counts.Stars))
	row("Watchers", fmt.Sprintf("%d", r.Counts.Watchers))
	row("Forks", fmt.Sprintf("%d", r.Counts.Forks))
	row("Engaged users", fmt.Sprintf("%d", r.TotalEngaged))
	row("Significant users", fmt.Sprintf("%d", r.SignificantCount))
	row("Org-affiliated users", fmt.Sprintf("%d", r.OrgCount))
	row("Power user rate", colorRate(r.PowerUserRate))
	row("Org user rate", colorRate(r.OrgUserRate))

	if r.TotalEngaged == 0 {
		fmt.Fprintln(w, "No engaged users found.")
	}
}

// colorRate renders a rate to two decimals, green for high engagement
// quality, yellow for middling, plain otherwise.
func colorRate(rate float64) string {
	text := fmt.Sprintf("%.2f", rate)
	switch {
	case rate >= 0.5:
		return color.GreenString(text)
	case rate >= 0.2:
		return color.YellowString(text)
	default:
		return text
	}
}
