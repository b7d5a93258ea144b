// Package output renders scoring results as a terminal table, JSON, or
// Markdown.
package output

import (
	"io"

	"github.com/reposcore/reposcore/internal/model"
)

// Format represents the output format
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Formatter defines the interface for output formatters
type Formatter interface {
	Format(results []model.ScoreResult, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// ValidFormat reports whether the format name is one we render.
func ValidFormat(format Format) bool {
	switch format {
	case FormatTable, FormatJSON, FormatMarkdown:
		return true
	}
	return false
}
