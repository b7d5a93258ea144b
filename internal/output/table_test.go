package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/reposcore/reposcore/internal/model"
)

func sampleResult() model.ScoreResult {
	return model.ScoreResult{
		Repository:       model.Repository{Owner: "octocat", Name: "Hello-World"},
		Counts:           model.RepoCounts{Stars: 10, Watchers: 4, Forks: 2},
		TotalEngaged:     3,
		SignificantCount: 2,
		OrgCount:         1,
		PowerUserRate:    2.0 / 3.0,
		OrgUserRate:      1.0 / 3.0,
	}
}

func TestStripAnsi(t *testing.T) {
	colored := "\x1b[31mred\x1b[0m"
	if got := stripAnsi(colored); got != "red" {
		t.Errorf("stripAnsi(%q) = %q, expected %q", colored, got, "red")
	}
}

func TestDisplayWidth(t *testing.T) {
	if got := displayWidth("abc"); got != 3 {
		t.Errorf("displayWidth(abc) = %d, expected 3", got)
	}
	if got := displayWidth("\x1b[32mok\x1b[0m"); got != 2 {
		t.Errorf("displayWidth with ANSI = %d, expected 2", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 5); got != "ab   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not truncate, got %q", got)
	}
}

func TestTableFormat(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	f := &TableFormatter{}
	if err := f.Format([]model.ScoreResult{sampleResult()}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"octocat/Hello-World", "0.67", "0.33", "Engaged users", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableFormatEmptyEngagedSet(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := sampleResult()
	result.TotalEngaged = 0
	result.SignificantCount = 0
	result.OrgCount = 0
	result.PowerUserRate = 0
	result.OrgUserRate = 0

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format([]model.ScoreResult{result}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "No engaged users found.") {
		t.Errorf("expected empty-set notice:\n%s", out)
	}
	if !strings.Contains(out, "0.00") {
		t.Errorf("expected zero rates rendered as 0.00:\n%s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	f := &JSONFormatter{}
	if err := f.Format([]model.ScoreResult{sampleResult()}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []model.ScoreResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 result, got %d", len(decoded))
	}
	if decoded[0].Repository.Owner != "octocat" || decoded[0].SignificantCount != 2 {
		t.Errorf("round-trip mismatch: %+v", decoded[0])
	}
}

func TestMarkdownFormat(t *testing.T) {
	var buf bytes.Buffer
	f := &MarkdownFormatter{}
	if err := f.Format([]model.ScoreResult{sampleResult()}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "| [octocat/Hello-World](https://github.com/octocat/Hello-World) | 10 | 4 | 2 | 3 | 2 | 1 | 0.67 | 0.33 |") {
		t.Errorf("markdown row missing or malformed:\n%s", out)
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("expected JSONFormatter for json")
	}
	if _, ok := NewFormatter(FormatMarkdown).(*MarkdownFormatter); !ok {
		t.Error("expected MarkdownFormatter for markdown")
	}
	if _, ok := NewFormatter(Format("bogus")).(*TableFormatter); !ok {
		t.Error("expected TableFormatter as the fallback")
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range []Format{FormatTable, FormatJSON, FormatMarkdown} {
		if !ValidFormat(f) {
			t.Errorf("expected %q to be valid", f)
		}
	}
	if ValidFormat(Format("yaml")) {
		t.Error("expected yaml to be invalid")
	}
}
