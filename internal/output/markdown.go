package output

import (
	"fmt"
	"io"
	"time"

	"github.com/reposcore/reposcore/internal/model"
)

// MarkdownFormatter formats results as Markdown
type MarkdownFormatter struct{}

// Format outputs results as a Markdown report
func (f *MarkdownFormatter) Format(results []model.ScoreResult, w io.Writer) error {
	if len(results) == 0 {
		fmt.Fprintln(w, "No repositories scored.")
		return nil
	}

	fmt.Fprintln(w, "# Repository Engagement Report")
	fmt.Fprintf(w, "\n*Generated: %s*\n\n", time.Now().Format("2006-01-02 15:04"))

	fmt.Fprintln(w, "| Repository | Stars | Watchers | Forks | Engaged | Significant | Org | Power Rate | Org Rate |")
	fmt.Fprintln(w, "|------------|-------|----------|-------|---------|-------------|-----|------------|----------|")
	for _, r := range results {
		fmt.Fprintf(w, "| [%s](%s) | %d | %d | %d | %d | %d | %d | %.2f | %.2f |\n",
			r.Repository.FullName(),
			r.Repository.HTMLURL(),
			r.Counts.Stars,
			r.Counts.Watchers,
			r.Counts.Forks,
			r.TotalEngaged,
			r.SignificantCount,
			r.OrgCount,
			r.PowerUserRate,
			r.OrgUserRate,
		)
	}

	return nil
}
