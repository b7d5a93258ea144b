package output

import (
	"encoding/json"
	"io"

	"github.com/reposcore/reposcore/internal/model"
)

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format outputs results as a JSON array
func (f *JSONFormatter) Format(results []model.ScoreResult, w io.Writer) error {
	encoder := json.NewEncoder(w)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(results)
}
