package report

import (
	"context"
	"encoding/json"
	"io"
)

// JSONFormatter renders reports as JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as indented JSON. Quiet mode emits only the
// status fields.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		return encoder.Encode(struct {
			App        string       `json:"app"`
			Status     HealthStatus `json:"status"`
			StatusLine string       `json:"status_line"`
			ErrorRate  string       `json:"error_rate"`
		}{report.App, report.Status, report.StatusLine, report.ErrorRate})
	}

	return encoder.Encode(report)
}
