// Package report turns a parse summary into a health report and renders it
// for humans and machines.
package report

import (
	"fmt"
	"time"

	"github.com/fendlabs/fend-sentry/pkg/parser"
)

// HealthStatus classifies the overall state of the checked application.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "HEALTHY"
	StatusWarning  HealthStatus = "WARNING"
	StatusCritical HealthStatus = "CRITICAL"
)

// Thresholds for deriving HealthStatus from counts.
const (
	criticalErrorThreshold = 10
	warningCountThreshold  = 5
)

// Report is the complete output of one health check.
type Report struct {
	App         string              `json:"app"`
	Environment string              `json:"environment"`
	Status      HealthStatus        `json:"status"`
	StatusLine  string              `json:"status_line"`
	ErrorRate   string              `json:"error_rate"`
	Summary     *parser.Summary     `json:"summary"`
	Trends      *parser.TrendReport `json:"trends,omitempty"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// New builds a Report from a parse summary. trends may be nil.
func New(app, environment string, summary *parser.Summary, trends *parser.TrendReport) *Report {
	r := &Report{
		App:         app,
		Environment: environment,
		Summary:     summary,
		Trends:      trends,
		GeneratedAt: time.Now(),
	}

	errors := r.ErrorCount()
	warnings := r.WarningCount()

	switch {
	case errors > criticalErrorThreshold:
		r.Status = StatusCritical
		r.StatusLine = fmt.Sprintf("High error rate detected: %d errors found", errors)
	case errors > 0 || warnings > warningCountThreshold:
		r.Status = StatusWarning
		r.StatusLine = fmt.Sprintf("Some issues detected: %d errors, %d warnings", errors, warnings)
	default:
		r.Status = StatusHealthy
		r.StatusLine = "No significant issues detected"
	}

	r.ErrorRate = errorRate(errors, summary.TotalEntries)
	return r
}

// ErrorCount sums error-level entries across severities.
func (r *Report) ErrorCount() int {
	counts := r.Summary.LevelCounts
	return counts["ERROR"] + counts["CRITICAL"] + counts["FATAL"]
}

// WarningCount returns the number of warning entries.
func (r *Report) WarningCount() int {
	return r.Summary.LevelCounts["WARNING"]
}

// HasIssues reports whether the check found anything worth acting on.
func (r *Report) HasIssues() bool {
	return r.Status != StatusHealthy
}

func errorRate(errors, total int) string {
	if total == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(errors)/float64(total)*100)
}
