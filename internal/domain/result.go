package domain

import "time"

// SuiteResult is the outcome of parsing and analyzing one suite file.
type SuiteResult struct {
	SuitePath   string
	Suite       *Suite // nil when the file could not be read
	Diagnostics []Diagnostic
	Err         error
	Duration    time.Duration
}

// Clean reports whether the suite produced no error-severity diagnostics.
func (r *SuiteResult) Clean() bool {
	if r.Err != nil {
		return false
	}
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Severity == SeverityError {
			return false
		}
	}
	return true
}

// ReportMeta contains metadata about an analysis run.
type ReportMeta struct {
	TotalSuites     int     `json:"total_suites"`
	CleanSuites     int     `json:"clean_suites"`
	FlaggedSuites   int     `json:"flagged_suites"`
	TotalTests      int     `json:"total_tests"`
	TotalKeywords   int     `json:"total_keywords"`
	ErrorCount      int     `json:"error_count"`
	WarningCount    int     `json:"warning_count"`
	InfoCount       int     `json:"info_count"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// Report is the complete output structure persisted after an analysis run.
type Report struct {
	Meta        ReportMeta   `json:"meta"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}
