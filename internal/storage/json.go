package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rtp/internal/domain"
)

// Save aggregates suite results into a report and writes it to the
// configured JSON output file.
func (s *JSONStorage) Save(results []domain.SuiteResult, duration time.Duration, workers int) error {
	report := BuildReport(results, duration, workers)
	return s.SaveReport(report)
}

// BuildReport aggregates per-suite results into the persisted report shape.
func BuildReport(results []domain.SuiteResult, duration time.Duration, workers int) *domain.Report {
	meta := domain.ReportMeta{
		TotalSuites:     len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	var diagnostics []domain.Diagnostic
	for i := range results {
		r := &results[i]
		if r.Clean() {
			meta.CleanSuites++
		} else {
			meta.FlaggedSuites++
		}
		if r.Suite != nil {
			meta.TotalTests += len(r.Suite.TestCases)
			meta.TotalKeywords += len(r.Suite.Keywords)
		}
		if r.Err != nil {
			diagnostics = append(diagnostics, domain.Diagnostic{
				Severity:  domain.SeverityError,
				Code:      domain.CodeParse,
				Message:   r.Err.Error(),
				SuitePath: r.SuitePath,
			})
		}
		diagnostics = append(diagnostics, r.Diagnostics...)
	}
	for i := range diagnostics {
		switch diagnostics[i].Severity {
		case domain.SeverityError:
			meta.ErrorCount++
		case domain.SeverityWarning:
			meta.WarningCount++
		default:
			meta.InfoCount++
		}
	}

	return &domain.Report{Meta: meta, Diagnostics: diagnostics}
}

// Load reads the last report from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.Report, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report file: %w", err)
	}
	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &report, nil
}

// SaveReport writes the full report to the configured JSON file.
func (s *JSONStorage) SaveReport(report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
