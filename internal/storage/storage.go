package storage

import (
	"time"

	"rtp/internal/config"
	"rtp/internal/domain"
)

// Storage persists and loads analysis reports (e.g. for the issues viewer).
type Storage interface {
	Save(results []domain.SuiteResult, duration time.Duration, workers int) error
	Load() (*domain.Report, error)
	// SaveReport writes the full report (e.g. after resolve toggles in the
	// issues viewer).
	SaveReport(report *domain.Report) error
}

// JSONStorage stores reports in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
