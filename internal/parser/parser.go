package parser

import "rtp/internal/domain"

// SuiteParser parses suite files into the domain model.
type SuiteParser interface {
	ParseFile(path string) (*domain.Suite, []domain.Diagnostic, error)
	Parse(path string, content []byte) (*domain.Suite, []domain.Diagnostic)
}
