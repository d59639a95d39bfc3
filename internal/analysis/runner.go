package analysis

import (
	"time"

	"rtp/internal/domain"
	"rtp/internal/parser"
)

// Runner parses and analyzes a single suite file.
type Runner struct {
	parser   parser.SuiteParser
	analyzer *Analyzer
}

// NewRunner creates a new Runner
func NewRunner(p parser.SuiteParser, analyzer *Analyzer) *Runner {
	return &Runner{parser: p, analyzer: analyzer}
}

// Run processes one suite file end to end: parse, build the namespace,
// analyze. Parse diagnostics come first in the result.
func (r *Runner) Run(path string) domain.SuiteResult {
	start := time.Now()

	suite, parseDiags, err := r.parser.ParseFile(path)
	if err != nil {
		return domain.SuiteResult{
			SuitePath: path,
			Err:       err,
			Duration:  time.Since(start),
		}
	}

	diags := append(parseDiags, r.analyzer.Analyze(suite)...)
	return domain.SuiteResult{
		SuitePath:   path,
		Suite:       suite,
		Diagnostics: diags,
		Duration:    time.Since(start),
	}
}
