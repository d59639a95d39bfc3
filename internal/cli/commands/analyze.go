package commands

import (
	"fmt"

	"rtp/internal/analysis"
	"rtp/internal/config"
	"rtp/internal/discovery"
	"rtp/internal/storage"
	"rtp/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// AnalyzeCommand handles the analyze command
type AnalyzeCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	pool      *analysis.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    *ui.IssueViewer
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	pool *analysis.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer *ui.IssueViewer,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		pool:      pool,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (ac *AnalyzeCommand) Execute(cmd *cobra.Command, args []string) error {
	suitePath := ac.config.GetSuitePath()
	suites, err := ac.scanner.Scan(suitePath)
	if err != nil {
		return err
	}

	suites = ac.filter.FilterByName(suites, ac.config.Flags.NameFilter)

	if len(suites) == 0 {
		color.Yellow("No suite files to analyze")
		return nil
	}

	progressBar := ui.NewProgressBar(len(suites))
	ac.pool.SetProgress(progressBar)

	results, duration, err := ac.pool.AnalyzeWithOptions(suites, ac.config.Flags.FailFast)
	if err != nil {
		return err
	}

	if err := ac.storage.Save(results, duration, ac.config.Processors); err != nil {
		return fmt.Errorf("failed to save analysis report: %w", err)
	}

	report, err := ac.storage.Load()
	if err != nil {
		return err
	}
	if err := ac.formatter.PrintMetaStats(report); err != nil {
		return err
	}

	if ac.config.Flags.OpenIssues && len(report.Diagnostics) > 0 {
		if err := ac.viewer.View(report); err != nil {
			return err
		}
	}

	if ac.config.Flags.Strict && report.Meta.ErrorCount > 0 {
		return fmt.Errorf("%d error-severity finding(s)", report.Meta.ErrorCount)
	}
	return nil
}
