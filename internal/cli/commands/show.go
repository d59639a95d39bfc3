package commands

import (
	"github.com/spf13/cobra"
	"rtp/internal/analysis"
	"rtp/internal/config"
	"rtp/internal/ui"
)

// ShowCommand handles the show command
type ShowCommand struct {
	config    *config.Config
	runner    *analysis.Runner
	formatter *ui.Formatter
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(cfg *config.Config, runner *analysis.Runner, formatter *ui.Formatter) *ShowCommand {
	return &ShowCommand{
		config:    cfg,
		runner:    runner,
		formatter: formatter,
	}
}

// Execute runs the command
func (sc *ShowCommand) Execute(cmd *cobra.Command, args []string) error {
	result := sc.runner.Run(args[0])
	if result.Err != nil {
		return result.Err
	}
	return sc.formatter.PrintSuiteDetail(result.Suite, result.Diagnostics)
}
