package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"rtp/internal/config"
	"rtp/internal/discovery"
	"rtp/internal/domain"
	"rtp/internal/parser"
	"rtp/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	parser    parser.SuiteParser
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	p parser.SuiteParser,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		scanner:   scanner,
		filter:    filter,
		parser:    p,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	suitePath := lc.config.GetSuitePath()
	paths, err := lc.scanner.Scan(suitePath)
	if err != nil {
		return err
	}

	paths = lc.filter.FilterByName(paths, lc.config.Flags.NameFilter)

	if len(paths) == 0 {
		color.Yellow("No suite files found")
		return nil
	}

	var suites []*domain.Suite
	for _, path := range paths {
		suite, _, err := lc.parser.ParseFile(path)
		if err != nil {
			return err
		}
		suites = append(suites, suite)
	}

	return lc.formatter.PrintSuiteList(suites, lc.config.Flags.TestCases, lc.config.Flags.Keywords)
}
