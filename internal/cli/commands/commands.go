package commands

import (
	"rtp/internal/analysis"
	"rtp/internal/cli"
	"rtp/internal/config"
	"rtp/internal/discovery"
	"rtp/internal/parser"
	"rtp/internal/storage"
	"rtp/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Analyze *AnalyzeCommand
	List    *ListCommand
	Show    *ShowCommand
	Issues  *IssuesCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	scanner := discovery.NewScanner(cfg.PathsToIgnore, cfg.SuiteExtensions)
	filter := discovery.NewFilter()
	robotParser := parser.NewRobotParser()
	loader := analysis.NewLoader(robotParser)
	analyzer := analysis.NewAnalyzer(loader)
	runner := analysis.NewRunner(robotParser, analyzer)
	scheduler := analysis.NewRoundRobinScheduler()
	pool := analysis.NewWorkerPool(cfg, runner, scheduler)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	issueViewer := ui.NewIssueViewer(cfg, jsonStorage)

	return &Commands{
		Analyze: NewAnalyzeCommand(cfg, scanner, filter, pool, jsonStorage, formatter, issueViewer),
		List:    NewListCommand(cfg, scanner, filter, robotParser, formatter),
		Show:    NewShowCommand(cfg, runner, formatter),
		Issues:  NewIssuesCommand(cfg, jsonStorage, issueViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Analyze command
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze suite files in parallel",
		Long:  "Discover, parse and statically check suite files using parallel workers",
		RunE:  c.Analyze.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			if flags.Processors > 0 {
				cfg.Processors = flags.Processors
			}
			return nil
		},
	}
	analyzeCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 4, "Number of processors to use")
	analyzeCmd.Flags().StringVarP(&flags.SuitePath, "suite-path", "s", "", "Path to the folder where suite discovery should start")
	analyzeCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g. 'login_*.robot' or '*checkout*')")
	analyzeCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on the first flagged suite")
	analyzeCmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit non-zero when any error-severity finding is reported")
	analyzeCmd.Flags().BoolVar(&flags.OpenIssues, "open-issues", false, "Open the issues viewer when the analysis finishes with findings")
	rootCmd.AddCommand(analyzeCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered suites",
		Long:  "Scan and list suite files without analyzing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by name pattern (supports wildcards)")
	listCmd.Flags().StringVarP(&flags.SuitePath, "suite-path", "s", "", "Path to the folder where suite discovery should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases inside each suite")
	listCmd.Flags().BoolVarP(&flags.Keywords, "keywords", "k", false, "List keywords inside each suite")
	rootCmd.AddCommand(listCmd)

	// Show command
	showCmd := &cobra.Command{
		Use:   "show <suite-file>",
		Short: "Show one suite's structure",
		Long:  "Parse and analyze a single suite file and dump its structure and findings",
		Args:  cobra.ExactArgs(1),
		RunE:  c.Show.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	rootCmd.AddCommand(showCmd)

	// Issues command
	issuesCmd := &cobra.Command{
		Use:   "issues",
		Short: "View analysis findings interactively",
		Long:  "Display findings from the last analysis run in an interactive viewer",
		RunE:  c.Issues.Execute,
	}
	rootCmd.AddCommand(issuesCmd)
}
