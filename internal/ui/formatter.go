package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"rtp/internal/config"
	"rtp/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintMetaStats displays the statistics table of an analysis report and,
// when suites were flagged, the diagnostics tree.
func (f *Formatter) PrintMetaStats(report *domain.Report) error {
	meta := report.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Suite Analysis Statistics                   ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	printRow := func(label string, value string, c *color.Color) {
		fmt.Printf("│ %-31s │ ", label)
		c.Printf("%-27s", value)
		fmt.Println(" │")
	}
	divider := func() {
		fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
	}

	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	printRow("Total Suites", fmt.Sprintf("%d", meta.TotalSuites), white)
	divider()
	printRow("Clean Suites", fmt.Sprintf("%d", meta.CleanSuites), green)
	divider()
	printRow("Flagged Suites", fmt.Sprintf("%d", meta.FlaggedSuites), red)
	divider()
	printRow("Test Cases", fmt.Sprintf("%d", meta.TotalTests), white)
	divider()
	printRow("Keywords", fmt.Sprintf("%d", meta.TotalKeywords), white)
	divider()
	printRow("Errors", fmt.Sprintf("%d", meta.ErrorCount), red)
	divider()
	printRow("Warnings", fmt.Sprintf("%d", meta.WarningCount), yellow)
	divider()
	printRow("Infos", fmt.Sprintf("%d", meta.InfoCount), white)
	divider()
	printRow("Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), white)
	divider()
	printRow("Workers", fmt.Sprintf("%d", meta.Workers), white)
	divider()
	printRow("Timestamp", meta.Timestamp, white)

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.ErrorCount == 0 && meta.WarningCount == 0 {
		color.Green("✓ All suites are clean!")
	} else {
		color.Red("✗ %d suite(s) flagged with %d error(s) and %d warning(s)",
			meta.FlaggedSuites, meta.ErrorCount, meta.WarningCount)
		fmt.Println()
		f.printDiagnosticsTree(report.Diagnostics)
	}

	return nil
}

// TreeNode represents a node in the file tree structure
type TreeNode struct {
	Name        string
	Children    map[string]*TreeNode
	Diagnostics []domain.Diagnostic
	IsFile      bool
}

// printDiagnosticsTree prints a tree of flagged files with their findings
func (f *Formatter) printDiagnosticsTree(diags []domain.Diagnostic) {
	if len(diags) == 0 {
		return
	}

	fileMap := make(map[string][]domain.Diagnostic)
	for _, d := range diags {
		if d.Severity == domain.SeverityInfo {
			continue
		}
		fileMap[d.SuitePath] = append(fileMap[d.SuitePath], d)
	}

	root := &TreeNode{Children: make(map[string]*TreeNode)}
	for path, fileDiags := range fileMap {
		parts := strings.Split(strings.TrimPrefix(path, "./"), "/")
		current := root
		for i, part := range parts {
			if part == "" {
				continue
			}
			if current.Children[part] == nil {
				current.Children[part] = &TreeNode{
					Name:     part,
					Children: make(map[string]*TreeNode),
					IsFile:   i == len(parts)-1,
				}
			}
			current = current.Children[part]
			if i == len(parts)-1 {
				current.Diagnostics = fileDiags
			}
		}
	}

	f.printTreeNode(root, "", true)
}

func (f *Formatter) printTreeNode(node *TreeNode, prefix string, isRoot bool) {
	var keys []string
	for key := range node.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		child := node.Children[key]

		var connector string
		if isRoot {
			connector = ""
		} else {
			connector = prefix + "|_"
		}

		if child.IsFile {
			color.Yellow("%s%s", connector, child.Name)
			for _, d := range child.Diagnostics {
				line := fmt.Sprintf("%s   |_ [%s] line %d: %s", prefix, d.Code, d.Line, d.Message)
				if d.Severity == domain.SeverityError {
					color.Red("%s", line)
				} else {
					color.Yellow("%s", line)
				}
			}
		} else {
			color.Cyan("%s%s", connector, child.Name)
		}

		var newPrefix string
		if isRoot {
			newPrefix = "  "
		} else {
			newPrefix = prefix + "  "
		}
		f.printTreeNode(child, newPrefix, false)
	}
}

// PrintSuiteList lists discovered suites: one line per file, or the test
// cases / keywords inside them when requested.
func (f *Formatter) PrintSuiteList(suites []*domain.Suite, showTests, showKeywords bool) error {
	totalTests, totalKeywords := 0, 0
	for _, s := range suites {
		totalTests += len(s.TestCases)
		totalKeywords += len(s.Keywords)
	}
	color.Cyan("Found %d suite file(s) with %d test case(s) and %d keyword(s)\n",
		len(suites), totalTests, totalKeywords)

	for _, s := range suites {
		color.White("%s", s.Path)
		if showTests {
			for i := range s.TestCases {
				tc := &s.TestCases[i]
				extra := ""
				if len(tc.Tags) > 0 {
					extra = "  [" + strings.Join(tc.Tags, ", ") + "]"
				}
				color.Green("  %s (%d steps)%s", tc.Name, domain.CountSteps(tc.Steps), extra)
			}
		}
		if showKeywords {
			for i := range s.Keywords {
				kw := &s.Keywords[i]
				color.Yellow("  %s (%d arguments)", kw.Name, len(kw.Args))
			}
		}
	}
	return nil
}

// PrintSuiteDetail dumps one suite's structure: imports, variables, test
// cases with their shape facts, and keywords.
func (f *Formatter) PrintSuiteDetail(suite *domain.Suite, diags []domain.Diagnostic) error {
	color.Cyan("Suite: %s", suite.Name)
	color.White("Path:  %s\n", suite.Path)

	if len(suite.Imports) > 0 {
		color.Cyan("Imports:")
		for _, imp := range suite.Imports {
			alias := ""
			if imp.Alias != "" {
				alias = " AS " + imp.Alias
			}
			color.White("  %-10s %s%s", imp.Kind, imp.Name, alias)
		}
		fmt.Println()
	}

	if suite.Settings.TestTemplate != "" {
		color.Cyan("Default template: %s\n", suite.Settings.TestTemplate)
	}

	if len(suite.Variables) > 0 {
		color.Cyan("Variables:")
		for _, v := range suite.Variables {
			color.White("  %s = %s", v.Name, strings.Join(v.Values, "  "))
		}
		fmt.Println()
	}

	color.Cyan("Test cases (%d):", len(suite.TestCases))
	for i := range suite.TestCases {
		tc := &suite.TestCases[i]
		desc := fmt.Sprintf("%d steps", domain.CountSteps(tc.Steps))
		if tmpl := tc.EffectiveTemplate(suite.Settings.TestTemplate); tmpl != "" {
			desc += ", template: " + tmpl
		} else if tc.HasTemplate {
			desc += ", template disabled"
		}
		if len(tc.Tags) > 0 {
			desc += ", tags: " + strings.Join(tc.Tags, ", ")
		}
		color.Green("  %s (%s)", tc.Name, desc)
	}
	fmt.Println()

	color.Cyan("Keywords (%d):", len(suite.Keywords))
	for i := range suite.Keywords {
		kw := &suite.Keywords[i]
		desc := fmt.Sprintf("%d arguments, %d steps", len(kw.Args), domain.CountSteps(kw.Steps))
		if kw.Teardown != nil {
			desc += ", has teardown"
		}
		color.Yellow("  %s (%s)", kw.Name, desc)
	}

	errs, warns := 0, 0
	for _, d := range diags {
		switch d.Severity {
		case domain.SeverityError:
			errs++
		case domain.SeverityWarning:
			warns++
		}
	}
	fmt.Println()
	if errs == 0 && warns == 0 {
		color.Green("✓ No findings")
	} else {
		color.Red("✗ %d error(s), %d warning(s):", errs, warns)
		for _, d := range diags {
			if d.Severity == domain.SeverityInfo {
				continue
			}
			line := fmt.Sprintf("  [%s] line %d: %s", d.Code, d.Line, d.Message)
			if d.Severity == domain.SeverityError {
				color.Red("%s", line)
			} else {
				color.Yellow("%s", line)
			}
		}
	}
	return nil
}
