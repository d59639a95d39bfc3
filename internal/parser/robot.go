package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"rtp/internal/domain"
)

// RobotParser parses Robot Framework plain-text suite and resource files.
type RobotParser struct{}

// NewRobotParser creates a new RobotParser
func NewRobotParser() *RobotParser {
	return &RobotParser{}
}

// cellSplit separates a row into cells: a tab or two-plus spaces.
var cellSplit = regexp.MustCompile(`\t+| {2,}`)

// sectionHeader matches table headers like "*** Test Cases ***".
var sectionHeader = regexp.MustCompile(`(?i)^\*+\s*(settings?|variables?|test cases?|tasks?|keywords?|comments?)\s*\**\s*$`)

// variableName matches a variable definition cell, optionally with a
// trailing "=" (e.g. "${HOST} =").
var variableName = regexp.MustCompile(`^[$@&]\{[^{}]*\}\s*=?$`)

type section int

const (
	sectionNone section = iota
	sectionSettings
	sectionVariables
	sectionTestCases
	sectionKeywords
	sectionComments
)

// row is one logical line after continuation merging and comment stripping.
type row struct {
	cells    []string
	line     int
	indented bool
}

// ParseFile reads and parses a suite file.
func (p *RobotParser) ParseFile(path string) (*domain.Suite, []domain.Diagnostic, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading file %s: %w", path, err)
	}
	suite, diags := p.Parse(path, content)
	return suite, diags, nil
}

// Parse parses file content. Parse problems never abort the file: they are
// reported as diagnostics and parsing resumes at the next row.
func (p *RobotParser) Parse(path string, content []byte) (*domain.Suite, []domain.Diagnostic) {
	s := &suiteBuilder{
		suite: &domain.Suite{
			Path: path,
			Name: suiteName(path),
		},
	}

	rows := tokenize(string(content))
	current := sectionNone
	for _, r := range rows {
		if name, ok := headerFor(r); ok {
			s.flush()
			current = name
			continue
		}
		switch current {
		case sectionSettings:
			s.settingRow(r)
		case sectionVariables:
			s.variableRow(r)
		case sectionTestCases:
			s.testCaseRow(r)
		case sectionKeywords:
			s.keywordRow(r)
		case sectionComments:
			// ignored
		default:
			s.errorf(r.line, "data before first section header: %q", r.cells[0])
		}
	}
	s.flush()

	for i := range s.diags {
		s.diags[i].SuitePath = path
	}
	return s.suite, s.diags
}

// tokenize splits content into logical rows: blank and comment lines dropped,
// cells split, trailing comment cells stripped, "..." continuations merged.
func tokenize(content string) []row {
	var rows []row
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indented := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")

		cells := cellSplit.Split(trimmed, -1)
		// A cell starting with "#" comments out the rest of the row.
		for j, c := range cells {
			if strings.HasPrefix(c, "#") {
				cells = cells[:j]
				break
			}
		}
		if len(cells) == 0 {
			continue
		}

		if cells[0] == "..." {
			if len(rows) == 0 {
				// Continuation with nothing to continue; keep the payload
				// as its own row so the section handler can report it.
				rows = append(rows, row{cells: cells[1:], line: i + 1, indented: indented})
				continue
			}
			prev := &rows[len(rows)-1]
			prev.cells = append(prev.cells, cells[1:]...)
			continue
		}
		rows = append(rows, row{cells: cells, line: i + 1, indented: indented})
	}
	return rows
}

func headerFor(r row) (section, bool) {
	if !strings.HasPrefix(r.cells[0], "*") {
		return sectionNone, false
	}
	full := strings.Join(r.cells, "  ")
	m := sectionHeader.FindStringSubmatch(full)
	if m == nil {
		return sectionNone, false
	}
	switch strings.ToLower(strings.TrimSuffix(m[1], "s")) {
	case "setting":
		return sectionSettings, true
	case "variable":
		return sectionVariables, true
	case "test case", "task":
		return sectionTestCases, true
	case "keyword":
		return sectionKeywords, true
	default:
		return sectionComments, true
	}
}

func suiteName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(name, "_", " ")
}

// suiteBuilder accumulates parse state for one file.
type suiteBuilder struct {
	suite *domain.Suite
	diags []domain.Diagnostic

	// test-case / keyword body state
	tc       *domain.TestCase
	kw       *domain.Keyword
	forStack []*domain.Step
}

func (s *suiteBuilder) errorf(line int, format string, args ...any) {
	s.diags = append(s.diags, domain.Diagnostic{
		Severity: domain.SeverityError,
		Code:     domain.CodeParse,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// loopErrorf reports a malformed FOR loop under its own code so loop
// structure problems are distinguishable from general parse errors.
func (s *suiteBuilder) loopErrorf(line int, format string, args ...any) {
	s.diags = append(s.diags, domain.Diagnostic{
		Severity: domain.SeverityError,
		Code:     domain.CodeLoop,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

func (s *suiteBuilder) warnf(line int, format string, args ...any) {
	s.diags = append(s.diags, domain.Diagnostic{
		Severity: domain.SeverityWarning,
		Code:     domain.CodeParse,
		Message:  fmt.Sprintf(format, args...),
		Line:     line,
	})
}

// flush closes any open test case or keyword at a section boundary.
func (s *suiteBuilder) flush() {
	s.closeBody()
	if s.tc != nil {
		s.suite.TestCases = append(s.suite.TestCases, *s.tc)
		s.tc = nil
	}
	if s.kw != nil {
		s.suite.Keywords = append(s.suite.Keywords, *s.kw)
		s.kw = nil
	}
}

func (s *suiteBuilder) closeBody() {
	for len(s.forStack) > 0 {
		open := s.forStack[len(s.forStack)-1]
		s.loopErrorf(open.Line, "FOR loop has no closing END")
		s.popFor()
	}
}

// settingRow handles one row of the settings table.
func (s *suiteBuilder) settingRow(r row) {
	name := strings.ToLower(strings.TrimSuffix(r.cells[0], ":"))
	args := r.cells[1:]
	set := &s.suite.Settings

	requireArg := func() bool {
		if len(args) == 0 {
			s.errorf(r.line, "setting %q requires a value", r.cells[0])
			return false
		}
		return true
	}

	switch name {
	case "resource":
		if requireArg() {
			s.suite.Imports = append(s.suite.Imports, domain.Import{
				Kind: domain.ResourceImport, Name: args[0], Line: r.line,
			})
			if len(args) > 1 {
				s.warnf(r.line, "resource import takes a single path, extra cells ignored")
			}
		}
	case "library":
		if requireArg() {
			s.suite.Imports = append(s.suite.Imports, libraryImport(args, r.line))
		}
	case "variables":
		if requireArg() {
			s.suite.Imports = append(s.suite.Imports, domain.Import{
				Kind: domain.VariablesImport, Name: args[0], Args: args[1:], Line: r.line,
			})
		}
	case "test template", "task template":
		if requireArg() {
			if args[0] == domain.TemplateNone {
				set.TestTemplate = ""
			} else {
				set.TestTemplate = args[0]
			}
		}
	case "suite setup":
		set.SuiteSetup = settingStep(args, r.line)
	case "suite teardown":
		set.SuiteTeardown = settingStep(args, r.line)
	case "test setup", "task setup":
		set.TestSetup = settingStep(args, r.line)
	case "test teardown", "task teardown":
		set.TestTeardown = settingStep(args, r.line)
	case "test tags", "task tags", "force tags":
		set.TestTags = append(set.TestTags, args...)
	case "default tags":
		// Deprecated but still seen in the wild; folded into the test tags.
		set.TestTags = append(set.TestTags, args...)
	case "documentation":
		set.Documentation = strings.Join(args, " ")
	case "metadata", "suite name", "test timeout", "task timeout":
		// accepted, not used by analysis
	default:
		s.warnf(r.line, "unknown setting %q", r.cells[0])
	}
}

// libraryImport parses "Library  Name  arg  AS  Alias" rows.
func libraryImport(args []string, line int) domain.Import {
	imp := domain.Import{Kind: domain.LibraryImport, Name: args[0], Line: line}
	rest := args[1:]
	for i, a := range rest {
		if a == "AS" || a == "WITH NAME" {
			if i+1 < len(rest) {
				imp.Alias = rest[i+1]
			}
			rest = rest[:i]
			break
		}
	}
	imp.Args = rest
	return imp
}

// settingStep builds a setup/teardown step from a setting value, with NONE
// meaning "explicitly nothing".
func settingStep(args []string, line int) *domain.Step {
	if len(args) == 0 || args[0] == "NONE" {
		return nil
	}
	return &domain.Step{Name: args[0], Args: args[1:], Line: line}
}

// variableRow handles one row of the variables table.
func (s *suiteBuilder) variableRow(r row) {
	name := r.cells[0]
	if !variableName.MatchString(name) {
		s.errorf(r.line, "invalid variable name %q", name)
		return
	}
	name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "="))
	s.suite.Variables = append(s.suite.Variables, domain.Variable{
		Name:   name,
		Values: r.cells[1:],
		Line:   r.line,
	})
}

// testCaseRow handles one row of the test cases table.
func (s *suiteBuilder) testCaseRow(r row) {
	if !r.indented {
		s.flush()
		s.tc = &domain.TestCase{Name: r.cells[0], Line: r.line}
		// Single-row short form: name and first step on one line.
		if len(r.cells) > 1 {
			s.bodyRow(row{cells: r.cells[1:], line: r.line, indented: true})
		}
		return
	}
	if s.tc == nil {
		s.errorf(r.line, "step outside any test case")
		return
	}
	if setting, ok := bracketSetting(r.cells[0]); ok {
		s.testCaseSetting(setting, r)
		return
	}
	s.bodyRow(r)
}

func (s *suiteBuilder) testCaseSetting(setting string, r row) {
	args := r.cells[1:]
	switch setting {
	case "tags":
		s.tc.Tags = append(s.tc.Tags, args...)
	case "template":
		s.tc.HasTemplate = true
		if len(args) > 0 {
			s.tc.Template = args[0]
		}
	case "setup":
		s.tc.Setup = settingStep(args, r.line)
	case "teardown":
		s.tc.Teardown = settingStep(args, r.line)
	case "documentation":
		s.tc.Documentation = strings.Join(args, " ")
	case "timeout":
		if len(args) > 0 {
			s.tc.Timeout = args[0]
		}
	default:
		s.errorf(r.line, "unknown test case setting [%s]", setting)
	}
}

// keywordRow handles one row of the keywords table.
func (s *suiteBuilder) keywordRow(r row) {
	if !r.indented {
		s.flush()
		s.kw = &domain.Keyword{Name: r.cells[0], Line: r.line}
		if len(r.cells) > 1 {
			s.bodyRow(row{cells: r.cells[1:], line: r.line, indented: true})
		}
		return
	}
	if s.kw == nil {
		s.errorf(r.line, "step outside any keyword")
		return
	}
	if setting, ok := bracketSetting(r.cells[0]); ok {
		s.keywordSetting(setting, r)
		return
	}
	s.bodyRow(r)
}

func (s *suiteBuilder) keywordSetting(setting string, r row) {
	args := r.cells[1:]
	switch setting {
	case "arguments":
		s.kw.Args = append(s.kw.Args, args...)
	case "teardown":
		s.kw.Teardown = settingStep(args, r.line)
	case "documentation":
		s.kw.Documentation = strings.Join(args, " ")
	case "return":
		s.kw.Returns = append(s.kw.Returns, args...)
	case "tags", "timeout":
		// accepted, not used by analysis
	default:
		s.errorf(r.line, "unknown keyword setting [%s]", setting)
	}
}

// bracketSetting extracts "tags" from "[Tags]".
func bracketSetting(cell string) (string, bool) {
	if !strings.HasPrefix(cell, "[") || !strings.HasSuffix(cell, "]") {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(cell[1 : len(cell)-1])), true
}

var forModes = map[string]bool{
	"IN":           true,
	"IN RANGE":     true,
	"IN ENUMERATE": true,
	"IN ZIP":       true,
}

// bodyRow appends one step to the open test case or keyword, tracking FOR
// blocks through a stack so loops may nest.
func (s *suiteBuilder) bodyRow(r row) {
	first := r.cells[0]

	if first == "FOR" || first == ":FOR" {
		s.pushFor(r)
		return
	}
	if first == "END" {
		if len(s.forStack) == 0 {
			s.loopErrorf(r.line, "END without an open FOR")
			return
		}
		done := s.forStack[len(s.forStack)-1]
		if len(done.Body) == 0 {
			s.loopErrorf(done.Line, "FOR loop has an empty body")
		}
		s.popFor()
		return
	}

	s.attach(domain.Step{Name: first, Args: r.cells[1:], Line: r.line})
}

func (s *suiteBuilder) pushFor(r row) {
	step := &domain.Step{IsFor: true, Line: r.line}
	cells := r.cells[1:]

	i := 0
	for i < len(cells) && variableName.MatchString(cells[i]) {
		step.ForVars = append(step.ForVars, cells[i])
		i++
	}
	if len(step.ForVars) == 0 {
		s.loopErrorf(r.line, "FOR loop has no loop variables")
	}
	if i < len(cells) {
		step.ForMode = cells[i]
		step.ForValues = cells[i+1:]
		if !forModes[step.ForMode] {
			s.loopErrorf(r.line, "unknown FOR loop mode %q", step.ForMode)
		}
	} else {
		s.loopErrorf(r.line, "FOR loop has no IN clause")
	}
	s.forStack = append(s.forStack, step)
}

// popFor closes the innermost loop and attaches it where it belongs.
func (s *suiteBuilder) popFor() {
	done := s.forStack[len(s.forStack)-1]
	s.forStack = s.forStack[:len(s.forStack)-1]
	s.attach(*done)
}

// attach adds a step to the innermost open loop, or to the open test case
// or keyword when no loop is open.
func (s *suiteBuilder) attach(step domain.Step) {
	if len(s.forStack) > 0 {
		open := s.forStack[len(s.forStack)-1]
		open.Body = append(open.Body, step)
		return
	}
	if s.tc != nil {
		s.tc.Steps = append(s.tc.Steps, step)
	} else if s.kw != nil {
		s.kw.Steps = append(s.kw.Steps, step)
	}
}
