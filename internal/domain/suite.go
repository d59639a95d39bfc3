package domain

// ImportKind distinguishes the three import statements a settings table can carry.
type ImportKind string

const (
	ResourceImport  ImportKind = "resource"
	LibraryImport   ImportKind = "library"
	VariablesImport ImportKind = "variables"
)

// Import is a resource, library or variables import declared in the settings table.
type Import struct {
	Kind  ImportKind
	Name  string   // path or library name as written
	Alias string   // library alias from AS / WITH NAME, empty otherwise
	Args  []string // library constructor arguments
	Line  int
}

// Variable is one row of a variables table.
type Variable struct {
	Name   string // as written, e.g. ${HOST}, @{ITEMS}, &{HEADERS}
	Values []string
	Line   int
}

// SuiteSettings holds the suite-level settings that affect analysis.
type SuiteSettings struct {
	TestTemplate  string // default template keyword, empty if none
	SuiteSetup    *Step
	SuiteTeardown *Step
	TestSetup     *Step
	TestTeardown  *Step
	TestTags      []string
	Documentation string
}

// Suite is one parsed suite or resource file.
type Suite struct {
	Path      string
	Name      string // file name without extension
	Settings  SuiteSettings
	Imports   []Import
	Variables []Variable
	TestCases []TestCase
	Keywords  []Keyword
}

// TestCase is a named, ordered list of steps with its per-case settings.
type TestCase struct {
	Name          string
	Line          int
	Tags          []string
	Template      string // value of [Template]; meaningful only when HasTemplate
	HasTemplate   bool
	Setup         *Step
	Teardown      *Step
	Documentation string
	Timeout       string
	Steps         []Step
}

// TemplateNone is the sentinel that disables the suite default template
// for a single test case.
const TemplateNone = "NONE"

// EffectiveTemplate resolves the template applying to this case given the
// suite default: per-case [Template] wins, and the NONE sentinel disables
// templating entirely.
func (tc *TestCase) EffectiveTemplate(suiteDefault string) string {
	if tc.HasTemplate {
		if tc.Template == TemplateNone || tc.Template == "" {
			return ""
		}
		return tc.Template
	}
	return suiteDefault
}

// Keyword is a user keyword definition: a name (possibly with embedded
// argument placeholders), an argument list and an ordered list of steps.
type Keyword struct {
	Name          string
	Line          int
	Args          []string // as written, e.g. ${first}, ${second}=x, @{rest}
	Steps         []Step
	Teardown      *Step
	Documentation string
	Returns       []string
}

// CountSteps returns the number of steps including nested loop bodies.
func CountSteps(steps []Step) int {
	n := 0
	for i := range steps {
		n++
		if len(steps[i].Body) > 0 {
			n += CountSteps(steps[i].Body)
		}
	}
	return n
}
