package domain

// Step is a single executable row: a keyword call with argument cells, or a
// FOR loop header with a nested body.
type Step struct {
	Name string   // keyword name as written; empty for a FOR step
	Args []string
	Line int

	// Loop fields, set when IsFor is true.
	IsFor     bool
	ForVars   []string // loop variables, e.g. ${index}
	ForMode   string   // IN, IN RANGE, IN ENUMERATE, IN ZIP
	ForValues []string // value cells after the mode
	Body      []Step
}
