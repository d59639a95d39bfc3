package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"rtp/internal/domain"
	"rtp/internal/vars"
)

// Analyzer statically checks suites against the scope their imports build:
// every step must name a keyword visible to the suite, with an acceptable
// argument count, and every variable reference should have a definition.
type Analyzer struct {
	loader *Loader
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(loader *Loader) *Analyzer {
	return &Analyzer{loader: loader}
}

// run is the per-suite analysis state.
type run struct {
	ns         *Namespace
	suite      *domain.Suite
	isResource bool
	softMisses bool // opaque libraries imported, unresolved is a warning
	used       map[*domain.Keyword]bool
	diags      []domain.Diagnostic
}

// stepCtx tracks where in the suite a step sits while walking.
type stepCtx struct {
	context string // enclosing test case or keyword name

	// allowStatusVars is set in teardowns and in keyword bodies: a keyword
	// may be called from a teardown, so only direct use in test bodies and
	// setups is provably wrong.
	allowStatusVars bool

	locals map[string]bool // normalized local variable names
}

// Analyze checks one parsed suite and returns its diagnostics.
func (a *Analyzer) Analyze(suite *domain.Suite) []domain.Diagnostic {
	ns := BuildNamespace(suite, a.loader)
	r := &run{
		ns:         ns,
		suite:      suite,
		isResource: strings.EqualFold(filepath.Ext(suite.Path), ".resource"),
		softMisses: ns.hasOpaqueLibraries(),
		used:       make(map[*domain.Keyword]bool),
		diags:      ns.diags,
	}

	r.checkDuplicates()
	r.checkSuiteSettings()
	for i := range suite.TestCases {
		r.checkTestCase(&suite.TestCases[i])
	}
	for i := range suite.Keywords {
		r.checkKeyword(&suite.Keywords[i])
	}
	r.checkUnusedKeywords()

	for i := range r.diags {
		if r.diags[i].SuitePath == "" {
			r.diags[i].SuitePath = suite.Path
		}
	}
	return r.diags
}

func (r *run) report(d domain.Diagnostic) {
	r.diags = append(r.diags, d)
}

func (r *run) checkDuplicates() {
	seenTests := make(map[string]int)
	for i := range r.suite.TestCases {
		tc := &r.suite.TestCases[i]
		norm := vars.Normalize(tc.Name)
		if first, ok := seenTests[norm]; ok {
			r.report(domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Code:     domain.CodeDuplicateName,
				Message:  fmt.Sprintf("test case %q already defined on line %d", tc.Name, first),
				Line:     tc.Line,
				Context:  tc.Name,
			})
			continue
		}
		seenTests[norm] = tc.Line
	}

	seenKeywords := make(map[string]int)
	for i := range r.suite.Keywords {
		kw := &r.suite.Keywords[i]
		norm := vars.Normalize(kw.Name)
		if first, ok := seenKeywords[norm]; ok {
			r.report(domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     domain.CodeDuplicateName,
				Message:  fmt.Sprintf("keyword %q already defined on line %d", kw.Name, first),
				Line:     kw.Line,
				Context:  kw.Name,
			})
			continue
		}
		seenKeywords[norm] = kw.Line
	}
}

func (r *run) checkSuiteSettings() {
	set := &r.suite.Settings
	base := stepCtx{context: "suite settings", locals: map[string]bool{}}
	teardown := base
	teardown.allowStatusVars = true

	if set.SuiteSetup != nil {
		r.checkStep(set.SuiteSetup, base)
	}
	if set.SuiteTeardown != nil {
		r.checkStep(set.SuiteTeardown, teardown)
	}
	if set.TestSetup != nil {
		r.checkStep(set.TestSetup, base)
	}
	if set.TestTeardown != nil {
		r.checkStep(set.TestTeardown, teardown)
	}
}

func (r *run) checkTestCase(tc *domain.TestCase) {
	ctx := stepCtx{context: tc.Name, locals: map[string]bool{}}

	if tc.Setup != nil {
		r.checkStep(tc.Setup, ctx)
	}

	template := tc.EffectiveTemplate(r.suite.Settings.TestTemplate)
	if template != "" {
		r.checkTemplatedCase(tc, template, ctx)
	} else {
		for i := range tc.Steps {
			r.checkStep(&tc.Steps[i], ctx)
		}
	}

	if tc.Teardown != nil {
		tctx := ctx
		tctx.allowStatusVars = true
		r.checkStep(tc.Teardown, tctx)
	}
}

// checkTemplatedCase treats every body row as a data row of the template
// keyword. Loops inside templated cases contribute their body rows.
func (r *run) checkTemplatedCase(tc *domain.TestCase, template string, ctx stepCtx) {
	res := r.ns.Resolve(template)
	if res.entry != nil {
		r.used[res.entry.kw] = true
	}
	if res.status != resolved {
		r.report(domain.Diagnostic{
			Severity: domain.SeverityError,
			Code:     domain.CodeTemplate,
			Message:  fmt.Sprintf("template keyword %q not found", template),
			Line:     tc.Line,
			Context:  tc.Name,
		})
		return
	}

	var rows func(steps []domain.Step)
	rows = func(steps []domain.Step) {
		for i := range steps {
			step := &steps[i]
			if step.IsFor {
				for _, v := range step.ForVars {
					ctx.locals[vars.Normalize(trimDecoration(v))] = true
				}
				r.checkVariableCells(step.ForValues, step.Line, ctx)
				rows(step.Body)
				continue
			}
			cells := append([]string{step.Name}, step.Args...)
			if res.hasSpec && !res.spec.Accepts(len(cells)) {
				r.report(domain.Diagnostic{
					Severity: domain.SeverityError,
					Code:     domain.CodeArgCount,
					Message: fmt.Sprintf("template %q expects %s arguments, data row has %d",
						template, res.spec, len(cells)),
					Line:    step.Line,
					Context: tc.Name,
				})
			}
			r.checkVariableCells(cells, step.Line, ctx)
		}
	}
	rows(tc.Steps)
}

func (r *run) checkKeyword(kw *domain.Keyword) {
	ctx := stepCtx{context: kw.Name, allowStatusVars: true, locals: map[string]bool{}}

	for _, a := range kw.Args {
		name := a
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		ctx.locals[vars.Normalize(trimDecoration(strings.TrimSpace(name)))] = true
	}
	if embedded, _ := compileEmbedded(kw.Name); embedded != nil {
		for _, name := range embedded.argNames {
			ctx.locals[vars.Normalize(name)] = true
		}
	}

	for i := range kw.Steps {
		r.checkStep(&kw.Steps[i], ctx)
	}
	if kw.Teardown != nil {
		tctx := ctx
		tctx.allowStatusVars = true
		r.checkStep(kw.Teardown, tctx)
	}
}

// runKeywordArg maps BuiltIn wrapper keywords (normalized) to the argument
// position holding the keyword they run.
var runKeywordArg = map[string]int{
	"runkeyword":                     0,
	"runkeywordandignoreerror":       0,
	"runkeywordandreturnstatus":      0,
	"runkeywordandcontinueonfailure": 0,
	"runkeywordif":                   1,
	"runkeywordunless":               1,
	"runkeywordandexpecterror":       1,
	"repeatkeyword":                  1,
	"waituntilkeywordsucceeds":       2,
}

func (r *run) checkStep(step *domain.Step, ctx stepCtx) {
	if step.IsFor {
		for _, v := range step.ForVars {
			ctx.locals[vars.Normalize(trimDecoration(v))] = true
		}
		r.checkVariableCells(step.ForValues, step.Line, ctx)
		for i := range step.Body {
			r.checkStep(&step.Body[i], ctx)
		}
		return
	}

	name, args, targets := splitAssignment(step)
	if name == "" {
		r.report(domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Code:     domain.CodeParse,
			Message:  "assignment has no keyword to call",
			Line:     step.Line,
			Context:  ctx.context,
		})
		return
	}

	r.checkCall(name, args, step.Line, ctx)
	r.checkVariableCells(args, step.Line, ctx)

	for _, t := range targets {
		ctx.locals[vars.Normalize(trimDecoration(t))] = true
	}
}

// checkCall resolves one keyword call and checks its argument count,
// following BuiltIn run-keyword wrappers into the keyword they carry.
func (r *run) checkCall(name string, args []string, line int, ctx stepCtx) {
	// A fully dynamic call like "${kw}" is the engine's to resolve.
	if strings.HasPrefix(name, "${") && strings.HasSuffix(name, "}") {
		r.checkVariableCells([]string{name}, line, ctx)
		return
	}

	res := r.ns.Resolve(name)
	if res.entry != nil {
		r.used[res.entry.kw] = true
	}

	switch res.status {
	case resolved:
		if res.hasSpec && !res.spec.Accepts(len(args)) {
			r.report(domain.Diagnostic{
				Severity: domain.SeverityError,
				Code:     domain.CodeArgCount,
				Message: fmt.Sprintf("keyword %q expects %s arguments, got %d",
					name, res.spec, len(args)),
				Line:    line,
				Context: ctx.context,
			})
		}
	case ambiguousKeyword:
		r.report(domain.Diagnostic{
			Severity: domain.SeverityWarning,
			Code:     domain.CodeAmbiguous,
			Message: fmt.Sprintf("call %q matches multiple embedded-argument keywords: %s",
				name, strings.Join(res.candidates, ", ")),
			Line:    line,
			Context: ctx.context,
		})
	case embeddedMismatch:
		r.report(domain.Diagnostic{
			Severity: domain.SeverityError,
			Code:     domain.CodeEmbeddedMismatch,
			Message: fmt.Sprintf("call %q matches %q except for an embedded argument constraint",
				name, res.candidates[0]),
			Line:    line,
			Context: ctx.context,
		})
	default:
		severity := domain.SeverityError
		msg := fmt.Sprintf("keyword %q not found", name)
		if r.softMisses {
			severity = domain.SeverityWarning
			msg = fmt.Sprintf("keyword %q not found in local scope; it may come from an imported library", name)
		}
		r.report(domain.Diagnostic{
			Severity: severity,
			Code:     domain.CodeUnresolved,
			Message:  msg,
			Line:     line,
			Context:  ctx.context,
		})
		return
	}

	if pos, ok := runKeywordArg[vars.Normalize(name)]; ok && res.status == resolved {
		if pos < len(args) {
			r.checkNested(args[pos:], line, ctx)
		}
	}
}

// checkNested checks the keyword carried inside a run-keyword wrapper,
// splitting off ELSE and ELSE IF branches so each branch keyword is checked
// against its own arguments.
func (r *run) checkNested(cells []string, line int, ctx stepCtx) {
	if len(cells) == 0 {
		return
	}
	name, rest := cells[0], cells[1:]
	for i, c := range rest {
		switch c {
		case "ELSE":
			r.checkCall(name, rest[:i], line, ctx)
			r.checkNested(rest[i+1:], line, ctx)
			return
		case "ELSE IF":
			r.checkCall(name, rest[:i], line, ctx)
			if len(rest) > i+1 {
				r.checkNested(rest[i+2:], line, ctx)
			}
			return
		}
	}
	r.checkCall(name, rest, line, ctx)
}

// checkVariableCells reports references to variables with no visible
// definition and status pseudo-variables used outside a teardown.
func (r *run) checkVariableCells(cells []string, line int, ctx stepCtx) {
	for _, cell := range cells {
		for _, name := range vars.Refs(cell) {
			if vars.IsTeardownOnly(name) {
				if !ctx.allowStatusVars {
					r.report(domain.Diagnostic{
						Severity: domain.SeverityError,
						Code:     domain.CodeStatusVar,
						Message:  fmt.Sprintf("variable ${%s} is only available in teardowns", name),
						Line:     line,
						Context:  ctx.context,
					})
				}
				continue
			}
			if vars.IsBuiltin(name) || ctx.locals[vars.Normalize(name)] || r.ns.KnownVariable(name) {
				continue
			}
			if r.ns.varsOpaque {
				continue
			}
			r.report(domain.Diagnostic{
				Severity: domain.SeverityWarning,
				Code:     domain.CodeUnknownVar,
				Message:  fmt.Sprintf("variable ${%s} has no visible definition", name),
				Line:     line,
				Context:  ctx.context,
			})
		}
	}
}

// checkUnusedKeywords flags suite-local keywords nothing in the file calls.
// Resource files are skipped: their keywords exist for importers.
func (r *run) checkUnusedKeywords() {
	if r.isResource {
		return
	}
	for i := range r.suite.Keywords {
		kw := &r.suite.Keywords[i]
		if r.used[kw] {
			continue
		}
		r.report(domain.Diagnostic{
			Severity: domain.SeverityInfo,
			Code:     domain.CodeUnusedKeyword,
			Message:  fmt.Sprintf("keyword %q is never called in this file", kw.Name),
			Line:     kw.Line,
			Context:  kw.Name,
		})
	}
}

// splitAssignment separates leading ${var} = assignment targets from the
// keyword actually called. Steps without assignments come back unchanged.
func splitAssignment(step *domain.Step) (name string, args []string, targets []string) {
	cells := append([]string{step.Name}, step.Args...)
	i := 0
	for i < len(cells) && isAssignTarget(cells[i]) {
		targets = append(targets, strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cells[i]), "=")))
		i++
	}
	if len(targets) == 0 {
		return step.Name, step.Args, nil
	}
	if i >= len(cells) {
		return "", nil, targets
	}
	return cells[i], cells[i+1:], targets
}

// isAssignTarget matches cells like "${x}", "${x} =", "@{rest}=".
func isAssignTarget(cell string) bool {
	c := strings.TrimSpace(cell)
	c = strings.TrimSpace(strings.TrimSuffix(c, "="))
	if len(c) < 3 || !strings.HasSuffix(c, "}") {
		return false
	}
	if !(strings.HasPrefix(c, "${") || strings.HasPrefix(c, "@{") || strings.HasPrefix(c, "&{")) {
		return false
	}
	// A call like "${kw}" with arguments is a dynamic call, not an
	// assignment; only treat variable-shaped cells with no inner syntax
	// as targets.
	inner := c[2 : len(c)-1]
	return !strings.ContainsAny(inner, "{}$@&")
}
