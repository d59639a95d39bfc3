package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"rtp/internal/domain"
	"rtp/internal/parser"
)

func newTestRunner() *Runner {
	p := parser.NewRobotParser()
	loader := NewLoader(p)
	return NewRunner(p, NewAnalyzer(loader))
}

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write suite %s: %v", name, err)
	}
	return path
}

func diagsWithCode(diags []domain.Diagnostic, code string) []domain.Diagnostic {
	var out []domain.Diagnostic
	for _, d := range diags {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

func TestAnalyzer_FixturesAreClean(t *testing.T) {
	runner := newTestRunner()

	for _, name := range []string{"templates.robot", "loops.robot", "keywords.resource"} {
		t.Run(name, func(t *testing.T) {
			result := runner.Run(filepath.Join("..", "..", "testdata", name))
			if result.Err != nil {
				t.Fatalf("unexpected error: %v", result.Err)
			}
			if len(result.Diagnostics) != 0 {
				t.Errorf("expected no findings, got %v", result.Diagnostics)
			}
			if !result.Clean() {
				t.Error("expected a clean result")
			}
		})
	}
}

func TestAnalyzer_UnresolvedKeyword(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("error without libraries", func(t *testing.T) {
		path := writeSuite(t, dir, "plain.robot", `*** Test Cases ***
broken
    Missing Keyword    arg
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeUnresolved)
		if len(found) != 1 {
			t.Fatalf("expected one unresolved finding, got %v", result.Diagnostics)
		}
		if found[0].Severity != domain.SeverityError {
			t.Errorf("expected error severity, got %s", found[0].Severity)
		}
		if found[0].Context != "broken" {
			t.Errorf("expected context %q, got %q", "broken", found[0].Context)
		}
	})

	t.Run("warning with an opaque library", func(t *testing.T) {
		path := writeSuite(t, dir, "withlib.robot", `*** Settings ***
Library    SeleniumLibrary

*** Test Cases ***
maybe fine
    Open Browser    http://example.com
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeUnresolved)
		if len(found) != 1 {
			t.Fatalf("expected one unresolved finding, got %v", result.Diagnostics)
		}
		if found[0].Severity != domain.SeverityWarning {
			t.Errorf("expected warning severity, got %s", found[0].Severity)
		}
	})

	t.Run("library-prefixed calls are accepted", func(t *testing.T) {
		path := writeSuite(t, dir, "prefixed.robot", `*** Settings ***
Library    SeleniumLibrary    AS    Web

*** Test Cases ***
prefixed
    Web.Open Browser    http://example.com
`)
		result := runner.Run(path)
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no findings, got %v", result.Diagnostics)
		}
	})
}

func TestAnalyzer_ArgumentCounts(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("user keyword", func(t *testing.T) {
		path := writeSuite(t, dir, "args.robot", `*** Test Cases ***
calls
    Two Args    only-one

*** Keywords ***
Two Args
    [Arguments]    ${a}    ${b}
    Log    ${a} ${b}
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeArgCount)
		if len(found) != 1 {
			t.Fatalf("expected one argument-count finding, got %v", result.Diagnostics)
		}
	})

	t.Run("defaults and varargs widen the range", func(t *testing.T) {
		path := writeSuite(t, dir, "varargs.robot", `*** Test Cases ***
calls
    Flexible    one
    Flexible    one    two    three    four

*** Keywords ***
Flexible
    [Arguments]    ${a}    ${b}=x    @{rest}
    Log Many    ${a}    ${b}    @{rest}
`)
		result := runner.Run(path)
		if found := diagsWithCode(result.Diagnostics, domain.CodeArgCount); len(found) != 0 {
			t.Errorf("expected no argument-count findings, got %v", found)
		}
	})

	t.Run("builtin keyword", func(t *testing.T) {
		path := writeSuite(t, dir, "builtin.robot", `*** Test Cases ***
calls
    No Operation    unexpected
`)
		result := runner.Run(path)
		if found := diagsWithCode(result.Diagnostics, domain.CodeArgCount); len(found) != 1 {
			t.Errorf("expected one argument-count finding, got %v", result.Diagnostics)
		}
	})
}

func TestAnalyzer_EmbeddedArguments(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("constraint mismatch", func(t *testing.T) {
		path := writeSuite(t, dir, "embedded.robot", `*** Test Cases ***
bad count
    pick abc items

*** Keywords ***
pick ${n:\d+} items
    Log    ${n}
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeEmbeddedMismatch)
		if len(found) != 1 {
			t.Fatalf("expected one embedded-mismatch finding, got %v", result.Diagnostics)
		}
		if found[0].Severity != domain.SeverityError {
			t.Errorf("expected error severity, got %s", found[0].Severity)
		}
	})

	t.Run("matching call is clean", func(t *testing.T) {
		path := writeSuite(t, dir, "embedded_ok.robot", `*** Test Cases ***
good count
    pick 42 items

*** Keywords ***
pick ${n:\d+} items
    Log    ${n}
`)
		result := runner.Run(path)
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no findings, got %v", result.Diagnostics)
		}
	})
}

func TestAnalyzer_AmbiguousEmbedded(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	path := writeSuite(t, dir, "ambiguous.robot", `*** Test Cases ***
vague
    send alpha to beta

*** Keywords ***
send ${what} to ${where}
    Log    ${what} ${where}

send ${all}
    Log    ${all}
`)
	result := runner.Run(path)
	found := diagsWithCode(result.Diagnostics, domain.CodeAmbiguous)
	if len(found) != 1 {
		t.Fatalf("expected one ambiguous finding, got %v", result.Diagnostics)
	}
}

func TestAnalyzer_StatusVariables(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("flagged in a test body", func(t *testing.T) {
		path := writeSuite(t, dir, "status.robot", `*** Test Cases ***
peeking
    Log    ${TEST STATUS}
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeStatusVar)
		if len(found) != 1 {
			t.Fatalf("expected one status-variable finding, got %v", result.Diagnostics)
		}
	})

	t.Run("allowed in a teardown", func(t *testing.T) {
		path := writeSuite(t, dir, "teardown.robot", `*** Test Cases ***
polite
    No Operation
    [Teardown]    Log    ${TEST STATUS}
`)
		result := runner.Run(path)
		if found := diagsWithCode(result.Diagnostics, domain.CodeStatusVar); len(found) != 0 {
			t.Errorf("expected no status-variable findings, got %v", found)
		}
	})

	t.Run("allowed in keyword bodies", func(t *testing.T) {
		path := writeSuite(t, dir, "kwbody.robot", `*** Test Cases ***
uses helper
    No Operation
    [Teardown]    Report Status

*** Keywords ***
Report Status
    Log    ${TEST STATUS}
    Log    ${TEST MESSAGE}
`)
		result := runner.Run(path)
		if found := diagsWithCode(result.Diagnostics, domain.CodeStatusVar); len(found) != 0 {
			t.Errorf("expected no status-variable findings, got %v", found)
		}
	})
}

func TestAnalyzer_Variables(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("unknown variable", func(t *testing.T) {
		path := writeSuite(t, dir, "unknown.robot", `*** Test Cases ***
oops
    Log    ${NO SUCH VALUE}
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeUnknownVar)
		if len(found) != 1 {
			t.Fatalf("expected one unknown-variable finding, got %v", result.Diagnostics)
		}
		if found[0].Severity != domain.SeverityWarning {
			t.Errorf("expected warning severity, got %s", found[0].Severity)
		}
	})

	t.Run("suite variables resolve", func(t *testing.T) {
		path := writeSuite(t, dir, "suitevars.robot", `*** Variables ***
${GREETING}    hello

*** Test Cases ***
fine
    Log    ${GREETING}
`)
		result := runner.Run(path)
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no findings, got %v", result.Diagnostics)
		}
	})

	t.Run("yaml variable files resolve", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "data.yaml"), []byte("TOKEN: abc\n"), 0644); err != nil {
			t.Fatalf("failed to write yaml: %v", err)
		}
		path := writeSuite(t, dir, "yamlvars.robot", `*** Settings ***
Variables    data.yaml

*** Test Cases ***
fine
    Log    ${TOKEN}
`)
		result := runner.Run(path)
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no findings, got %v", result.Diagnostics)
		}
	})

	t.Run("loop and assignment variables are local", func(t *testing.T) {
		path := writeSuite(t, dir, "locals.robot", `*** Test Cases ***
locals
    ${value} =    Set Variable    41
    Log    ${value}
    FOR    ${i}    IN RANGE    100
        Log    ${i}
    END
`)
		result := runner.Run(path)
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no findings, got %v", result.Diagnostics)
		}
	})
}

func TestAnalyzer_Imports(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("missing resource", func(t *testing.T) {
		path := writeSuite(t, dir, "missing.robot", `*** Settings ***
Resource    nope.resource

*** Test Cases ***
empty-ish
    No Operation
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeImport)
		if len(found) != 1 {
			t.Fatalf("expected one import finding, got %v", result.Diagnostics)
		}
	})

	t.Run("resource keywords are visible transitively", func(t *testing.T) {
		writeSuite(t, dir, "inner.resource", `*** Keywords ***
Inner Helper
    No Operation
`)
		writeSuite(t, dir, "outer.resource", `*** Settings ***
Resource    inner.resource

*** Keywords ***
Outer Helper
    Inner Helper
`)
		path := writeSuite(t, dir, "transitive.robot", `*** Settings ***
Resource    outer.resource

*** Test Cases ***
uses both
    Outer Helper
    Inner Helper
`)
		result := runner.Run(path)
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no findings, got %v", result.Diagnostics)
		}
	})

	t.Run("resource cycles do not loop", func(t *testing.T) {
		writeSuite(t, dir, "a.resource", `*** Settings ***
Resource    b.resource

*** Keywords ***
From A
    No Operation
`)
		writeSuite(t, dir, "b.resource", `*** Settings ***
Resource    a.resource

*** Keywords ***
From B
    No Operation
`)
		path := writeSuite(t, dir, "cycle.robot", `*** Settings ***
Resource    a.resource

*** Test Cases ***
uses both
    From A
    From B
`)
		result := runner.Run(path)
		if len(result.Diagnostics) != 0 {
			t.Errorf("expected no findings, got %v", result.Diagnostics)
		}
	})
}

func TestAnalyzer_Templates(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("data row argument counts", func(t *testing.T) {
		path := writeSuite(t, dir, "rows.robot", `*** Settings ***
Test Template    Check Pair

*** Test Cases ***
bad row
    a    b    c

*** Keywords ***
Check Pair
    [Arguments]    ${left}    ${right}
    Should Be Equal    ${left}    ${right}
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeArgCount)
		if len(found) != 1 {
			t.Fatalf("expected one argument-count finding, got %v", result.Diagnostics)
		}
	})

	t.Run("unknown template keyword", func(t *testing.T) {
		path := writeSuite(t, dir, "badtmpl.robot", `*** Test Cases ***
templated
    [Template]    No Such Template
    a    b
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeTemplate)
		if len(found) != 1 {
			t.Fatalf("expected one template finding, got %v", result.Diagnostics)
		}
	})

	t.Run("NONE disables the suite default", func(t *testing.T) {
		path := writeSuite(t, dir, "none.robot", `*** Settings ***
Test Template    Check Pair

*** Test Cases ***
plain again
    [Template]    NONE
    No Operation

*** Keywords ***
Check Pair
    [Arguments]    ${left}    ${right}
    Should Be Equal    ${left}    ${right}
`)
		result := runner.Run(path)
		if found := diagsWithCode(result.Diagnostics, domain.CodeArgCount); len(found) != 0 {
			t.Errorf("expected no argument-count findings, got %v", found)
		}
	})
}

func TestAnalyzer_Housekeeping(t *testing.T) {
	runner := newTestRunner()
	dir := t.TempDir()

	t.Run("duplicate keyword is an error", func(t *testing.T) {
		path := writeSuite(t, dir, "dupkw.robot", `*** Test Cases ***
calls
    Helper

*** Keywords ***
Helper
    No Operation

Helper
    Log    again
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeDuplicateName)
		if len(found) != 1 || found[0].Severity != domain.SeverityError {
			t.Fatalf("expected one duplicate-name error, got %v", result.Diagnostics)
		}
	})

	t.Run("duplicate test is a warning", func(t *testing.T) {
		path := writeSuite(t, dir, "duptest.robot", `*** Test Cases ***
same name
    No Operation

same name
    No Operation
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeDuplicateName)
		if len(found) != 1 || found[0].Severity != domain.SeverityWarning {
			t.Fatalf("expected one duplicate-name warning, got %v", result.Diagnostics)
		}
	})

	t.Run("unused keyword is informational", func(t *testing.T) {
		path := writeSuite(t, dir, "unused.robot", `*** Test Cases ***
does little
    No Operation

*** Keywords ***
Never Called
    No Operation
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeUnusedKeyword)
		if len(found) != 1 || found[0].Severity != domain.SeverityInfo {
			t.Fatalf("expected one unused-keyword info, got %v", result.Diagnostics)
		}
		if !result.Clean() {
			t.Error("info findings should leave the suite clean")
		}
	})

	t.Run("run keyword wrappers are followed", func(t *testing.T) {
		path := writeSuite(t, dir, "wrapped.robot", `*** Test Cases ***
wrapped
    Run Keyword If    True    Helper    too    many

*** Keywords ***
Helper
    [Arguments]    ${only}
    Log    ${only}
`)
		result := runner.Run(path)
		found := diagsWithCode(result.Diagnostics, domain.CodeArgCount)
		if len(found) != 1 {
			t.Fatalf("expected one argument-count finding through the wrapper, got %v", result.Diagnostics)
		}
	})
}
