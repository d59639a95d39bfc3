package domain

// Severity of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Diagnostic codes produced by the parser and the analyzer.
const (
	CodeParse            = "parse"
	CodeUnresolved       = "unresolved-keyword"
	CodeAmbiguous        = "ambiguous-keyword"
	CodeArgCount         = "argument-count"
	CodeEmbeddedMismatch = "embedded-mismatch"
	CodeImport           = "import"
	CodeTemplate         = "template"
	CodeLoop             = "loop"
	CodeStatusVar        = "status-variable"
	CodeUnknownVar       = "unknown-variable"
	CodeDuplicateName    = "duplicate-name"
	CodeUnusedKeyword    = "unused-keyword"
)

// Diagnostic is a single finding against a suite file.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	SuitePath string   `json:"suite_path"`
	Line      int      `json:"line"`
	Context   string   `json:"context,omitempty"`  // test case or keyword the finding is in
	Resolved  bool     `json:"resolved,omitempty"` // toggled from the issues viewer
}
