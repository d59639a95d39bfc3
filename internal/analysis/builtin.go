package analysis

import (
	"strings"

	"rtp/internal/vars"
)

// argSpec is the accepted argument count of a keyword. Max of -1 means
// unbounded (varargs or free named arguments).
type argSpec struct {
	Min int
	Max int
}

// Accepts reports whether n arguments satisfy the spec.
func (s argSpec) Accepts(n int) bool {
	if n < s.Min {
		return false
	}
	return s.Max < 0 || n <= s.Max
}

// String renders the accepted range for diagnostics, e.g. "2", "1 to 3",
// "at least 1".
func (s argSpec) String() string {
	switch {
	case s.Max < 0 && s.Min == 0:
		return "any number of"
	case s.Max < 0:
		return "at least " + itoa(s.Min)
	case s.Min == s.Max:
		return itoa(s.Min)
	default:
		return itoa(s.Min) + " to " + itoa(s.Max)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [8]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

// specFromArgs derives the accepted count from a user keyword's [Arguments]
// row: plain ${a} is required, ${a}=x is optional, @{rest} and &{named}
// lift the upper bound.
func specFromArgs(args []string) argSpec {
	spec := argSpec{}
	for _, a := range args {
		a = strings.TrimSpace(a)
		switch {
		case strings.HasPrefix(a, "@{"), strings.HasPrefix(a, "&{"):
			spec.Max = -1
		case strings.Contains(a, "="):
			if spec.Max >= 0 {
				spec.Max++
			}
		default:
			spec.Min++
			if spec.Max >= 0 {
				spec.Max++
			}
		}
	}
	if spec.Max >= 0 && spec.Max < spec.Min {
		spec.Max = spec.Min
	}
	return spec
}

// builtinCatalog lists the engine's standard BuiltIn library keywords that
// suites call without an import, keyed by normalized name. The specs cover
// what argument-count checking needs; behavior stays with the engine.
var builtinCatalog = map[string]argSpec{
	"log":                          {1, 6},
	"logmany":                      {0, -1},
	"logtoconsole":                 {1, 4},
	"nooperation":                  {0, 0},
	"comment":                      {0, -1},
	"fail":                         {0, -1},
	"sleep":                        {1, 2},
	"catenate":                     {0, -1},
	"createlist":                   {0, -1},
	"createdictionary":             {0, -1},
	"setvariable":                  {0, -1},
	"setsuitevariable":             {1, -1},
	"settestvariable":              {1, -1},
	"setglobalvariable":            {1, -1},
	"setlocalvariable":             {1, -1},
	"getvariablevalue":             {1, 2},
	"variableshouldexist":          {1, 2},
	"variableshouldnotexist":       {1, 2},
	"getlength":                    {1, 1},
	"lengthshouldbe":               {2, 3},
	"shouldbeempty":                {1, 2},
	"shouldnotbeempty":             {1, 2},
	"shouldbeequal":                {2, -1},
	"shouldnotbeequal":             {2, -1},
	"shouldbeequalasintegers":      {2, -1},
	"shouldbeequalasnumbers":       {2, -1},
	"shouldbeequalasstrings":       {2, -1},
	"shouldnotbeequalasstrings":    {2, -1},
	"shouldbetrue":                 {1, 2},
	"shouldnotbetrue":              {1, 2},
	"shouldcontain":                {2, -1},
	"shouldnotcontain":             {2, -1},
	"shouldcontainxtimes":          {3, -1},
	"shouldstartwith":              {2, -1},
	"shouldendwith":                {2, -1},
	"shouldmatch":                  {2, -1},
	"shouldnotmatch":               {2, -1},
	"shouldmatchregexp":            {2, -1},
	"shouldnotmatchregexp":         {2, -1},
	"converttointeger":             {1, 2},
	"converttonumber":              {1, 2},
	"converttostring":              {1, 1},
	"converttoboolean":             {1, 1},
	"evaluate":                     {1, -1},
	"runkeyword":                   {1, -1},
	"runkeywords":                  {1, -1},
	"runkeywordif":                 {2, -1},
	"runkeywordunless":             {2, -1},
	"runkeywordandignoreerror":     {1, -1},
	"runkeywordandreturnstatus":    {1, -1},
	"runkeywordandexpecterror":     {2, -1},
	"runkeywordandcontinueonfailure": {1, -1},
	"repeatkeyword":                {2, -1},
	"waituntilkeywordsucceeds":     {3, -1},
	"keywordshouldexist":           {1, 2},
	"passexecution":                {1, -1},
	"passexecutionif":              {2, -1},
	"skip":                         {0, 1},
	"skipif":                       {1, 2},
	"returnfromkeyword":            {0, -1},
	"returnfromkeywordif":          {1, -1},
	"callmethod":                   {2, -1},
	"gettime":                      {0, 2},
	"getcount":                     {2, 2},
	"importlibrary":                {1, -1},
	"importresource":               {1, 1},
	"importvariables":              {1, -1},
	"settags":                      {0, -1},
	"removetags":                   {0, -1},
	"fatalerror":                   {0, -1},
}

// knownLibraries is the catalog of engine standard libraries importable by
// bare name. Anything else imported as a Library is opaque to analysis.
var knownLibraries = map[string]bool{
	"builtin":          true,
	"collections":      true,
	"datetime":         true,
	"dialogs":          true,
	"operatingsystem":  true,
	"process":          true,
	"screenshot":       true,
	"string":           true,
	"telnet":           true,
	"xml":              true,
}

// lookupBuiltin resolves a call against the BuiltIn catalog.
func lookupBuiltin(name string) (argSpec, bool) {
	spec, ok := builtinCatalog[vars.Normalize(name)]
	return spec, ok
}
