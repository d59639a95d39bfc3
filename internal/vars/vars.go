package vars

import (
	"regexp"
	"strings"
)

// refPattern matches the innermost variable references in a cell, e.g.
// ${index}, @{items}, &{headers}.
var refPattern = regexp.MustCompile(`[$@&]\{([^{}]+)\}`)

// plainName matches references that name a variable directly, as opposed to
// inline expressions like ${index + 1} which the engine evaluates itself.
var plainName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _.]*$`)

// numeric matches number literals usable directly as variables, e.g. ${0},
// ${3.14}, ${0xFF}.
var numeric = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|0[bB][01]+|0[oO][0-7]+|-?[0-9]+(\.[0-9]+)?)$`)

// Refs returns the names referenced by variable syntax inside a cell.
// References that are expressions or number literals are skipped: the engine
// resolves those without a definition being in scope.
func Refs(cell string) []string {
	var names []string
	for _, m := range refPattern.FindAllStringSubmatch(cell, -1) {
		inner := strings.TrimSpace(m[1])
		// Drop item access, e.g. name[0].
		if i := strings.IndexByte(inner, '['); i >= 0 {
			inner = inner[:i]
		}
		if inner == "" || numeric.MatchString(inner) || !plainName.MatchString(inner) {
			continue
		}
		names = append(names, inner)
	}
	return names
}

// Normalize folds a variable or keyword name the way the engine matches them:
// case-, space- and underscore-insensitive.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "_", "")
	return name
}

// builtin are the global variables the engine always provides, normalized.
var builtin = map[string]bool{
	"empty":   true,
	"space":   true,
	"true":    true,
	"false":   true,
	"none":    true,
	"null":    true,
	"curdir":  true,
	"execdir": true,
	"tempdir": true,
	"/":       true,
	":":       true,

	"outputdir":  true,
	"outputfile": true,
	"logfile":    true,
	"reportfile": true,
	"debugfile":  true,
	"loglevel":   true,

	"suitename":          true,
	"suitesource":        true,
	"suitedocumentation": true,
	"suitemetadata":      true,
	"testname":           true,
	"testdocumentation":  true,
	"testtags":           true,
	"prevtestname":       true,
	"prevteststatus":     true,
	"prevtestmessage":    true,
}

// teardownOnly are the status pseudo-variables the engine sets only while a
// teardown is running.
var teardownOnly = map[string]bool{
	"teststatus":   true,
	"testmessage":  true,
	"suitestatus":  true,
	"suitemessage": true,
}

// IsBuiltin reports whether name is an always-available engine variable.
func IsBuiltin(name string) bool {
	return builtin[Normalize(name)]
}

// IsTeardownOnly reports whether name is a status pseudo-variable that is
// only set during teardowns.
func IsTeardownOnly(name string) bool {
	return teardownOnly[Normalize(name)]
}
