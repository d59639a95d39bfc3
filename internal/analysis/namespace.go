package analysis

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"rtp/internal/domain"
	"rtp/internal/parser"
	"rtp/internal/vars"
)

// Loader parses resource files on demand and caches them so shared resources
// are parsed once per run even when many suites import them.
type Loader struct {
	parser parser.SuiteParser

	mu    sync.Mutex
	cache map[string]*domain.Suite
}

// NewLoader creates a new Loader
func NewLoader(p parser.SuiteParser) *Loader {
	return &Loader{parser: p, cache: make(map[string]*domain.Suite)}
}

// Load parses the resource file at path, using the cache when possible.
// Parse diagnostics of the resource itself are dropped here: the file gets
// its own full analysis pass when it is in the discovered set.
func (l *Loader) Load(path string) (*domain.Suite, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	l.mu.Lock()
	cached, ok := l.cache[abs]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	suite, _, err := l.parser.ParseFile(abs)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[abs] = suite
	l.mu.Unlock()
	return suite, nil
}

// keywordEntry is one keyword visible in a namespace.
type keywordEntry struct {
	kw       *domain.Keyword
	source   string // file the keyword is defined in
	norm     string
	embedded *embeddedPattern
	spec     argSpec
}

// libraryRef is a library import visible in a namespace.
type libraryRef struct {
	name  string
	alias string // effective call prefix
	known bool   // engine standard library
}

// Namespace is everything a suite can see: its own keywords, keywords from
// resource imports followed transitively, imported libraries and the known
// variable names.
type Namespace struct {
	suite    *domain.Suite
	keywords []*keywordEntry
	libs     []libraryRef

	variables  map[string]bool // normalized names with a visible definition
	varsOpaque bool            // a non-YAML variable file is imported

	diags []domain.Diagnostic
}

// resolution statuses.
const (
	resolved int = iota
	unresolvedKeyword
	ambiguousKeyword
	embeddedMismatch
)

// resolution is the outcome of matching one call against a namespace.
type resolution struct {
	status     int
	entry      *keywordEntry // set for user keywords
	spec       argSpec
	hasSpec    bool
	candidates []string // names involved in ambiguity or near matches
}

// BuildNamespace constructs the namespace for a suite, recording import
// problems as diagnostics on the suite.
func BuildNamespace(suite *domain.Suite, loader *Loader) *Namespace {
	ns := &Namespace{
		suite:     suite,
		variables: make(map[string]bool),
	}
	visited := map[string]bool{normalizePath(suite.Path): true}
	ns.addSuite(suite, loader, visited)
	for i := range ns.diags {
		if ns.diags[i].SuitePath == "" {
			ns.diags[i].SuitePath = suite.Path
		}
	}
	return ns
}

func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// addSuite merges one file's definitions into the namespace, then follows
// its imports. Keywords keep import order so the owning suite wins lookups.
func (ns *Namespace) addSuite(s *domain.Suite, loader *Loader, visited map[string]bool) {
	for i := range s.Keywords {
		ns.addKeyword(&s.Keywords[i], s.Path)
	}
	for i := range s.Variables {
		ns.variables[vars.Normalize(trimDecoration(s.Variables[i].Name))] = true
	}
	for i := range s.Imports {
		ns.addImport(s, &s.Imports[i], loader, visited)
	}
}

func (ns *Namespace) addKeyword(kw *domain.Keyword, source string) {
	entry := &keywordEntry{
		kw:     kw,
		source: source,
		norm:   vars.Normalize(kw.Name),
		spec:   specFromArgs(kw.Args),
	}
	embedded, err := compileEmbedded(kw.Name)
	if err != nil {
		ns.diags = append(ns.diags, domain.Diagnostic{
			Severity:  domain.SeverityWarning,
			Code:      domain.CodeParse,
			Message:   err.Error(),
			SuitePath: source,
			Line:      kw.Line,
		})
	}
	// Embedded arguments arrive through the name; any declared [Arguments]
	// still apply on top, so the spec stays as derived either way.
	entry.embedded = embedded
	ns.keywords = append(ns.keywords, entry)
}

func (ns *Namespace) addImport(owner *domain.Suite, imp *domain.Import, loader *Loader, visited map[string]bool) {
	switch imp.Kind {
	case domain.ResourceImport:
		path := resolveRelative(owner.Path, imp.Name)
		key := normalizePath(path)
		if visited[key] {
			return // already merged; also breaks import cycles
		}
		visited[key] = true
		res, err := loader.Load(path)
		if err != nil {
			ns.importError(owner.Path, imp.Line, "resource file %q not found", imp.Name)
			return
		}
		ns.addSuite(res, loader, visited)

	case domain.LibraryImport:
		ref := libraryRef{name: imp.Name, alias: imp.Name}
		if imp.Alias != "" {
			ref.alias = imp.Alias
		}
		ref.known = knownLibraries[vars.Normalize(libraryBaseName(imp.Name))]
		ns.libs = append(ns.libs, ref)

	case domain.VariablesImport:
		if !vars.IsYAMLFile(imp.Name) {
			// Python or other code-based variable files are the engine's
			// business; their names cannot be checked statically.
			ns.varsOpaque = true
			return
		}
		path := resolveRelative(owner.Path, imp.Name)
		values, err := vars.LoadYAMLFile(path)
		if err != nil {
			ns.importError(owner.Path, imp.Line, "variable file %q cannot be loaded: %v", imp.Name, err)
			return
		}
		for name := range values {
			ns.variables[vars.Normalize(name)] = true
		}
	}
}

func (ns *Namespace) importError(path string, line int, format string, args ...any) {
	ns.diags = append(ns.diags, domain.Diagnostic{
		Severity:  domain.SeverityError,
		Code:      domain.CodeImport,
		Message:   fmt.Sprintf(format, args...),
		SuitePath: path,
		Line:      line,
	})
}

// resolveRelative resolves an import path against the importing file's dir.
func resolveRelative(ownerPath, imported string) string {
	if filepath.IsAbs(imported) {
		return imported
	}
	return filepath.Join(filepath.Dir(ownerPath), imported)
}

// libraryBaseName strips a file extension and directories from a library
// imported by filename, e.g. "libs/DataHelper.py" -> "DataHelper".
func libraryBaseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// trimDecoration strips the ${...} wrapper from a variable definition name.
func trimDecoration(name string) string {
	if len(name) >= 3 && strings.HasSuffix(name, "}") &&
		(strings.HasPrefix(name, "${") || strings.HasPrefix(name, "@{") || strings.HasPrefix(name, "&{")) {
		return name[2 : len(name)-1]
	}
	return name
}

// hasOpaqueLibraries reports whether the suite imports any library whose
// keywords the analyzer cannot enumerate. Unresolved calls are then reported
// at warning severity: the engine may still find them at run time.
func (ns *Namespace) hasOpaqueLibraries() bool {
	for _, lib := range ns.libs {
		if vars.Normalize(lib.name) != "builtin" {
			return true
		}
	}
	return false
}

// KnownVariable reports whether a variable definition is in scope.
func (ns *Namespace) KnownVariable(name string) bool {
	return ns.variables[vars.Normalize(name)]
}

// Resolve matches a call name against the namespace: exact or normalized
// user keywords first, then the BuiltIn catalog, then library/resource
// prefixed calls, then embedded-argument keywords.
func (ns *Namespace) Resolve(call string) resolution {
	norm := vars.Normalize(call)

	for _, e := range ns.keywords {
		if e.embedded == nil && e.norm == norm {
			return resolution{status: resolved, entry: e, spec: e.spec, hasSpec: true}
		}
	}

	if spec, ok := lookupBuiltin(call); ok {
		return resolution{status: resolved, spec: spec, hasSpec: true}
	}

	if res, ok := ns.resolvePrefixed(call); ok {
		return res
	}

	var matches []*keywordEntry
	var near []string
	for _, e := range ns.keywords {
		if e.embedded == nil {
			continue
		}
		if e.embedded.Matches(call) {
			matches = append(matches, e)
		} else if e.embedded.NearMatches(call) {
			near = append(near, e.kw.Name)
		}
	}
	switch {
	case len(matches) == 1:
		return resolution{status: resolved, entry: matches[0], spec: matches[0].spec, hasSpec: true}
	case len(matches) > 1:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.kw.Name
		}
		return resolution{status: ambiguousKeyword, candidates: names}
	case len(near) > 0:
		return resolution{status: embeddedMismatch, candidates: near}
	}

	return resolution{status: unresolvedKeyword}
}

// resolvePrefixed handles "Library.Keyword" and "resource name.Keyword"
// calls. A match on an opaque library resolves without a signature to check.
func (ns *Namespace) resolvePrefixed(call string) (resolution, bool) {
	idx := strings.IndexByte(call, '.')
	for idx >= 0 {
		prefix, rest := call[:idx], call[idx+1:]
		normPrefix := vars.Normalize(prefix)

		for _, lib := range ns.libs {
			if vars.Normalize(lib.alias) != normPrefix && vars.Normalize(libraryBaseName(lib.name)) != normPrefix {
				continue
			}
			if vars.Normalize(lib.name) == "builtin" {
				if spec, ok := lookupBuiltin(rest); ok {
					return resolution{status: resolved, spec: spec, hasSpec: true}, true
				}
				return resolution{status: unresolvedKeyword}, true
			}
			return resolution{status: resolved}, true
		}
		if normPrefix == "builtin" {
			if spec, ok := lookupBuiltin(rest); ok {
				return resolution{status: resolved, spec: spec, hasSpec: true}, true
			}
		}

		restNorm := vars.Normalize(rest)
		for _, e := range ns.keywords {
			if e.embedded == nil && e.norm == restNorm && vars.Normalize(suiteBase(e.source)) == normPrefix {
				return resolution{status: resolved, entry: e, spec: e.spec, hasSpec: true}, true
			}
		}

		next := strings.IndexByte(call[idx+1:], '.')
		if next < 0 {
			break
		}
		idx += 1 + next
	}
	return resolution{}, false
}

func suiteBase(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
