package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// embeddedPattern is a keyword name containing ${...} placeholders, compiled
// to an anchored regex the way the engine matches calls against it. The
// relaxed regex replaces custom constraints with the default pattern so a
// call that names the right keyword but fails a constraint can be told apart
// from one that names no keyword at all.
type embeddedPattern struct {
	strict   *regexp.Regexp
	relaxed  *regexp.Regexp
	argNames []string
}

const defaultEmbeddedPattern = `.*?`

// compileEmbedded compiles a keyword name with embedded placeholders.
// Returns (nil, nil) when the name has no placeholders.
func compileEmbedded(name string) (*embeddedPattern, error) {
	if !strings.Contains(name, "${") {
		return nil, nil
	}

	var strict, relaxed strings.Builder
	var argNames []string
	strict.WriteString(`(?i)^`)
	relaxed.WriteString(`(?i)^`)

	rest := name
	for {
		open := strings.Index(rest, "${")
		if open < 0 {
			break
		}
		end := strings.Index(rest[open:], "}")
		if end < 0 {
			// Unterminated placeholder: the rest is literal text.
			break
		}
		literal := rest[:open]
		inner := rest[open+2 : open+end]
		rest = rest[open+end+1:]

		strict.WriteString(regexp.QuoteMeta(literal))
		relaxed.WriteString(regexp.QuoteMeta(literal))

		argName := inner
		pattern := defaultEmbeddedPattern
		if i := strings.IndexByte(inner, ':'); i >= 0 {
			argName = inner[:i]
			if p := inner[i+1:]; p != "" {
				pattern = p
			}
		}
		argNames = append(argNames, strings.TrimSpace(argName))
		strict.WriteString("(" + pattern + ")")
		relaxed.WriteString("(" + defaultEmbeddedPattern + ")")
	}
	strict.WriteString(regexp.QuoteMeta(rest))
	relaxed.WriteString(regexp.QuoteMeta(rest))
	strict.WriteString(`$`)
	relaxed.WriteString(`$`)

	if len(argNames) == 0 {
		return nil, nil
	}

	strictRe, err := regexp.Compile(strict.String())
	if err != nil {
		return nil, fmt.Errorf("invalid embedded argument pattern in %q: %w", name, err)
	}
	relaxedRe, err := regexp.Compile(relaxed.String())
	if err != nil {
		return nil, fmt.Errorf("invalid embedded argument pattern in %q: %w", name, err)
	}
	return &embeddedPattern{strict: strictRe, relaxed: relaxedRe, argNames: argNames}, nil
}

// Matches reports whether a call name satisfies the pattern including any
// custom constraints.
func (e *embeddedPattern) Matches(call string) bool {
	return e.strict.MatchString(call)
}

// NearMatches reports whether a call name matches the keyword shape while
// failing at least one custom constraint.
func (e *embeddedPattern) NearMatches(call string) bool {
	return !e.strict.MatchString(call) && e.relaxed.MatchString(call)
}
