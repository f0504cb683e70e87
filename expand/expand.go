// Package expand implements the ${...} variable-substitution engine used to
// resolve pkg-config variable and property values (spec.md §4.3).
package expand

import (
	"regexp"
	"strings"
)

// maxIterations guards against pathological self-reference; the outer
// loop in ExpandAll otherwise terminates on its own because each pass
// either halts (an opaque override was used) or strictly reduces the set
// of still-expandable references.
const maxIterations = 64

var refRe = regexp.MustCompile(`\$\{([A-Za-z0-9_.]+)\}`)

// Overrides resolves a variable name to an externally supplied value — CLI
// --define-variable entries and PKG_CONFIG_<PKG>_<var> environment
// variables. Modeled as an interface, not a plain map, because the
// environment-variable form of an override is looked up by name lazily
// rather than enumerated up front.
type Overrides interface {
	Lookup(name string) (value string, ok bool)
}

// MapOverrides adapts a plain map to Overrides.
type MapOverrides map[string]string

// Lookup implements Overrides.
func (m MapOverrides) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// ExpandAll recursively substitutes ${name} references in s using vars
// (the file's own variable mapping) and overrides (CLI --define-variable
// and PKG_CONFIG_<PKG>_<var> entries, which take precedence over vars).
// overrides may be nil.
//
// Resolution rule for a referenced name n:
//  1. n has an override with no ${...} inside it: use the override value
//     verbatim, without further expansion.
//  2. n has an override containing ${...}: treat the override as opaque —
//     substitute it literally wherever ${n} appears, then stop expanding s
//     entirely, even if new ${...} references were just introduced.
//  3. n is defined in vars: use that value.
//  4. otherwise: empty string (an undefined reference is never an error).
func ExpandAll(s string, vars map[string]string, overrides Overrides) string {
	for i := 0; i < maxIterations; i++ {
		if !strings.Contains(s, "${") {
			return s
		}

		names := referencedNames(s)
		resolved := make(map[string]string, len(names))
		halted := false
		for _, n := range names {
			value, isOverrideOpaque := resolveOne(n, vars, overrides)
			resolved[n] = value
			if isOverrideOpaque {
				halted = true
			}
		}

		s = substitute(s, resolved)
		if halted {
			return s
		}
	}
	return s
}

func resolveOne(name string, vars map[string]string, overrides Overrides) (value string, opaque bool) {
	if overrides != nil {
		if ov, ok := overrides.Lookup(name); ok {
			if strings.Contains(ov, "${") {
				return ov, true
			}
			return ov, false
		}
	}
	if v, ok := vars[name]; ok {
		return v, false
	}
	return "", false
}

// referencedNames returns the distinct ${name} references in s, in the
// order they first appear.
func referencedNames(s string) []string {
	matches := refRe.FindAllStringSubmatch(s, -1)
	seen := make(map[string]struct{}, len(matches))
	var names []string
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

func substitute(s string, resolved map[string]string) string {
	return refRe.ReplaceAllStringFunc(s, func(ref string) string {
		name := ref[2 : len(ref)-1]
		if v, ok := resolved[name]; ok {
			return v
		}
		return ref
	})
}
