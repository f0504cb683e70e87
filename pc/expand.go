package pc

import "github.com/go-pkgconf/pkgconf/expand"

// Variable returns the expanded value of a variable. Overrides take
// precedence over the file's own definition (spec.md §4.3); an undefined
// name, with or without overrides, yields the empty string rather than an
// error (invariant I1). overrides may be nil.
func (p *PkgConfig) Variable(name string, overrides expand.Overrides) string {
	if overrides != nil {
		if ov, ok := overrides.Lookup(name); ok {
			return ov
		}
	}
	raw, ok := p.varValues[name]
	if !ok {
		return ""
	}
	return expand.ExpandAll(raw, p.varValues, overrides)
}

// Property returns a property's expanded tokens. Per spec.md §4.3, any
// token whose expansion changes its text is re-split using the property's
// own token rule, so a variable carrying multiple flags (e.g.
// "-DFOO -DBAR") expands into multiple tokens instead of one. overrides
// may be nil.
func (p *PkgConfig) Property(name string, overrides expand.Overrides) ([]string, bool) {
	raw, ok := p.propValues[name]
	if !ok {
		return nil, false
	}

	kind := kindOf(name)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		expanded := expand.ExpandAll(tok, p.varValues, overrides)
		if expanded != tok {
			out = append(out, Split(kind, expanded)...)
		} else {
			out = append(out, tok)
		}
	}
	return out, true
}
