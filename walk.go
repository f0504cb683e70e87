package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/go-pkgconf/pkgconf/pc"
	"github.com/go-pkgconf/pkgconf/version"
)

// walkMode selects which Requires-class properties the walker traverses,
// derived from the active CLI flags (spec.md §4.6, step 4).
type walkMode struct {
	TraverseRequires        bool // false only under --validate
	TraverseRequiresPrivate bool // cflags, libs+static, --print-requires-private, or --exists
}

// walker accumulates the dependency list L and any failures encountered
// along the way without aborting (spec.md §7 propagation policy).
type walker struct {
	ctx         *Context
	env         environ
	mode        walkMode
	accum       []string // accumulation list L, built by prepending (head = most recently visited)
	uninstalled bool
	errs        *multierror.Error
}

func newWalker(ctx *Context, env environ, mode walkMode) *walker {
	return &walker{ctx: ctx, env: env, mode: mode}
}

func (w *walker) failed() bool {
	return w.errs.ErrorOrNil() != nil
}

// walk resolves name (optionally constrained by op/v) and prepends it to
// the accumulation list every time it is reached, even via a second path
// to an already-cached package — this is what lets the same dependency
// appear more than once in L (spec.md §4.6: "the accumulation list may
// contain duplicates"). It only descends into name's own Requires
// properties the first time the walk reaches name; a name already on the
// accumulation list has had its subtree fully explored by the earlier
// reference, so this visit applies the version check only, per §4.6 step
// 5. It never aborts
// on a single failure; failures are recorded and the walk continues so
// that --exists et al. can report every problem at once.
func (w *walker) walk(name, op, v string) {
	entry := w.ctx.load(name)
	if entry.err != nil {
		w.errs = multierror.Append(w.errs, fmt.Errorf("pkgconf: %s: %w", name, entry.err))
		return
	}
	if w.ctx.Logger != nil {
		w.ctx.Logger.Debug("visiting package", "name", name, "path", entry.path)
	}
	if entry.uninstalled {
		w.uninstalled = true
	}

	alreadyVisited := false
	for _, n := range w.accum {
		if n == name {
			alreadyVisited = true
			break
		}
	}
	w.accum = append([]string{name}, w.accum...)

	if op != "" {
		installed, _ := entry.model.Property("Version", nil)
		if len(installed) == 0 {
			w.errs = multierror.Append(w.errs, fmt.Errorf("pkgconf: %s: no Version property", name))
		} else {
			ok, err := version.Satisfies(installed[0], op, v)
			if err != nil {
				w.errs = multierror.Append(w.errs, fmt.Errorf("pkgconf: %s: %w", name, err))
			} else if !ok {
				w.errs = multierror.Append(w.errs, fmt.Errorf(
					"pkgconf: requested %s %s %s but only %s is available", name, op, v, installed[0]))
			}
		}
	}

	if alreadyVisited {
		return
	}

	overrides := w.ctx.overridesFor(name, w.env)

	for _, propName := range w.selectedProperties() {
		tokens, ok := entry.model.Property(propName, overrides)
		if !ok {
			continue
		}
		w.walkTokens(tokens)
	}
}

func (w *walker) selectedProperties() []string {
	var props []string
	if w.mode.TraverseRequires {
		props = append(props, "Requires")
	}
	if w.mode.TraverseRequiresPrivate {
		props = append(props, "Requires.private")
	}
	return props
}

func (w *walker) walkTokens(tokens []string) {
	for _, tok := range tokens {
		name, op, ver, _ := pc.ParseRequireToken(tok)
		w.walk(name, op, ver)
	}
}

// shared projects the accumulation list into dependency order with
// duplicates suppressed, keeping the first occurrence encountered while
// walking head to tail, then reversing (spec.md §4.6, "Shared mode").
func shared(accum []string) []string {
	seen := make(map[string]struct{}, len(accum))
	kept := make([]string, 0, len(accum))
	for _, name := range accum {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		kept = append(kept, name)
	}
	return reverseStrings(kept)
}

// static projects the accumulation list preserving duplicate occurrences,
// required so repeated -l flags survive for archive-linker resolution
// order (spec.md §4.6, "Static mode").
func static(accum []string) []string {
	return reverseStrings(append([]string(nil), accum...))
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// projected returns the walk order appropriate to the active mode.
func (w *walker) projected() []string {
	if w.ctx.Static {
		return static(w.accum)
	}
	return shared(w.accum)
}
