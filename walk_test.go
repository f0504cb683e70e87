package main

import (
	"strings"
	"testing"

	"github.com/go-pkgconf/pkgconf/pc"
)

// testEnviron is a fake environ backed by a plain map, used in place of the
// real process environment (mirrors the teacher's fake PackageIndex in
// mvs_test.go: a minimal substitute satisfying the same interface).
type testEnviron map[string]string

func (e testEnviron) get(key string) string { return e[key] }

func newTestContext() *Context {
	return &Context{
		GlobalDefines: map[string]string{},
		cache:         newCache(),
	}
}

func mustModel(t *testing.T, source string) *pc.PkgConfig {
	t.Helper()
	model, err := pc.Parse(strings.NewReader(source))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return model
}

func seed(ctx *Context, name string, model *pc.PkgConfig) {
	ctx.cache.entries[name] = &cacheEntry{model: model, path: "<test>/" + name + ".pc"}
}

func TestWalkSharedModeDedupAndOrder(t *testing.T) {
	// a -> b, a -> c, c -> b: b should appear once, after both a and c.
	ctx := newTestContext()
	seed(ctx, "a", mustModel(t, "Name: a\nDescription: d\nVersion: 1.0\nRequires: b, c\nLibs: -la\n"))
	seed(ctx, "b", mustModel(t, "Name: b\nDescription: d\nVersion: 1.0\nLibs: -lb\n"))
	seed(ctx, "c", mustModel(t, "Name: c\nDescription: d\nVersion: 1.0\nRequires: b\nLibs: -lc\n"))

	w := newWalker(ctx, testEnviron{}, walkMode{TraverseRequires: true})
	w.walk("a", "", "")
	if w.failed() {
		t.Fatalf("unexpected failure: %v", w.errs)
	}

	got := w.projected()
	want := []string{"a", "c", "b"}
	if !equalSlicesMain(got, want) {
		t.Errorf("projected() = %v, want %v (L5: dedup keeping dependency order)", got, want)
	}
}

func TestWalkStaticModePreservesDuplicates(t *testing.T) {
	// L6: in static mode, for a -> b, b must appear after a, and duplicate
	// occurrences of a shared dependency are preserved rather than deduped.
	ctx := newTestContext()
	ctx.Static = true
	seed(ctx, "a", mustModel(t, "Name: a\nDescription: d\nVersion: 1.0\nRequires: b, c\nLibs: -la\n"))
	seed(ctx, "b", mustModel(t, "Name: b\nDescription: d\nVersion: 1.0\nLibs: -lb\n"))
	seed(ctx, "c", mustModel(t, "Name: c\nDescription: d\nVersion: 1.0\nRequires: b\nLibs: -lc\n"))

	w := newWalker(ctx, testEnviron{}, walkMode{TraverseRequires: true})
	w.walk("a", "", "")
	if w.failed() {
		t.Fatalf("unexpected failure: %v", w.errs)
	}

	got := w.projected()
	indexOf := func(name string) int {
		for i, n := range got {
			if n == name {
				return i
			}
		}
		return -1
	}
	if indexOf("a") >= indexOf("b") {
		t.Errorf("static projection %v: expected a before b", got)
	}

	count := 0
	for _, n := range got {
		if n == "b" {
			count++
		}
	}
	if count != 2 {
		t.Errorf("static projection %v: expected b to appear twice (via a and via c)", got)
	}
}

func TestWalkVersionMismatchIsRecordedNotAborted(t *testing.T) {
	ctx := newTestContext()
	seed(ctx, "a", mustModel(t, "Name: a\nDescription: d\nVersion: 1.0\nRequires: b >= 2.0\nLibs: -la\n"))
	seed(ctx, "b", mustModel(t, "Name: b\nDescription: d\nVersion: 1.5\nLibs: -lb\n"))

	w := newWalker(ctx, testEnviron{}, walkMode{TraverseRequires: true})
	w.walk("a", "", "")

	if !w.failed() {
		t.Fatal("expected a version-mismatch failure")
	}
	// The walk still visited b despite the mismatch (no short-circuit).
	found := false
	for _, n := range w.accum {
		if n == "b" {
			found = true
		}
	}
	if !found {
		t.Error("expected walk to continue past the version mismatch")
	}
}

func TestWalkMissingPackageIsRecorded(t *testing.T) {
	ctx := newTestContext()
	seed(ctx, "a", mustModel(t, "Name: a\nDescription: d\nVersion: 1.0\nRequires: missing\nLibs: -la\n"))

	w := newWalker(ctx, testEnviron{}, walkMode{TraverseRequires: true})
	w.walk("a", "", "")
	if !w.failed() {
		t.Fatal("expected a not-found failure for the unresolvable dependency")
	}
}

func equalSlicesMain(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
