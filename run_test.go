package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writePC writes a ".pc" fixture into dir/name.pc, grounding each
// end-to-end scenario on a real file read through the same search-path
// and cache code the CLI uses in production.
func writePC(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".pc"), []byte(contents), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
}

func runWithLibdir(t *testing.T, dir string, extraEnv map[string]string, args ...string) (int, string, string) {
	t.Helper()
	env := testEnviron{"PKG_CONFIG_LIBDIR": dir}
	for k, v := range extraEnv {
		env[k] = v
	}
	var stdout, stderr bytes.Buffer
	code, err := run(args, env, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return code, stdout.String(), stderr.String()
}

func TestEndToEndModversion(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "foo", "Name: foo\nDescription: d\nVersion: 1.2.3\n")

	code, stdout, _ := runWithLibdir(t, dir, nil, "--modversion", "foo")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout != "1.2.3\n" {
		t.Errorf("stdout = %q, want %q", stdout, "1.2.3\n")
	}
}

func TestEndToEndLibsTransitive(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "Name: a\nDescription: d\nVersion: 1.0\nRequires: b\nLibs: -la\n")
	writePC(t, dir, "b", "Name: b\nDescription: d\nVersion: 1.0\nLibs: -lb\n")

	code, stdout, _ := runWithLibdir(t, dir, nil, "--libs", "a")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout != "-la -lb\n" {
		t.Errorf("stdout = %q, want %q", stdout, "-la -lb\n")
	}
}

func TestEndToEndStaticAppendsLibsPrivate(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "Name: a\nDescription: d\nVersion: 1.0\nRequires: b\nLibs: -la\nLibs.private: -lm\n")
	writePC(t, dir, "b", "Name: b\nDescription: d\nVersion: 1.0\nLibs: -lb\n")

	code, stdout, _ := runWithLibdir(t, dir, nil, "--libs", "--static", "a")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout != "-la -lm -lb\n" {
		t.Errorf("stdout = %q, want %q", stdout, "-la -lm -lb\n")
	}
}

func TestEndToEndCflagsSysroot(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "includedir=/opt/x/include\nName: a\nDescription: d\nVersion: 1.0\nCflags: -I${includedir}\n")

	code, stdout, _ := runWithLibdir(t, dir, map[string]string{"PKG_CONFIG_SYSROOT_DIR": "/sysroot"}, "--cflags", "a")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout != "-I/sysroot/opt/x/include\n" {
		t.Errorf("stdout = %q, want %q", stdout, "-I/sysroot/opt/x/include\n")
	}
}

func TestEndToEndAtleastAndMaxVersionWithSuffix(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "Name: a\nDescription: d\nVersion: 1.02b1\n")

	if code, _, _ := runWithLibdir(t, dir, nil, "--atleast-version=1.02", "a"); code != 1 {
		t.Errorf("--atleast-version=1.02 exit code = %d, want 1", code)
	}
	if code, _, _ := runWithLibdir(t, dir, nil, "--max-version=1.02", "a"); code != 0 {
		t.Errorf("--max-version=1.02 exit code = %d, want 0", code)
	}
}

func TestEndToEndExistsVersionMismatchDiagnostic(t *testing.T) {
	dir := t.TempDir()
	writePC(t, dir, "a", "Name: a\nDescription: d\nVersion: 1.0\nRequires: b >= 2.0\n")
	writePC(t, dir, "b", "Name: b\nDescription: d\nVersion: 1.5\n")

	code, _, stderr := runWithLibdir(t, dir, nil, "--exists", "a")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "b") {
		t.Errorf("stderr = %q, expected a diagnostic naming b", stderr)
	}
}

func TestEndToEndMissingPackageExitsFailure(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := runWithLibdir(t, dir, nil, "--exists", "nonexistent")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestEndToEndToolVersionFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code, err := run([]string{"--version"}, testEnviron{}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if stdout.String() != toolVersion+"\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), toolVersion+"\n")
	}
}
