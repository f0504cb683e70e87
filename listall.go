package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// listAll enumerates every discoverable package across the search path
// (spec.md §4.5, §6 --list-all) and writes "name version - description"
// lines to w (name padded to 30 columns), one per package, sorted by name. Packages that fail to load
// or validate are silently skipped, matching --list-all's role as a
// best-effort discovery aid rather than a strict query.
func listAll(ctx *Context, w io.Writer) error {
	seen := make(map[string]bool)
	var names []string

	for _, dir := range ctx.SearchPath {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".pc") {
				continue
			}
			name := strings.TrimSuffix(e.Name(), ".pc")
			name = strings.TrimSuffix(name, "-uninstalled")
			if seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)

	for _, name := range names {
		entry := ctx.load(name)
		if entry.err != nil {
			continue
		}
		desc, _ := entry.model.Property("Description", nil)
		version, _ := entry.model.Property("Version", nil)
		descStr := ""
		if len(desc) > 0 {
			descStr = strings.Join(desc, " ")
		}
		versionStr := ""
		if len(version) > 0 {
			versionStr = version[0]
		}
		if _, err := fmt.Fprintf(w, "%-30s %s - %s\n", name, versionStr, descStr); err != nil {
			return err
		}
	}

	return nil
}
