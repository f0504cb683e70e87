package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-pkgconf/pkgconf/pc"
)

var defaultSearchPath = []string{
	"/usr/lib/pkgconfig",
	"/usr/share/pkgconfig",
	"/usr/local/lib/pkgconfig",
	"/usr/local/share/pkgconfig",
}

// searchPath computes the probe order from PKG_CONFIG_PATH and
// PKG_CONFIG_LIBDIR (spec.md §4.5): PKG_CONFIG_PATH entries are prepended
// to either the built-in list or, if set, PKG_CONFIG_LIBDIR's entries
// (which replace the built-in list entirely).
func searchPath(env environ) []string {
	base := defaultSearchPath
	if libdir := env.get("PKG_CONFIG_LIBDIR"); libdir != "" {
		base = strings.Split(libdir, ":")
	}

	var path []string
	if pcpath := env.get("PKG_CONFIG_PATH"); pcpath != "" {
		path = append(path, strings.Split(pcpath, ":")...)
	}
	return append(path, base...)
}

// cacheEntry is either a successfully loaded model or a negative marker
// recording that the package could not be found or failed validation
// (invariant I4: a package name maps to at most one loaded model, or one
// failure, per process lifetime).
type cacheEntry struct {
	model       *pc.PkgConfig
	path        string
	uninstalled bool
	err         error
}

// cache is the process-wide, never-invalidated load cache (E).
type cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[string]*cacheEntry)}
}

// seedSelf pre-populates the cache with the synthetic self-package so that
// other packages may declare "pkg-config" as a Requires dependency without
// triggering a search-path probe.
func (c *cache) seedSelf(name string, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = entry
}

// load resolves pkgName to a model, consulting and populating the cache.
// It never re-probes the search path or re-parses a file once an entry
// (positive or negative) exists for pkgName.
func (c *Context) load(pkgName string) *cacheEntry {
	entry, _ := c.loadWithStatus(pkgName)
	return entry
}

// loadWithStatus is load plus a flag telling the caller whether pkgName
// already had a cache entry before this call.
func (c *Context) loadWithStatus(pkgName string) (entry *cacheEntry, alreadyCached bool) {
	c.cache.mu.Lock()
	if e, ok := c.cache.entries[pkgName]; ok {
		c.cache.mu.Unlock()
		return e, true
	}
	c.cache.mu.Unlock()

	entry = c.resolveAndParse(pkgName)

	c.cache.mu.Lock()
	c.cache.entries[pkgName] = entry
	c.cache.mu.Unlock()
	return entry, false
}

func (c *Context) resolveAndParse(pkgName string) *cacheEntry {
	path, uninstalled, err := c.probe(pkgName)
	if err != nil {
		return &cacheEntry{err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		return &cacheEntry{err: fmt.Errorf("opening %s: %w", path, err)}
	}
	defer f.Close()

	model, err := pc.Parse(f)
	if err != nil {
		return &cacheEntry{err: fmt.Errorf("parsing %s: %w", path, err)}
	}

	return &cacheEntry{model: model, path: path, uninstalled: uninstalled}
}

// probe walks the search path looking for pkgName's metadata file, per
// spec.md §4.5. If pkgName already names a literal ".pc" path, probing is
// skipped entirely.
func (c *Context) probe(pkgName string) (path string, uninstalled bool, err error) {
	if strings.Contains(pkgName, ".pc") {
		if _, statErr := os.Stat(pkgName); statErr != nil {
			return "", false, fmt.Errorf("pkgconf: %s: %w", pkgName, errNotFound)
		}
		return pkgName, false, nil
	}

	if c.Uninstalled && !strings.HasSuffix(pkgName, "-uninstalled") {
		for _, dir := range c.SearchPath {
			candidate := filepath.Join(dir, pkgName+"-uninstalled.pc")
			if _, statErr := os.Stat(candidate); statErr == nil {
				return candidate, true, nil
			}
		}
	}

	for _, dir := range c.SearchPath {
		candidate := filepath.Join(dir, pkgName+".pc")
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, false, nil
		}
	}

	return "", false, fmt.Errorf("pkgconf: package %q: %w", pkgName, errNotFound)
}
