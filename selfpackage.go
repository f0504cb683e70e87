package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/go-pkgconf/pkgconf/pc"
)

// toolVersion is the tool's own release version, in plain SemVer — not the
// domain-specific pkg-config version grammar the version package
// implements for Requires constraints. Modified by CI during release.
var toolVersion = "1.0.0"

const selfPackageName = "pkg-config"

// selfPackage builds the synthetic "pkg-config" model spec.md §6 requires
// be pre-seeded in the cache, so other metadata files may declare it as a
// Requires dependency: Version is the tool's own version, and pc_path is
// the colon-joined search path.
func selfPackage(ctx *Context) (string, *cacheEntry) {
	model := pc.New()
	model.AddVariable("pc_path", strings.Join(ctx.SearchPath, ":"))
	model.AddProperty("Name", []string{"pkg-config"})
	model.AddProperty("Description", []string{"pkg-config metadata resolver"})
	model.AddProperty("Version", []string{toolVersion})
	model.AddProperty("URL", []string{"https://github.com/go-pkgconf/pkgconf"})

	return selfPackageName, &cacheEntry{model: model, path: "<self>"}
}

// atLeastToolVersion reports whether the tool's own version is >= want,
// comparing only major and minor components independently per spec.md
// §4.4 ("Self-version comparison"): each component of the tool's version
// must be >= the corresponding requested component, patch is ignored.
func atLeastToolVersion(want string) (bool, error) {
	have, err := semver.ParseTolerant(toolVersion)
	if err != nil {
		return false, fmt.Errorf("pkgconf: parsing tool version %q: %w", toolVersion, err)
	}

	wantMajor, wantMinor, err := splitMajorMinor(want)
	if err != nil {
		return false, err
	}

	return have.Major >= wantMajor && have.Minor >= wantMinor, nil
}

func splitMajorMinor(v string) (major, minor uint64, err error) {
	parts := strings.SplitN(v, ".", 3)
	major, err = strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("pkgconf: parsing version %q: %w", v, err)
	}
	if len(parts) > 1 {
		minor, err = strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("pkgconf: parsing version %q: %w", v, err)
		}
	}
	return major, minor, nil
}
