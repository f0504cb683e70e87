package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/go-pkgconf/pkgconf/expand"
)

// Context is the process-wide, read-only state every query is evaluated
// against: the search path, the sysroot, system-include filtering, mode
// flags, and the override sources for variable expansion. It is built once
// in run() from the environment and flags, then shared by pointer through
// the rest of the driver (spec.md §9, "Process-wide state").
type Context struct {
	SearchPath        []string
	SysrootDir        string
	TopBuildDir       string
	SystemIncludePath []string

	AllowSystemCflags bool
	AllowSystemLibs   bool
	Static            bool
	Uninstalled       bool // PKG_CONFIG_DISABLE_UNINSTALLED is false

	GlobalDefines map[string]string

	Logger hclog.Logger

	cache *cache
}

// NewContext builds a Context from the process environment and the
// --define-variable entries collected from the command line. It also
// constructs and seeds the load cache (search.go), including the synthetic
// self-package (selfpackage.go).
func NewContext(env environ, defines map[string]string, logger hclog.Logger) *Context {
	ctx := &Context{
		SearchPath:        searchPath(env),
		SysrootDir:        env.get("PKG_CONFIG_SYSROOT_DIR"),
		TopBuildDir:       env.get("PKG_CONFIG_TOP_BUILD_DIR"),
		SystemIncludePath: systemIncludePath(env),
		AllowSystemCflags: envBool(env, "PKG_CONFIG_ALLOW_SYSTEM_CFLAGS"),
		AllowSystemLibs:   envBool(env, "PKG_CONFIG_ALLOW_SYSTEM_LIBS"),
		Uninstalled:       !envBool(env, "PKG_CONFIG_DISABLE_UNINSTALLED"),
		GlobalDefines:     defines,
		Logger:            logger,
	}
	ctx.cache = newCache()
	name, entry := selfPackage(ctx)
	ctx.cache.seedSelf(name, entry)
	return ctx
}

// environ abstracts process environment lookup so tests can substitute a
// fake without touching the real process environment.
type environ interface {
	get(key string) string
}

type osEnviron struct{}

func (osEnviron) get(key string) string { return os.Getenv(key) }

// OSEnviron is the environ backed by the real process environment.
var OSEnviron environ = osEnviron{}

func envBool(env environ, key string) bool {
	v := env.get(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		// A non-empty value that is not a recognised boolean counts as
		// truthy; values such as "0" or "false" parse above as false.
		return true
	}
	return b
}

func systemIncludePath(env environ) []string {
	paths := []string{"/usr/include"}
	for _, key := range []string{"PKG_CONFIG_SYSTEM_INCLUDE_PATH", "C_PATH", "C_INCLUDE_PATH", "CPLUS_INCLUDE_PATH"} {
		if v := env.get(key); v != "" {
			paths = append(paths, strings.Split(v, ":")...)
		}
	}
	return paths
}

// overridesFor returns the expand.Overrides view for a specific package
// name: global --define-variable entries overridden by any
// PKG_CONFIG_<SANITIZED_PKG>_<SUFFIX> environment variable naming that
// package, since an env override scoped to one package is the more
// specific instruction.
func (c *Context) overridesFor(pkgName string, env environ) expand.Overrides {
	return &packageOverrides{
		global:  c.GlobalDefines,
		pkgName: pkgName,
		env:     env,
	}
}

type packageOverrides struct {
	global  map[string]string
	pkgName string
	env     environ
}

// Lookup implements expand.Overrides.
func (o *packageOverrides) Lookup(name string) (string, bool) {
	envKey := "PKG_CONFIG_" + sanitizeForEnv(o.pkgName) + "_" + strings.ToUpper(name)
	if v := o.env.get(envKey); v != "" {
		return v, true
	}
	if v, ok := o.global[name]; ok {
		return v, true
	}
	return "", false
}

// sanitizeForEnv upper-cases a package name and replaces any byte that
// cannot appear in a shell environment-variable name with an underscore,
// mirroring the PKG_CONFIG_<PACKAGE>_<var> convention from spec.md §6.
func sanitizeForEnv(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
