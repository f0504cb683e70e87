package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/pflag"

	"github.com/go-pkgconf/pkgconf/version"
)

const helpText = `pkgconf resolves package metadata files and emits compiler/linker flags.

Usage:

  pkgconf [options] [package [op version] ...]

Common options:

  --cflags, --libs         emit compile/link flags for the named packages
  --exists, --validate     check that packages and their versions resolve
  --modversion             print each package's Version
  --list-all               enumerate every discoverable package
  --version                print the tool's own version
`

// flagSet bundles the parsed CLI flags. Kept as one struct so run() reads
// like a straight line of dispatch instead of threading a dozen locals.
type flagSet struct {
	debug           bool
	help            bool
	usage           bool
	versionFlag     bool
	listAll         bool
	errorsToStdout  bool
	printErrors     bool
	silenceErrors   bool
	atLeastPkgconf  string
	printProvides   bool
	printRequires   bool
	printReqPrivate bool
	cflags          bool
	cflagsOnlyI     bool
	cflagsOnlyOther bool
	libs            bool
	libsOnlyL       bool
	libsOnlyCapL    bool
	libsOnlyOther   bool
	exists          bool
	validate        bool
	static          bool
	uninstalled     bool
	atLeastVersion  string
	exactVersion    string
	maxVersion      string
	modversion      bool
	variable        string
	defines         []string
}

func parseFlags(args []string) (*flagSet, []string, error) {
	fs := pflag.NewFlagSet("pkgconf", pflag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	f := &flagSet{}
	fs.BoolVar(&f.debug, "debug", false, "enable verbose tracing to standard error")
	fs.BoolVar(&f.help, "help", false, "print help and exit")
	fs.BoolVar(&f.usage, "usage", false, "print help and exit")
	fs.BoolVar(&f.versionFlag, "version", false, "print tool version and exit")
	fs.BoolVar(&f.listAll, "list-all", false, "enumerate all discoverable packages")
	fs.BoolVar(&f.errorsToStdout, "errors-to-stdout", false, "redirect diagnostics to standard output")
	fs.BoolVar(&f.printErrors, "print-errors", false, "force diagnostics on")
	fs.BoolVar(&f.silenceErrors, "silence-errors", false, "force diagnostics off")
	fs.StringVar(&f.atLeastPkgconf, "atleast-pkgconfig-version", "", "exit 0 iff tool version >= V")
	fs.BoolVar(&f.printProvides, "print-provides", false, "print NAME = VERSION for each package")
	fs.BoolVar(&f.printRequires, "print-requires", false, "print direct dependency names")
	fs.BoolVar(&f.printReqPrivate, "print-requires-private", false, "print direct Requires.private names")
	fs.BoolVar(&f.cflags, "cflags", false, "emit compile flags")
	fs.BoolVar(&f.cflagsOnlyI, "cflags-only-I", false, "emit only -I flags")
	fs.BoolVar(&f.cflagsOnlyOther, "cflags-only-other", false, "emit only non -I compile flags")
	fs.BoolVar(&f.libs, "libs", false, "emit link flags")
	fs.BoolVar(&f.libsOnlyL, "libs-only-l", false, "emit only -l flags")
	fs.BoolVar(&f.libsOnlyCapL, "libs-only-L", false, "emit only -L flags")
	fs.BoolVar(&f.libsOnlyOther, "libs-only-other", false, "emit only non -l/-L link flags")
	fs.BoolVar(&f.exists, "exists", false, "exit 0 iff all packages and constraints resolve")
	fs.BoolVar(&f.validate, "validate", false, "like --exists but skip Requires traversal")
	fs.BoolVar(&f.static, "static", false, "enable static-link ordering and Libs.private")
	fs.BoolVar(&f.uninstalled, "uninstalled", false, "exit 0 iff an -uninstalled variant was used")
	fs.StringVar(&f.atLeastVersion, "atleast-version", "", "require each package >= V")
	fs.StringVar(&f.exactVersion, "exact-version", "", "require each package = V")
	fs.StringVar(&f.maxVersion, "max-version", "", "require each package <= V")
	fs.BoolVar(&f.modversion, "modversion", false, "print each package's Version")
	fs.StringVar(&f.variable, "variable", "", "print expanded value of variable NAME")
	fs.StringArrayVar(&f.defines, "define-variable", nil, "inject a NAME=VALUE override")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseDefines(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, d := range raw {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			return nil, fmt.Errorf("pkgconf: %w: --define-variable value %q is not NAME=VALUE", errArgument, d)
		}
		out[name] = value
	}
	return out, nil
}

func buildWalkMode(f *flagSet) walkMode {
	cflagsRequested := f.cflags || f.cflagsOnlyI || f.cflagsOnlyOther
	libsRequested := f.libs || f.libsOnlyL || f.libsOnlyCapL || f.libsOnlyOther

	return walkMode{
		TraverseRequires:        !f.validate,
		TraverseRequiresPrivate: cflagsRequested || (libsRequested && f.static) || f.printReqPrivate || f.exists,
	}
}

// diagnosticsEnabled implements spec.md §7: diagnostics are silenced by
// default, auto-enabled by the listed query flags, and --print-errors /
// --silence-errors override either way. §7's list omits --exists, but §8's
// scenario 6 requires a visible diagnostic from a bare "--exists a" run,
// so --exists is treated as an auto-enabling flag too (see DESIGN.md).
func diagnosticsEnabled(f *flagSet) bool {
	enabled := f.libs || f.cflags || f.versionFlag || f.listAll || f.validate || f.exists
	if f.printErrors {
		return true
	}
	if f.silenceErrors {
		return false
	}
	return enabled
}

func run(args []string, env environ, stdout, stderr io.Writer) (int, error) {
	f, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(stderr, "pkgconf:", err)
		return 2, nil
	}

	if f.help || f.usage {
		fmt.Fprint(stdout, helpText)
		return 0, nil
	}
	if f.versionFlag {
		fmt.Fprintf(stdout, "%s\n", toolVersion)
		return 0, nil
	}

	if err := writeInvocationLog(env, args); err != nil {
		return 1, err
	}

	level := hclog.NoLevel
	if f.debug || env.get("PKG_CONFIG_DEBUG_SPEW") != "" {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "pkgconf",
		Level:  level,
		Output: stderr,
	})

	defines, err := parseDefines(f.defines)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2, nil
	}

	ctx := NewContext(env, defines, logger)
	ctx.Static = f.static

	errOut := stderr
	if f.errorsToStdout {
		errOut = stdout
	}

	if f.atLeastPkgconf != "" {
		ok, err := atLeastToolVersion(f.atLeastPkgconf)
		if err != nil {
			fmt.Fprintln(errOut, err)
			return 1, nil
		}
		if !ok {
			return 1, nil
		}
		return 0, nil
	}

	if f.listAll {
		if err := listAll(ctx, stdout); err != nil {
			return 1, err
		}
		return 0, nil
	}

	requests, err := parseRequests(positional)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2, nil
	}
	if len(requests) == 0 {
		fmt.Fprintln(stderr, "pkgconf: no package name specified")
		return 2, nil
	}

	applyGlobalConstraint(requests, f)

	mode := buildWalkMode(f)
	w := newWalker(ctx, env, mode)
	for _, r := range requests {
		w.walk(r.Name, r.Op, r.Ver)
	}

	diagOn := diagnosticsEnabled(f)
	if w.failed() && diagOn {
		for _, e := range w.errs.Errors {
			fmt.Fprintln(errOut, e)
		}
	}

	if w.failed() {
		return 1, nil
	}

	if f.uninstalled {
		if w.uninstalled {
			return 0, nil
		}
		return 1, nil
	}

	if f.exists || f.validate {
		return 0, nil
	}

	order := w.projected()
	printed := false

	if f.printProvides {
		for _, r := range requests {
			entry := ctx.load(r.Name)
			ver, _ := entry.model.Property("Version", nil)
			v := ""
			if len(ver) > 0 {
				v = ver[0]
			}
			fmt.Fprintf(stdout, "%s = %s\n", r.Name, v)
		}
		printed = true
	}

	if f.printRequires || f.printReqPrivate {
		propName := "Requires"
		if f.printReqPrivate {
			propName = "Requires.private"
		}
		for _, r := range requests {
			entry := ctx.load(r.Name)
			tokens, _ := entry.model.Property(propName, ctx.overridesFor(r.Name, env))
			for _, tok := range tokens {
				name, _, _, _ := splitInlineConstraint(tok)
				if name == "" {
					name = tok
				}
				fmt.Fprintln(stdout, name)
			}
		}
		printed = true
	}

	if f.modversion {
		for _, r := range requests {
			entry := ctx.load(r.Name)
			ver, _ := entry.model.Property("Version", nil)
			if len(ver) > 0 {
				fmt.Fprintln(stdout, ver[0])
			}
		}
		printed = true
	}

	if f.variable != "" {
		var values []string
		for _, r := range requests {
			entry := ctx.load(r.Name)
			values = append(values, entry.model.Variable(f.variable, ctx.overridesFor(r.Name, env)))
		}
		fmt.Fprint(stdout, strings.Join(values, " "))
		printed = true
	}

	var flagLine []string
	if f.cflags || f.cflagsOnlyI || f.cflagsOnlyOther {
		opts := cflagsOptions{KeepI: f.cflags || f.cflagsOnlyI, KeepOther: f.cflags || f.cflagsOnlyOther}
		flagLine = append(flagLine, projectCflags(ctx, env, order, opts)...)
	}
	if f.libs || f.libsOnlyL || f.libsOnlyCapL || f.libsOnlyOther {
		opts := libsOptions{
			KeepL:     f.libs || f.libsOnlyCapL || f.libsOnlyOther,
			KeepSmall: f.libs || f.libsOnlyL,
		}
		for _, tok := range projectLibs(ctx, env, order, opts) {
			isCapL := strings.HasPrefix(tok, "-L")
			isOther := !isCapL && !strings.HasPrefix(tok, "-l")
			if isCapL && !f.libs && !f.libsOnlyCapL {
				continue
			}
			if isOther && !f.libs && !f.libsOnlyOther {
				continue
			}
			flagLine = append(flagLine, tok)
		}
	}
	if len(flagLine) > 0 {
		if printed && f.variable != "" {
			fmt.Fprint(stdout, " ")
		}
		fmt.Fprintln(stdout, strings.Join(flagLine, " "))
		printed = true
	} else if f.variable != "" {
		fmt.Fprintln(stdout)
	}

	return 0, nil
}

// applyGlobalConstraint folds --atleast-version/--exact-version/--max-version
// into any request that didn't already carry its own inline constraint
// (spec.md §6: these flags "apply to all positional packages").
func applyGlobalConstraint(requests []request, f *flagSet) {
	op, v := "", ""
	switch {
	case f.atLeastVersion != "":
		op, v = version.GreaterOrEqual, f.atLeastVersion
	case f.exactVersion != "":
		op, v = version.Equal, f.exactVersion
	case f.maxVersion != "":
		op, v = version.LessOrEqual, f.maxVersion
	default:
		return
	}
	for i := range requests {
		if !requests[i].HasConstraint() {
			requests[i].Op = op
			requests[i].Ver = v
		}
	}
}

