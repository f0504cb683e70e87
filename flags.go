package main

import (
	"strings"
)

// cflagsOptions selects which subset of -I/-other tokens to keep, mirroring
// --cflags / --cflags-only-I / --cflags-only-other (spec.md §4.7); these
// may combine, so both booleans can be true at once.
type cflagsOptions struct {
	KeepI     bool
	KeepOther bool
}

// projectCflags assembles the Cflags output for order (the walker's
// projected package list): fetch each package's expanded Cflags, drop
// system -I paths unless allowed, prefix with the sysroot, deduplicate
// preserving order, and keep only the requested token classes.
func projectCflags(ctx *Context, env environ, order []string, opts cflagsOptions) []string {
	var all []string
	for _, name := range order {
		entry := ctx.load(name)
		if entry.err != nil {
			continue
		}
		tokens, _ := entry.model.Property("Cflags", ctx.overridesFor(name, env))
		for _, tok := range tokens {
			if strings.HasPrefix(tok, "-I") {
				path := strings.TrimPrefix(tok, "-I")
				if isSystemIncludePath(ctx, path) && !ctx.AllowSystemCflags {
					continue
				}
				if ctx.SysrootDir != "" {
					path = ctx.SysrootDir + path
				}
				all = append(all, "-I"+path)
			} else {
				all = append(all, tok)
			}
		}
	}

	deduped := dedupForward(all)

	out := make([]string, 0, len(deduped))
	for _, tok := range deduped {
		isInclude := strings.HasPrefix(tok, "-I")
		if isInclude && opts.KeepI {
			out = append(out, tok)
		} else if !isInclude && opts.KeepOther {
			out = append(out, tok)
		}
	}
	return out
}

func isSystemIncludePath(ctx *Context, path string) bool {
	for _, sys := range ctx.SystemIncludePath {
		if path == sys {
			return true
		}
	}
	return false
}

// libsOptions selects which partitions to keep, mirroring --libs /
// --libs-only-l / --libs-only-L / --libs-only-other.
type libsOptions struct {
	KeepL     bool // -L and other (non -l, non -L) tokens
	KeepSmall bool // -l tokens
}

// projectLibs assembles the Libs output for order: fetch each package's
// Libs (plus Libs.private in static mode), filter system -L paths, split
// into the L-and-other partition (deduplicated forward) and the -l
// partition (deduplicated from the right, preserving the last occurrence
// for archive-linker resolution order), prefix both with the sysroot, and
// join them per spec.md §4.7.
func projectLibs(ctx *Context, env environ, order []string, opts libsOptions) []string {
	var all []string
	for _, name := range order {
		entry := ctx.load(name)
		if entry.err != nil {
			continue
		}
		overrides := ctx.overridesFor(name, env)

		tokens, _ := entry.model.Property("Libs", overrides)
		all = append(all, tokens...)

		if ctx.Static {
			if priv, ok := entry.model.Property("Libs.private", overrides); ok {
				all = append(all, priv...)
			}
		}
	}

	var filtered []string
	for _, tok := range all {
		if strings.HasPrefix(tok, "-L") && isSystemLibPath(tok[2:]) && !ctx.AllowSystemLibs {
			continue
		}
		filtered = append(filtered, tok)
	}

	var lAndOther, smallL []string
	for _, tok := range filtered {
		if strings.HasPrefix(tok, "-l") {
			smallL = append(smallL, tok)
		} else {
			lAndOther = append(lAndOther, tok)
		}
	}

	lAndOther = dedupForward(lAndOther)
	smallL = dedupFromRight(smallL)

	if ctx.SysrootDir != "" {
		lAndOther = prefixPaths(lAndOther, "-L", ctx.SysrootDir)
		smallL = prefixPaths(smallL, "-l", ctx.SysrootDir)
	}

	var out []string
	if opts.KeepL {
		out = append(out, lAndOther...)
	}
	if opts.KeepSmall {
		out = append(out, smallL...)
	}
	return out
}

// isSystemLibPath matches the literal pattern spec.md §4.7 calls out as a
// deliberately preserved quirk: it matches "/usr/lib32*" and
// "/usr/lib64*" but not the bare "/usr/lib" path (Open Question (b), §9).
func isSystemLibPath(path string) bool {
	return strings.HasPrefix(path, "/usr/lib32") || strings.HasPrefix(path, "/usr/lib64")
}

func prefixPaths(tokens []string, flag, sysroot string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		if strings.HasPrefix(tok, flag) {
			out[i] = flag + sysroot + strings.TrimPrefix(tok, flag)
		} else {
			out[i] = tok
		}
	}
	return out
}

func dedupForward(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// dedupFromRight deduplicates while keeping the last occurrence of each
// token: reverse, forward-dedup, reverse again.
func dedupFromRight(tokens []string) []string {
	reversed := reverseStrings(tokens)
	deduped := dedupForward(reversed)
	return reverseStrings(deduped)
}
