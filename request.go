package main

import (
	"fmt"
	"strings"

	"github.com/go-pkgconf/pkgconf/version"
)

// request is one positional package reference: a bare name, or a name
// with an explicit version constraint (spec.md §6, "Positional
// arguments": "NAME OP VERSION" triples, or a bare NAME).
type request struct {
	Name string
	Op   string
	Ver  string
}

func (r request) HasConstraint() bool { return r.Op != "" }

// parseRequests turns the CLI's remaining positional arguments into a list
// of requests. Commas between package names are accepted as separators in
// addition to whitespace (already split by the shell/flag parser, but a
// package name may still carry a trailing comma). A request is either a
// single token "name" / "name OP version" (no internal whitespace) or
// three consecutive tokens "name", "OP", "version".
func parseRequests(args []string) ([]request, error) {
	var tokens []string
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				tokens = append(tokens, part)
			}
		}
	}

	var requests []request
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if version.ValidOperator(tok) {
			if len(requests) == 0 {
				return nil, fmt.Errorf("pkgconf: %w: operator %q with no preceding package name", errArgument, tok)
			}
			if i+1 >= len(tokens) {
				return nil, fmt.Errorf("pkgconf: %w: operator %q with no following version", errArgument, tok)
			}
			last := &requests[len(requests)-1]
			last.Op = tok
			last.Ver = tokens[i+1]
			i++
			continue
		}

		if name, op, ver, ok := splitInlineConstraint(tok); ok {
			requests = append(requests, request{Name: name, Op: op, Ver: ver})
			continue
		}

		requests = append(requests, request{Name: tok})
	}

	return requests, nil
}

// splitInlineConstraint recognizes a single token of the form
// "name OP version" with no internal whitespace, e.g. "foo>=1.2", using
// the same operator set as Requires tokens.
func splitInlineConstraint(tok string) (name, op, ver string, ok bool) {
	for i := 1; i < len(tok); i++ {
		for _, candidate := range []string{">=", "<=", "!=", "<", ">", "="} {
			if strings.HasPrefix(tok[i:], candidate) {
				return tok[:i], candidate, tok[i+len(candidate):], true
			}
		}
	}
	return "", "", "", false
}
