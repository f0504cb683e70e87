package pc

import "strings"

// relationalOps lists the six comparison operators a Requires token may
// embed, longest first so prefix scans don't stop on ">"/"<" before
// noticing ">="/"<=".
var relationalOps = []string{">=", "<=", "!=", "<", ">", "="}

func startsWithOperator(s string) string {
	for _, op := range relationalOps {
		if strings.HasPrefix(s, op) {
			return op
		}
	}
	return ""
}

func endsWithOperator(s string) string {
	for _, op := range relationalOps {
		if strings.HasSuffix(s, op) {
			return op
		}
	}
	return ""
}

// splitRequires implements the Requires/Requires.private token rule
// (spec.md §4.1): split on commas and/or whitespace, then fuse adjacent
// fragments so a relational operator at the end of one fragment or the
// start of the next is joined with its neighbors.
func splitRequires(raw string) []string {
	fragments := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	fused := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if len(fused) > 0 {
			last := fused[len(fused)-1]
			if endsWithOperator(last) != "" || startsWithOperator(f) != "" {
				fused[len(fused)-1] = last + f
				continue
			}
		}
		fused = append(fused, f)
	}
	return fused
}

// splitDefault implements the default whitespace-split rule used by all
// properties other than Requires/Requires.private: split on runs of
// unescaped whitespace, keeping backslash-escaped whitespace inside a
// token as a literal space. Built on the scanner type (scanner.go) rather
// than a manual rune-index loop.
func splitDefault(raw string) []string {
	var tokens []string
	s := &scanner{s: raw}

	for {
		s.skipWhitespace()
		if s.peekRune() == eof {
			break
		}

		var cur strings.Builder
		for {
			r := s.peekRune()
			if r == eof || isSplitSpace(r) {
				break
			}
			if r == '\\' {
				s.next()
				if next := s.peekRune(); next != eof && isSplitSpace(next) {
					cur.WriteRune(s.next())
					continue
				}
				cur.WriteRune('\\')
				continue
			}
			cur.WriteRune(s.next())
		}
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func isSplitSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// Split tokenizes a property's raw value according to its kind.
func Split(kind Kind, raw string) []string {
	if kind == KindRequires {
		return splitRequires(raw)
	}
	return splitDefault(raw)
}

// ParseRequireToken splits a fused Requires token ("foo", "foo>=1.2") into
// its package name and, if present, comparison operator and version.
func ParseRequireToken(token string) (name, op, ver string, hasConstraint bool) {
	for i := 1; i < len(token); i++ {
		if o := startsWithOperator(token[i:]); o != "" {
			return token[:i], o, token[i+len(o):], true
		}
	}
	return token, "", "", false
}
