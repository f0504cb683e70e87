// Package version implements the version-string ordering used to evaluate
// pkg-config Requires constraints. The ordering is domain-specific: it is
// not SemVer and not PEP 440 (see the blang/semver import in the root
// package for the tool's own release version, which *is* plain SemVer).
package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Comparison operators accepted on the command line and in Requires tokens.
const (
	Less           = "<"
	LessOrEqual    = "<="
	Equal          = "="
	NotEqual       = "!="
	GreaterOrEqual = ">="
	Greater        = ">"
)

// suffix ranks. Pre-release ranks sort below a bare release; a trailing
// single-letter suffix (e.g. "1.0.1h") sorts above one, matching the
// intuition that it denotes a point release rather than a preview.
const (
	rankAlpha      = -3
	rankBeta       = -2
	rankCandidate  = -1
	rankNone       = 0
	rankLetterBase = 1000
)

var (
	prereleaseSuffix = regexp.MustCompile(`-?(rc|beta|b|alpha|a)(\d+)$`)
	letterSuffix     = regexp.MustCompile(`[A-Za-z]$`)
)

type suffix struct {
	rank int
	num  int
}

// extract splits s into its numeric body and an optional trailing suffix.
func extract(s string) (body string, suf suffix, has bool) {
	if loc := prereleaseSuffix.FindStringSubmatchIndex(s); loc != nil {
		label := s[loc[2]:loc[3]]
		num, _ := strconv.Atoi(s[loc[4]:loc[5]])
		rank := rankCandidate
		switch label {
		case "alpha", "a":
			rank = rankAlpha
		case "beta", "b":
			rank = rankBeta
		case "rc":
			rank = rankCandidate
		}
		return s[:loc[0]], suffix{rank: rank, num: num}, true
	}

	if loc := letterSuffix.FindStringIndex(s); loc != nil {
		letter := strings.ToLower(s[loc[0]:loc[1]])
		return s[:loc[0]], suffix{rank: rankLetterBase + int(letter[0]-'a')}, true
	}

	return s, suffix{}, false
}

func components(body string) []int {
	parts := strings.Split(body, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, _ := strconv.Atoi(p)
		out[i] = n
	}
	return out
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func compareSuffix(a, b suffix, aHas, bHas bool) int {
	switch {
	case aHas && bHas:
		if a.rank != b.rank {
			return sign(a.rank - b.rank)
		}
		return sign(a.num - b.num)
	case aHas && !bHas:
		// a pre-release suffix is less than the corresponding release;
		// a letter suffix is greater than it.
		if a.rank < rankNone {
			return -1
		}
		return 1
	case bHas && !aHas:
		if b.rank < rankNone {
			return 1
		}
		return -1
	default:
		return 0
	}
}

// Compare returns -1, 0, or 1 comparing version strings a and b using the
// pkg-config ordering: dotted numeric components, with an optional
// alpha/beta/rc pre-release suffix or a single trailing letter suffix on
// the final component.
func Compare(a, b string) int {
	if a == b {
		return 0
	}

	bodyA, sufA, hasA := extract(a)
	bodyB, sufB, hasB := extract(b)

	compsA := components(bodyA)
	compsB := components(bodyB)

	minLen := len(compsA)
	if len(compsB) < minLen {
		minLen = len(compsB)
	}

	for i := 0; i < minLen; i++ {
		last := i == minLen-1
		if last && (hasA || hasB) && compsA[i] == compsB[i] {
			return compareSuffix(sufA, sufB, hasA, hasB)
		}
		if compsA[i] != compsB[i] {
			return sign(compsA[i] - compsB[i])
		}
	}

	if len(compsA) != len(compsB) {
		return sign(len(compsA) - len(compsB))
	}

	return 0
}

// Satisfies reports whether installed satisfies "OP constraint", e.g.
// Satisfies("1.5", ">=", "2.0") is false.
func Satisfies(installed, op, constraint string) (bool, error) {
	c := Compare(installed, constraint)
	switch op {
	case Less:
		return c < 0, nil
	case LessOrEqual:
		return c <= 0, nil
	case Equal:
		return c == 0, nil
	case NotEqual:
		return c != 0, nil
	case GreaterOrEqual:
		return c >= 0, nil
	case Greater:
		return c > 0, nil
	default:
		return false, fmt.Errorf("version: unknown comparison operator %q", op)
	}
}

// ValidOperator reports whether op is one of the six recognized operators.
func ValidOperator(op string) bool {
	switch op {
	case Less, LessOrEqual, Equal, NotEqual, GreaterOrEqual, Greater:
		return true
	default:
		return false
	}
}
