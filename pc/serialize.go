package pc

import (
	"fmt"
	"io"
	"strings"
)

// whitespaceEscaper re-escapes whitespace inside a default-split token so
// splitDefault reads it back as one token.
var whitespaceEscaper = strings.NewReplacer(" ", `\ `, "\t", "\\\t")

// Serialize writes the model back out in the format Parse accepts,
// preserving insertion order for both variables and properties
// (invariant I2: parse -> serialize -> parse is a no-op on the model).
func (p *PkgConfig) Serialize(w io.Writer) error {
	for _, name := range p.varNames {
		if _, err := fmt.Fprintf(w, "%s=%s\n", name, p.varValues[name]); err != nil {
			return err
		}
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	for _, name := range p.propNames {
		tokens := p.propValues[name]
		if kindOf(name) == KindLibs {
			tokens = dedupFirst(tokens)
		}
		if kindOf(name) != KindRequires {
			escaped := make([]string, len(tokens))
			for i, t := range tokens {
				escaped[i] = whitespaceEscaper.Replace(t)
			}
			tokens = escaped
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, strings.Join(tokens, " ")); err != nil {
			return err
		}
	}

	return nil
}
