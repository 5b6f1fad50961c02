package outline

// MismatchKind classifies a disagreement between two outlines.
type MismatchKind string

const (
	// MismatchMissing is a reference heading the scanner did not see.
	MismatchMissing MismatchKind = "missing"

	// MismatchExtra is a scanner heading the reference does not have.
	MismatchExtra MismatchKind = "extra"

	// MismatchLevel is a heading both see on the same line at different levels.
	MismatchLevel MismatchKind = "level"
)

// Mismatch is one disagreement, keyed by line.
type Mismatch struct {
	Kind      MismatchKind `json:"kind" yaml:"kind"`
	Line      int          `json:"line" yaml:"line"`
	Scanner   *Heading     `json:"scanner,omitempty" yaml:"scanner,omitempty"`
	Reference *Heading     `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// Compare lines up two outlines by heading line and reports where they
// differ, in line order. Titles are not compared.
func Compare(scanner, reference []Heading) []Mismatch {
	var out []Mismatch

	i, j := 0, 0
	for i < len(scanner) || j < len(reference) {
		switch {
		case j >= len(reference) || (i < len(scanner) && scanner[i].Line < reference[j].Line):
			out = append(out, Mismatch{Kind: MismatchExtra, Line: scanner[i].Line, Scanner: &scanner[i]})
			i++
		case i >= len(scanner) || reference[j].Line < scanner[i].Line:
			out = append(out, Mismatch{Kind: MismatchMissing, Line: reference[j].Line, Reference: &reference[j]})
			j++
		default:
			if scanner[i].Level != reference[j].Level {
				out = append(out, Mismatch{
					Kind: MismatchLevel, Line: scanner[i].Line,
					Scanner: &scanner[i], Reference: &reference[j],
				})
			}
			i++
			j++
		}
	}
	return out
}
