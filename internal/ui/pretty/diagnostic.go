package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdhl/pkg/outline"
)

// FormatFileError formats a file that could not be highlighted.
func (s *Styles) FormatFileError(path string, err error) string {
	return fmt.Sprintf("  %s  %s  %s\n",
		s.FilePath.Render(path),
		s.Error.Render("error"),
		s.Message.Render(err.Error()),
	)
}

// FormatMismatch formats one disagreement between the scanner outline and
// the reference parser. sourceLine is the text of the line, if known.
func (s *Styles) FormatMismatch(path string, mismatch outline.Mismatch, sourceLine string) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d", s.FilePath.Render(path), mismatch.Line)

	var message string
	switch mismatch.Kind {
	case outline.MismatchMissing:
		message = fmt.Sprintf("reference heading %s not styled as a header", describeHeading(mismatch.Reference))
	case outline.MismatchExtra:
		message = fmt.Sprintf("styled header %s is not a heading to the reference parser", describeHeading(mismatch.Scanner))
	case outline.MismatchLevel:
		message = fmt.Sprintf("styled as level %d, reference level %d",
			mismatch.Scanner.Level, mismatch.Reference.Level)
	default:
		message = string(mismatch.Kind)
	}

	builder.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
		location,
		s.Warning.Render(string(mismatch.Kind)),
		s.Message.Render(message),
		s.Location.Render("(outline)"),
	))

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, 1))
	}

	return builder.String()
}

func describeHeading(heading *outline.Heading) string {
	if heading == nil {
		return "?"
	}
	return fmt.Sprintf("h%d %q", heading.Level, heading.Title)
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	const indent = "        "

	builder.WriteString(indent + s.Dim.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Warning.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path, lexerName string) string {
	header := s.FilePath.Render(path)
	if lexerName != "" {
		header += s.Dim.Render(" (") + s.Lexer.Render(lexerName) + s.Dim.Render(")")
	}
	return header
}
