package outline

import (
	"bytes"

	"github.com/yaklabco/mdhl/pkg/highlight"
	"github.com/yaklabco/mdhl/pkg/langdetect"
	"github.com/yaklabco/mdhl/pkg/lexer/markdown"
)

// CodeBlock describes one multi-line code block of a Markdown document.
type CodeBlock struct {
	// Line is the 1-based first line of the block, fence included.
	Line int `json:"line" yaml:"line"`

	// Lines is the number of lines the block spans.
	Lines int `json:"lines" yaml:"lines"`

	// Fence is "~~~" or "```" for fenced blocks and empty for indented ones.
	Fence string `json:"fence,omitempty" yaml:"fence,omitempty"`

	// Info is the text after the opening fence.
	Info string `json:"info,omitempty" yaml:"info,omitempty"`

	// Language is the info string language or a guess from the body.
	Language string `json:"language" yaml:"language"`
}

// CodeBlocks lists the code blocks of a document coloured by the markdown
// scanner: CodeBlock spans and triple-backtick spans that cross a line end.
func CodeBlocks(doc *highlight.Document) []CodeBlock {
	content := doc.Content()
	buf := doc.Buffer()

	var blocks []CodeBlock
	for _, span := range doc.Spans() {
		if span.Style != markdown.CodeBlock && span.Style != markdown.Code2 {
			continue
		}

		text := span.Text(content)
		if bytes.IndexByte(text, '\n') < 0 {
			continue
		}
		if span.Style == markdown.Code2 && !bytes.HasPrefix(text, []byte("```")) {
			continue
		}

		first := buf.LineOf(span.Start)
		last := buf.LineOf(span.End - 1)
		block := CodeBlock{Line: first + 1, Lines: last - first + 1}

		var body []byte
		if fence := fenceOf(text); fence != "" {
			head, rest, _ := bytes.Cut(text, []byte("\n"))
			block.Fence = fence
			block.Info = string(bytes.TrimSpace(bytes.TrimLeft(head, fence[:1])))
			body = stripClosingFence(rest, fence)
		} else {
			body = text
		}

		block.Language = langdetect.FenceLanguage(block.Info, body)
		blocks = append(blocks, block)
	}
	return blocks
}

func fenceOf(text []byte) string {
	for _, fence := range []string{"~~~", "```"} {
		if bytes.HasPrefix(text, []byte(fence)) {
			return fence
		}
	}
	return ""
}

// stripClosingFence drops a trailing fence line from body.
func stripClosingFence(body []byte, fence string) []byte {
	trimmed := bytes.TrimRight(body, "\r\n")
	idx := bytes.LastIndexByte(trimmed, '\n')
	lastLine := trimmed[idx+1:]
	if bytes.HasPrefix(bytes.TrimSpace(lastLine), []byte(fence)) {
		if idx < 0 {
			return nil
		}
		return trimmed[:idx+1]
	}
	return body
}
