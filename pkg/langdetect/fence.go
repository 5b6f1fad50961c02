package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is reported when no language can be determined.
const Text = "text"

// fenceCandidates restricts the classifier to languages commonly found in
// documentation code blocks.
//
//nolint:gochecknoglobals // Read-only candidate list
var fenceCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// marker is a cheap content signature checked before the classifier.
type marker struct {
	lang  string
	match func(body, trimmed []byte) bool
}

//nolint:gochecknoglobals // Read-only signature table
var markers = []marker{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("\nRUN "))
	}},
	{"python", func(body, _ []byte) bool {
		return bytes.Contains(body, []byte("def ")) && bytes.Contains(body, []byte("):"))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE"} {
			if bytes.HasPrefix(upper, []byte(kw)) {
				return true
			}
		}
		return false
	}},
}

// FenceLanguage names the language of a fenced code block. The first word of
// the info string is used when present; otherwise the body is inspected.
func FenceLanguage(info string, body []byte) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		return strings.ToLower(strings.Trim(fields[0], "{.}"))
	}
	return Detect(body)
}

// Detect guesses the language of a code snippet, returning Text when unsure.
func Detect(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(body); safe {
		return normalize(lang)
	}

	for _, m := range markers {
		if m.match(body, trimmed) {
			return m.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(body, fenceCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
