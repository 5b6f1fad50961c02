// Package builtin registers the scanners shipped with mdhl in
// lexer.DefaultRegistry. Import it for its side effects.
package builtin

import (
	_ "github.com/yaklabco/mdhl/pkg/lexer/markdown"     // markdown, md
	_ "github.com/yaklabco/mdhl/pkg/lexer/searchresult" // searchresult
)
