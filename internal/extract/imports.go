// Package extract implements heuristic, pattern-based extraction of imports,
// routine definitions, and call relationships from Julia source text.
//
// This is deliberately not a parser: no tokenizer, no AST, no scoping. The
// patterns are best-effort and tuned for call-diagram generation, where
// occasional noise is acceptable and no input is ever a hard error.
package extract

import (
	"regexp"
	"strings"
)

var importRe = regexp.MustCompile(`^\s*(?:using|import)\s+(.+)$`)

// Imports returns the ordered module names referenced by using/import
// statements in text. There is no deduplication: a module named twice appears
// twice. Text with no such statements yields an empty result.
func Imports(text string) []string {
	var mods []string
	for _, line := range strings.Split(text, "\n") {
		m := importRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		rest := m[1]
		if i := strings.Index(rest, "#"); i >= 0 {
			rest = rest[:i]
		}
		// `using Foo: bar, baz` pulls symbols from a single module; the
		// comma-separated part after the colon is not module names.
		if i := strings.Index(rest, ":"); i >= 0 {
			rest = rest[:i]
		}
		for _, part := range strings.Split(rest, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), ".")
			if part != "" {
				mods = append(mods, part)
			}
		}
	}
	return mods
}
