// Package model defines core data structures for juliamap.
package model

import "sort"

// SourceFile holds one input file's identity, full text, and the ordered
// module names it imports. Immutable once built; owned by the corpus.
type SourceFile struct {
	Path    string // relative to the corpus root
	Name    string // base name
	Text    string
	Imports []string
}

// Routine is the extracted record for a single function definition.
//
// Inputs, Outputs, and Variables come from pattern heuristics, not parsing:
// Variables in particular is intentionally broad and also picks up parameter
// occurrences and call targets. That noise is part of the tool's contract.
type Routine struct {
	Name      string
	Origin    string   // path of the file the winning definition came from
	Imports   []string // imports of the origin file, for display
	Inputs    []string // parameter names as written, types unparsed
	Outputs   []string // raw output expressions
	Variables []string
	Globals   []string // global-namespace fields written; set semantics, first-write order
	Calls     []string // known routines invoked, self excluded, duplicates preserved
}

// Index maps routine name to its record across the whole corpus. It is built
// once by the corpus pass and read-only afterwards.
type Index map[string]*Routine

// Names returns the routine names in sorted order so iteration is
// deterministic.
func (idx Index) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
