package extract

import (
	"regexp"
	"strings"

	"github.com/jlmoran/juliamap/internal/model"
)

var (
	endRe    = regexp.MustCompile(`\bend\b`)
	returnRe = regexp.MustCompile(`^return\b\s*(.*)$`)
	assignRe = regexp.MustCompile(`^(\w+)\s*=\s*([\w.]+)`)
	varRe    = regexp.MustCompile(`([A-Za-z_]\w*)(?:\s*::\s*\w*)?`)
	callRe   = regexp.MustCompile(`([A-Za-z_]\w*)\s*\(`)
)

// Control-flow and declaration keywords are excluded from the broad variable
// pattern; without this every scanned line reports them. Everything else the
// pattern over-matches (parameters, call targets, namespace fields) is kept
// as documented noise.
var keywords = map[string]struct{}{
	"function": {}, "return": {}, "end": {}, "if": {}, "elseif": {},
	"else": {}, "for": {}, "while": {}, "begin": {}, "do": {},
	"using": {}, "import": {}, "global": {}, "local": {}, "const": {},
	"struct": {}, "mutable": {}, "true": {}, "false": {},
}

// Scanner scans delimited routine bodies for output expressions, global-data
// writes, local variables, and calls to other known routines.
type Scanner struct {
	globalNS     string
	paramOutputs bool
	globalRe     *regexp.Regexp
}

// NewScanner returns a Scanner tracking writes through the named global-data
// structure. When paramOutputs is true, an assignment to a declared parameter
// counts its right-hand side as an output; this is a heuristic, not data-flow
// analysis, and misfires when a parameter is reassigned without intent to
// return it.
func NewScanner(globalNS string, paramOutputs bool) *Scanner {
	return &Scanner{
		globalNS:     globalNS,
		paramOutputs: paramOutputs,
		globalRe:     regexp.MustCompile(`^` + regexp.QuoteMeta(globalNS) + `\.(\w+)\s*=`),
	}
}

// Body returns the textual slice for the named routine: from the first
// `function <name>` occurrence to the next `end` token. The definition line
// itself is part of the slice. Returns false when no definition is found; a
// missing terminator yields everything to the end of text.
func Body(text, name string) (string, bool) {
	nameRe := regexp.MustCompile(`function\s+` + regexp.QuoteMeta(name) + `\b`)
	loc := nameRe.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[0]:]
	if end := endRe.FindStringIndex(rest); end != nil {
		return rest[:end[0]], true
	}
	return rest, true
}

// ScanBody delimits r's body within text and fills in its Outputs, Globals,
// Variables, and Calls. known is the corpus-wide set of routine names; call
// candidates naming anything else are dropped, as are self-calls. No line is
// ever an error — unmatched lines contribute nothing.
func (s *Scanner) ScanBody(text string, r *model.Routine, known map[string]struct{}) {
	body, ok := Body(text, r.Name)
	if !ok {
		return
	}

	inputs := make(map[string]struct{}, len(r.Inputs))
	for _, in := range r.Inputs {
		inputs[in] = struct{}{}
	}
	globalsSeen := make(map[string]struct{}, len(r.Globals))
	for _, g := range r.Globals {
		globalsSeen[g] = struct{}{}
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)

		if m := returnRe.FindStringSubmatch(line); m != nil {
			if expr := strings.TrimSpace(m[1]); expr != "" {
				r.Outputs = append(r.Outputs, expr)
			}
		}

		if s.paramOutputs {
			if m := assignRe.FindStringSubmatch(line); m != nil {
				if _, declared := inputs[m[1]]; declared {
					r.Outputs = append(r.Outputs, m[2])
				}
			}
		}

		if m := s.globalRe.FindStringSubmatch(line); m != nil {
			if _, dup := globalsSeen[m[1]]; !dup {
				globalsSeen[m[1]] = struct{}{}
				r.Globals = append(r.Globals, m[1])
			}
		}

		for _, m := range varRe.FindAllStringSubmatch(line, -1) {
			tok := m[1]
			if _, kw := keywords[tok]; kw {
				continue
			}
			r.Variables = append(r.Variables, tok)
		}

		for _, m := range callRe.FindAllStringSubmatch(line, -1) {
			callee := m[1]
			if callee == r.Name {
				continue
			}
			if _, ok := known[callee]; !ok {
				continue
			}
			r.Calls = append(r.Calls, callee)
		}
	}
}
