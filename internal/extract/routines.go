package extract

import (
	"regexp"
	"strings"

	"github.com/jlmoran/juliamap/internal/model"
)

var defRe = regexp.MustCompile(`function\s+(\w+)\s*\(([^)]*)\)`)

// Routines returns a partial record for every definition-shaped substring in
// text, in match order. Matching ignores nesting: a definition keyword inside
// another routine's body still produces a record. Only the name and parameter
// list are filled in here; the body scan completes the record.
func Routines(text string) []*model.Routine {
	var routines []*model.Routine
	for _, m := range defRe.FindAllStringSubmatch(text, -1) {
		routines = append(routines, &model.Routine{
			Name:   m[1],
			Inputs: splitParams(m[2]),
		})
	}
	return routines
}

// splitParams splits a raw parameter list on commas, trimming whitespace and
// dropping empty entries. Types stay attached to the name as written.
func splitParams(list string) []string {
	var params []string
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			params = append(params, p)
		}
	}
	return params
}
