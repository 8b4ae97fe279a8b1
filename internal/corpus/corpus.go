// Package corpus loads source files and merges per-file extraction results
// into the corpus-wide symbol table.
package corpus

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/jlmoran/juliamap/internal/discover"
	"github.com/jlmoran/juliamap/internal/extract"
	"github.com/jlmoran/juliamap/internal/model"
)

// Warning describes a file that was skipped during loading.
type Warning struct {
	Path   string
	Reason string
}

// Load reads every file under root carrying ext, fully and sequentially, in
// enumeration order. Unreadable, non-UTF-8, or oversized (when maxSize > 0)
// files are skipped and reported as warnings rather than aborting the pass.
func Load(root, ext string, maxSize int64) ([]*model.SourceFile, []Warning, error) {
	paths, err := discover.Files(root, ext)
	if err != nil {
		return nil, nil, err
	}

	var files []*model.SourceFile
	var warnings []Warning
	for _, rel := range paths {
		data, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			warnings = append(warnings, Warning{Path: rel, Reason: err.Error()})
			continue
		}
		if maxSize > 0 && int64(len(data)) > maxSize {
			warnings = append(warnings, Warning{Path: rel, Reason: "exceeds size limit"})
			continue
		}
		if !utf8.Valid(data) {
			warnings = append(warnings, Warning{Path: rel, Reason: "not valid UTF-8"})
			continue
		}
		text := string(data)
		files = append(files, &model.SourceFile{
			Path:    rel,
			Name:    filepath.Base(rel),
			Text:    text,
			Imports: extract.Imports(text),
		})
	}
	return files, warnings, nil
}

// Build folds per-file extraction results into one Index. When the same
// routine name is defined in more than one place, the later definition in
// enumeration order wins outright, origin attribution included. Bodies are
// scanned in a second pass against the full corpus so cross-file calls
// resolve.
func Build(files []*model.SourceFile, sc *extract.Scanner) model.Index {
	idx := make(model.Index)
	byPath := make(map[string]*model.SourceFile, len(files))

	for _, f := range files {
		byPath[f.Path] = f
		for _, r := range extract.Routines(f.Text) {
			r.Origin = f.Path
			r.Imports = f.Imports
			idx[r.Name] = r
		}
	}

	known := make(map[string]struct{}, len(idx))
	for name := range idx {
		known[name] = struct{}{}
	}

	for _, name := range idx.Names() {
		r := idx[name]
		sc.ScanBody(byPath[r.Origin].Text, r, known)
	}

	return idx
}
