// juliamap draws a call diagram for a directory of Julia source files.
//
// Extraction is heuristic and pattern-based: good enough for a picture of
// which routine calls which, not a semantic analysis.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jlmoran/juliamap/internal/callgraph"
	"github.com/jlmoran/juliamap/internal/corpus"
	"github.com/jlmoran/juliamap/internal/extract"
	"github.com/jlmoran/juliamap/internal/render"
)

var version = "dev"

const defaultMaxFileSize = 1_000_000 // 1 MB

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("juliamap", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		out          string
		format       string
		ext          string
		globalNS     string
		paramOutputs bool
		maxFileSize  int
		showVersion  bool
	)

	fs.StringVar(&out, "o", "callgraph", "output file base name (format extension is appended)")
	fs.StringVar(&out, "out", "callgraph", "output file base name (format extension is appended)")
	fs.StringVar(&format, "T", "pdf", "output format; \"dot\" writes Graphviz source without invoking dot")
	fs.StringVar(&format, "format", "pdf", "output format; \"dot\" writes Graphviz source without invoking dot")
	fs.StringVar(&ext, "ext", ".jl", "source file extension to scan")
	fs.StringVar(&globalNS, "global-ns", "gdata", "name of the shared global-data structure to track writes to")
	fs.BoolVar(&paramOutputs, "param-outputs", true, "treat assignments to declared parameters as outputs")
	fs.IntVar(&maxFileSize, "max-file-size", defaultMaxFileSize, "skip files larger than this many bytes")
	fs.BoolVar(&showVersion, "V", false, "show version and exit")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}

	if showVersion {
		_, _ = fmt.Fprintf(stdout, "juliamap %s\n", version)
		return nil
	}

	root := "."
	if fs.NArg() > 0 {
		root = fs.Arg(0)
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", root)
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	// Read the corpus
	files, warnings, err := corpus.Load(root, ext, int64(maxFileSize))
	if err != nil {
		return fmt.Errorf("reading corpus: %w", err)
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintf(stderr, "Warning: %s: skipped (%s)\n", w.Path, w.Reason)
	}

	// Build the symbol table and project the call graph
	sc := extract.NewScanner(globalNS, paramOutputs)
	idx := corpus.Build(files, sc)
	g := callgraph.Project(idx)

	// Hand nodes, edges, and labels to the renderer
	var r render.Renderer = render.NewGraphviz()
	for _, name := range g.Nodes {
		r.AddNode(name, callgraph.Label(idx[name]))
	}
	for _, e := range g.Edges {
		r.AddEdge(e.Caller, e.Callee)
	}

	outPath := out + "." + format
	if err := r.Render(outPath, format); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	_, _ = fmt.Fprintf(stdout, "call diagram written to %s (%d routines, %d calls)\n",
		outPath, len(g.Nodes), len(g.Edges))
	return nil
}

// flagsWithValue lists flags that take a value argument.
var flagsWithValue = map[string]bool{
	"-o": true, "--o": true,
	"-out": true, "--out": true,
	"-T": true, "--T": true,
	"-format": true, "--format": true,
	"-ext": true, "--ext": true,
	"-global-ns": true, "--global-ns": true,
	"-max-file-size": true, "--max-file-size": true,
}

// reorderArgs moves positional arguments after all flags so Go's flag package
// can parse them correctly (it stops at the first non-flag arg).
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 0 && args[i][0] == '-' {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
