package codegen

import (
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// DefaultOutput is the file written next to the scanned sources.
	DefaultOutput = "response_gen.go"
	// DefaultResponsePackage provides Rule, Envelope and Wrap at runtime.
	DefaultResponsePackage = "github.com/nimeshabuddhika/donation-service/pkg/response"
)

// ErrNothingToGenerate is returned when no taxonomy was requested and no
// function carries the handler directive.
var ErrNothingToGenerate = errors.New("nothing to generate")

// Options configures one generation pass over a package directory.
type Options struct {
	// Types lists the error taxonomies to implement response.Responder for.
	Types []string
	// Output is the generated file name, relative to the package directory.
	Output string
	// ResponsePackage is the import path of the runtime response package.
	ResponsePackage string
	// Args are recorded in the generated file header.
	Args []string
}

func (o Options) withDefaults() Options {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.ResponsePackage == "" {
		o.ResponsePackage = DefaultResponsePackage
	}
	return o
}

// Generate runs the pass over dir and returns the formatted source of the
// generated file. The previous output file is not read. Output only
// depends on the sources, so running it twice yields identical bytes.
func Generate(dir string, opts Options) ([]byte, error) {
	opts = opts.withDefaults()
	pkg, err := LoadPackage(dir, opts.Output)
	if err != nil {
		return nil, err
	}

	var body writer
	imports := map[string]Import{}
	for _, name := range opts.Types {
		t, err := pkg.Taxonomy(name)
		if err != nil {
			return nil, err
		}
		table, err := BuildRules(t.Cases)
		if err != nil {
			return nil, err
		}
		body.line("")
		body.WriteString(GenerateResponder(t, table))
		for _, name := range table.Packages() {
			imp, ok := pkg.resolveImport(name)
			if !ok && name == httpPackage {
				imp, ok = Import{Path: "net/http"}, true
			}
			if ok {
				imports[imp.Path] = imp
			}
		}
	}

	handlers := pkg.Handlers()
	for _, h := range handlers {
		out, err := TransformHandler(h)
		if err != nil {
			return nil, err
		}
		if pkg.declared(out.Name) {
			return nil, diagnostic(ErrUnsupportedSignature, h.Pos(), h.Name(), "wrapper %s collides with an existing declaration", out.Name)
		}
		body.line("")
		body.WriteString(out.Source)
		for _, imp := range out.Imports {
			if _, ok := imports[imp.Path]; !ok {
				imports[imp.Path] = imp
			}
		}
	}

	if len(opts.Types) == 0 && len(handlers) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNothingToGenerate)
	}
	runtime := Import{Path: opts.ResponsePackage}
	if assumedName(opts.ResponsePackage) != responsePackageName {
		runtime.Name = responsePackageName
	}
	imports[opts.ResponsePackage] = runtime

	var w writer
	w.line("// Code generated by %s; DO NOT EDIT.", command(opts.Args))
	w.line("")
	w.line("package %s", pkg.Name)
	w.line("")
	writeImports(&w, imports)
	w.Write(body.Bytes())

	src, err := format.Source(w.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// WriteFile runs Generate and writes the result into dir. Nothing is
// written when the pass fails.
func WriteFile(dir string, opts Options) (string, error) {
	opts = opts.withDefaults()
	src, err := Generate(dir, opts)
	if err != nil {
		return "", err
	}
	out := filepath.Join(dir, opts.Output)
	if err := os.WriteFile(out, src, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

func command(args []string) string {
	if len(args) == 0 {
		return "responsegen"
	}
	return fmt.Sprintf("%q", "responsegen "+strings.Join(args, " "))
}

// writeImports emits standard library imports first, then the rest, each
// group sorted by path.
func writeImports(w *writer, imports map[string]Import) {
	var std, other []Import
	for _, imp := range imports {
		if strings.Contains(strings.SplitN(imp.Path, "/", 2)[0], ".") {
			other = append(other, imp)
		} else {
			std = append(std, imp)
		}
	}
	byPath := func(s []Import) {
		sort.Slice(s, func(i, j int) bool { return s[i].Path < s[j].Path })
	}
	byPath(std)
	byPath(other)

	w.line("import (")
	for _, imp := range std {
		w.line("%s", importLine(imp))
	}
	if len(std) > 0 && len(other) > 0 {
		w.line("")
	}
	for _, imp := range other {
		w.line("%s", importLine(imp))
	}
	w.line(")")
}

func importLine(imp Import) string {
	if imp.Name != "" {
		return fmt.Sprintf("%s %q", imp.Name, imp.Path)
	}
	return fmt.Sprintf("%q", imp.Path)
}
