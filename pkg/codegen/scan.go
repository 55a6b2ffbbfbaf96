package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Package is the parsed, non-test source of one package directory.
type Package struct {
	Name  string
	Dir   string
	Fset  *token.FileSet
	Files []*ast.File
}

// LoadPackage parses every non-test .go file in dir except the names in
// skip, in file name order.
func LoadPackage(dir string, skip ...string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || skipped[name] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	pkg := &Package{Dir: dir, Fset: token.NewFileSet()}
	for _, name := range names {
		f, err := parser.ParseFile(pkg.Fset, filepath.Join(dir, name), nil, parser.ParseComments)
		if err != nil {
			return nil, err
		}
		if pkg.Name == "" {
			pkg.Name = f.Name.Name
		} else if f.Name.Name != pkg.Name {
			return nil, fmt.Errorf("%s: multiple packages: %s and %s", dir, pkg.Name, f.Name.Name)
		}
		pkg.Files = append(pkg.Files, f)
	}
	if len(pkg.Files) == 0 {
		return nil, fmt.Errorf("%s: no Go source files", dir)
	}
	return pkg, nil
}

// Taxonomy is a named type together with the constants declared of it.
type Taxonomy struct {
	Name  string
	Pos   token.Position
	Cases []ErrorCase
}

// Taxonomy finds the named type and collects its cases with their parsed
// annotations. The type must be a defined basic type (an integer or string
// kind) with at least one constant.
func (p *Package) Taxonomy(name string) (*Taxonomy, error) {
	spec := p.typeSpec(name)
	if spec == nil {
		return nil, diagnostic(ErrMissingEnumTarget, token.Position{}, name, "type %s not found in package %s", name, p.Name)
	}
	t := &Taxonomy{Name: name, Pos: p.Fset.Position(spec.Pos())}
	if _, basic := spec.Type.(*ast.Ident); !basic || spec.Assign.IsValid() || spec.TypeParams != nil {
		return nil, diagnostic(ErrMissingEnumTarget, t.Pos, name, "%s is not a defined basic type", name)
	}

	for _, f := range p.Files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.CONST {
				continue
			}
			cases, err := p.constCases(gd, name)
			if err != nil {
				return nil, err
			}
			t.Cases = append(t.Cases, cases...)
		}
	}
	if len(t.Cases) == 0 {
		return nil, diagnostic(ErrMissingEnumTarget, t.Pos, name, "no constants of type %s", name)
	}
	return t, nil
}

func (p *Package) typeSpec(name string) *ast.TypeSpec {
	for _, f := range p.Files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				if ts := spec.(*ast.TypeSpec); ts.Name.Name == name {
					return ts
				}
			}
		}
	}
	return nil
}

// constCases returns the constants of type name declared in gd. A
// constant has the type when its spec names it or when its value is a
// conversion to it, e.g. Error(7). Inside a parenthesized block a spec
// without type and values repeats the previous spec, so it inherits its
// types.
func (p *Package) constCases(gd *ast.GenDecl, name string) ([]ErrorCase, error) {
	var (
		out   []ErrorCase
		typed []bool // per position of the current spec's names
	)
	for _, spec := range gd.Specs {
		vs := spec.(*ast.ValueSpec)
		switch {
		case vs.Type != nil:
			id, ok := vs.Type.(*ast.Ident)
			typed = repeat(ok && id.Name == name, len(vs.Names))
		case len(vs.Values) > 0:
			typed = make([]bool, len(vs.Values))
			for i, v := range vs.Values {
				typed[i] = isConversion(v, name)
			}
		}
		if !someTrue(typed) {
			continue
		}

		doc := vs.Doc
		if doc == nil && !gd.Lparen.IsValid() {
			doc = gd.Doc
		}
		var (
			assignments []Assignment
			annotated   bool
		)
		if text, pos, ok := annotationText(p.Fset, doc); ok {
			parsed, err := ParseAnnotation(text, pos)
			if err != nil {
				return nil, withDecl(err, vs.Names[0].Name)
			}
			assignments, annotated = parsed, true
		}
		for i, n := range vs.Names {
			if n.Name == "_" || i >= len(typed) || !typed[i] {
				continue
			}
			out = append(out, ErrorCase{
				Name:        n.Name,
				Pos:         p.Fset.Position(n.Pos()),
				Annotated:   annotated,
				Assignments: assignments,
			})
		}
	}
	return out, nil
}

// isConversion reports whether v converts a single operand to the named
// type.
func isConversion(v ast.Expr, name string) bool {
	for {
		paren, ok := v.(*ast.ParenExpr)
		if !ok {
			break
		}
		v = paren.X
	}
	call, ok := v.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 || call.Ellipsis.IsValid() {
		return false
	}
	fun := call.Fun
	if paren, ok := fun.(*ast.ParenExpr); ok {
		fun = paren.X
	}
	id, ok := fun.(*ast.Ident)
	return ok && id.Name == name
}

func repeat(v bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func someTrue(flags []bool) bool {
	for _, f := range flags {
		if f {
			return true
		}
	}
	return false
}

// HandlerSpec is a function marked with //response:handler.
type HandlerSpec struct {
	Decl *ast.FuncDecl
	File *ast.File
	Fset *token.FileSet
}

// Name returns the handler's function name.
func (h HandlerSpec) Name() string { return h.Decl.Name.Name }

// Pos returns the location of the handler's name.
func (h HandlerSpec) Pos() token.Position { return h.Fset.Position(h.Decl.Name.Pos()) }

// Handlers returns the marked functions in file and declaration order.
func (p *Package) Handlers() []HandlerSpec {
	var out []HandlerSpec
	for _, f := range p.Files {
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Doc == nil {
				continue
			}
			for _, c := range fd.Doc.List {
				if isHandlerDirective(c.Text) {
					out = append(out, HandlerSpec{Decl: fd, File: f, Fset: p.Fset})
					break
				}
			}
		}
	}
	return out
}

// declared reports whether name is a package-level identifier.
func (p *Package) declared(name string) bool {
	for _, f := range p.Files {
		for _, decl := range f.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil && d.Name.Name == name {
					return true
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						if s.Name.Name == name {
							return true
						}
					case *ast.ValueSpec:
						for _, n := range s.Names {
							if n.Name == name {
								return true
							}
						}
					}
				}
			}
		}
	}
	return false
}

// resolveImport finds the import a source file of the package binds to
// name.
func (p *Package) resolveImport(name string) (Import, bool) {
	for _, f := range p.Files {
		if imps := resolveImports(f, map[string]bool{name: true}); len(imps) > 0 {
			return imps[0], true
		}
	}
	return Import{}, false
}

func withDecl(err error, decl string) error {
	if d, ok := err.(*Diagnostic); ok && d.Decl == "" {
		d.Decl = decl
	}
	return err
}
