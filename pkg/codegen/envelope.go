package codegen

import (
	"bytes"
	"go/ast"
	"go/format"
	"path"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// responsePackageName is the name generated code uses for the runtime
// response package.
const responsePackageName = "response"

// Import is one import the generated file needs.
type Import struct {
	Name string // explicit name, empty when the path implies it
	Path string
}

// Handler is the envelope wrapper synthesized for one HandlerSpec.
type Handler struct {
	Name    string
	Orig    string
	Source  string
	Imports []Import
}

// TransformHandler synthesizes the wrapper of a handler. The original
// function is left untouched; the wrapper takes the same parameters, calls
// it and returns response.Wrap of its outcome. Its name is Serve<Name>, or
// serve<Name> for an unexported handler.
func TransformHandler(h HandlerSpec) (Handler, error) {
	fd := h.Decl
	name := h.Name()

	if fd.Recv != nil {
		return Handler{}, diagnostic(ErrUnsupportedParameterPattern, h.Pos(), name, "methods are not supported, the receiver is not a plain parameter")
	}
	if fd.Type.TypeParams != nil && len(fd.Type.TypeParams.List) > 0 {
		return Handler{}, diagnostic(ErrUnsupportedSignature, h.Pos(), name, "generic handlers are not supported")
	}
	if !returnsResultAndError(fd.Type) {
		return Handler{}, diagnostic(ErrUnsupportedSignature, h.Pos(), name, "handler must return (T, error)")
	}

	var (
		params []string
		args   []string
		used   = map[string]bool{}
	)
	rename := wrapperParams(fd.Type.Params, name)
	for _, field := range fd.Type.Params.List {
		typ, err := h.source(field.Type)
		if err != nil {
			return Handler{}, err
		}
		if len(field.Names) == 0 {
			return Handler{}, diagnostic(ErrUnsupportedParameterPattern, h.Fset.Position(field.Pos()), name, "unnamed parameter of type %s", typ)
		}
		names := make([]string, 0, len(field.Names))
		for _, n := range field.Names {
			if n.Name == "_" {
				return Handler{}, diagnostic(ErrUnsupportedParameterPattern, h.Fset.Position(n.Pos()), name, "blank parameter of type %s", typ)
			}
			param := rename[n.Name]
			names = append(names, param)
			if _, variadic := field.Type.(*ast.Ellipsis); variadic {
				args = append(args, param+"...")
			} else {
				args = append(args, param)
			}
		}
		params = append(params, strings.Join(names, ", ")+" "+typ)
		collectPackages(field.Type, used)
	}

	wrapper := wrapperName(name)
	var w writer
	w.line("// %s answers %s with the JSON response envelope.", wrapper, name)
	w.line("func %s(%s) response.Envelope {", wrapper, strings.Join(params, ", "))
	w.line("return response.Wrap(%s(%s))", name, strings.Join(args, ", "))
	w.line("}")

	return Handler{
		Name:    wrapper,
		Orig:    name,
		Source:  w.String(),
		Imports: resolveImports(h.File, used),
	}, nil
}

func (h HandlerSpec) source(node ast.Node) (string, error) {
	var buf bytes.Buffer
	if err := format.Node(&buf, h.Fset, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func returnsResultAndError(ft *ast.FuncType) bool {
	if ft.Results == nil {
		return false
	}
	var types []ast.Expr
	for _, f := range ft.Results.List {
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			types = append(types, f.Type)
		}
	}
	if len(types) != 2 {
		return false
	}
	id, ok := types[1].(*ast.Ident)
	return ok && id.Name == "error"
}

// wrapperParams maps each parameter name to the name the wrapper declares
// it under. A parameter must not hide the runtime package or the handler
// inside the wrapper body, so such names get an underscore suffix that no
// other parameter uses.
func wrapperParams(params *ast.FieldList, handler string) map[string]string {
	var order []string
	taken := map[string]bool{}
	for _, field := range params.List {
		for _, n := range field.Names {
			order = append(order, n.Name)
			taken[n.Name] = true
		}
	}
	out := make(map[string]string, len(order))
	for _, param := range order {
		out[param] = param
		if param != responsePackageName && param != handler {
			continue
		}
		renamed := param + "_"
		for taken[renamed] || renamed == handler {
			renamed += "_"
		}
		taken[renamed] = true
		out[param] = renamed
	}
	return out
}

func wrapperName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(r) {
		return "Serve" + name
	}
	return "serve" + string(unicode.ToUpper(r)) + name[size:]
}

// collectPackages records the package names referenced by a type.
func collectPackages(expr ast.Expr, used map[string]bool) {
	ast.Inspect(expr, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if id, ok := sel.X.(*ast.Ident); ok {
				used[id.Name] = true
			}
			return false
		}
		return true
	})
}

// resolveImports maps package names back to the imports of file.
func resolveImports(file *ast.File, used map[string]bool) []Import {
	var out []Import
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := Import{Path: p}
		local := assumedName(p)
		if spec.Name != nil {
			if spec.Name.Name == "_" || spec.Name.Name == "." {
				continue
			}
			local = spec.Name.Name
			if local != assumedName(p) {
				imp.Name = local
			}
		}
		if used[local] {
			out = append(out, imp)
		}
	}
	return out
}

// assumedName guesses the package name of an import path the way
// goimports does: the last element, skipping a major version suffix,
// without a "go-" prefix and cut at the first non-identifier rune.
func assumedName(importPath string) string {
	base := path.Base(importPath)
	if strings.HasPrefix(base, "v") {
		if _, err := strconv.Atoi(base[1:]); err == nil {
			if dir := path.Dir(importPath); dir != "." {
				base = path.Base(dir)
			}
		}
	}
	base = strings.TrimPrefix(base, "go-")
	if i := strings.IndexFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}); i >= 0 {
		base = base[:i]
	}
	return base
}
