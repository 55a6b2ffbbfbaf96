package codegen

import (
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
	"strings"
)

const (
	// directivePrefix marks an annotation on an error case or a handler.
	directivePrefix = "//response:"
	// handlerDirective marks a function for the envelope transform.
	handlerDirective = directivePrefix + "handler"
)

// Recognized annotation keys.
const (
	KeyCode   = "code"
	KeyHidden = "hidden"
)

// Assignment is one key = expression pair of an annotation.
type Assignment struct {
	Key   string
	Value ast.Expr
	Pos   token.Position
}

// String returns the assignment in its canonical textual form.
func (a Assignment) String() string {
	return a.Key + " = " + types.ExprString(a.Value)
}

// DefaultAssignments is substituted for a case without an annotation.
func DefaultAssignments() []Assignment {
	return []Assignment{
		{Key: KeyCode, Value: ast.NewIdent("INTERNAL_SERVER_ERROR")},
		{Key: KeyHidden, Value: ast.NewIdent("true")},
	}
}

// ParseAnnotation parses the text of one annotation, the part after the
// "//response:" prefix, with the grammar
//
//	assignment { "," assignment } [ "," ]
//	assignment = identifier "=" expression
//
// pos is the location of the first byte of text and is used to point
// diagnostics at the offending token. Keys other than code and hidden are
// kept as they are.
func ParseAnnotation(text string, pos token.Position) ([]Assignment, error) {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(text))

	var s scanner.Scanner
	s.Init(file, []byte(text), nil, 0)

	at := func(p token.Pos) token.Position {
		out := pos
		out.Offset += file.Offset(p)
		out.Column += file.Offset(p)
		return out
	}
	next := func() (token.Pos, token.Token, string) {
		p, tok, lit := s.Scan()
		// the scanner inserts a semicolon at the end of the input
		if tok == token.SEMICOLON && lit == "\n" {
			return p, token.EOF, ""
		}
		return p, tok, lit
	}
	malformed := func(p token.Pos, format string, args ...any) error {
		return diagnostic(ErrMalformedAnnotation, at(p), "", format, args...)
	}

	var out []Assignment
	for {
		p, tok, lit := next()
		if tok == token.EOF {
			return out, nil
		}
		if tok != token.IDENT {
			return nil, malformed(p, "expected key, found %s", describe(tok, lit))
		}
		key, keyPos := lit, p

		p, tok, lit = next()
		if tok != token.ASSIGN {
			return nil, malformed(p, "expected '=' after %q, found %s", key, describe(tok, lit))
		}

		start, end := -1, -1
		var open []token.Token
		var last token.Pos
		for {
			p, tok, lit = next()
			last = p
			if tok == token.EOF {
				if len(open) > 0 {
					return nil, malformed(p, "unbalanced expression for %q: missing closing for %s", key, open[len(open)-1])
				}
				break
			}
			if tok == token.COMMA && len(open) == 0 {
				break
			}
			switch tok {
			case token.LPAREN, token.LBRACK, token.LBRACE:
				open = append(open, tok)
			case token.RPAREN, token.RBRACK, token.RBRACE:
				if len(open) == 0 || closing(open[len(open)-1]) != tok {
					return nil, malformed(p, "unexpected %s", tok)
				}
				open = open[:len(open)-1]
			case token.ILLEGAL, token.SEMICOLON, token.ASSIGN, token.DEFINE:
				return nil, malformed(p, "unexpected %s", describe(tok, lit))
			}
			if start < 0 {
				start = file.Offset(p)
			}
			end = file.Offset(p) + tokenLen(tok, lit)
		}
		if start < 0 {
			return nil, malformed(last, "missing value for %q", key)
		}

		src := text[start:end]
		expr, err := parser.ParseExpr(src)
		if err != nil {
			return nil, diagnostic(ErrMalformedAnnotation, at(token.Pos(file.Base()+start)), "",
				"invalid expression %q for %q", strings.TrimSpace(src), key)
		}
		out = append(out, Assignment{Key: key, Value: expr, Pos: at(keyPos)})

		if tok == token.EOF {
			return out, nil
		}
	}
}

func closing(tok token.Token) token.Token {
	switch tok {
	case token.LPAREN:
		return token.RPAREN
	case token.LBRACK:
		return token.RBRACK
	default:
		return token.RBRACE
	}
}

func tokenLen(tok token.Token, lit string) int {
	if lit != "" {
		return len(lit)
	}
	return len(tok.String())
}

func describe(tok token.Token, lit string) string {
	switch {
	case tok == token.EOF:
		return "end of annotation"
	case lit != "":
		return "'" + lit + "'"
	default:
		return "'" + tok.String() + "'"
	}
}

// annotationText returns the text after the directive prefix of the first
// annotation line in doc, excluding the handler marker.
func annotationText(fset *token.FileSet, doc *ast.CommentGroup) (string, token.Position, bool) {
	if doc == nil {
		return "", token.Position{}, false
	}
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) || isHandlerDirective(c.Text) {
			continue
		}
		pos := fset.Position(c.Slash)
		pos.Offset += len(directivePrefix)
		pos.Column += len(directivePrefix)
		return c.Text[len(directivePrefix):], pos, true
	}
	return "", token.Position{}, false
}

func isHandlerDirective(text string) bool {
	return strings.TrimRight(text, " \t") == handlerDirective
}
