// Package parser turns rule source text into a ruleset/ast.RuleSet,
// using a participle stateful lexer and grammar (grounded on the
// teacher's YARA parser, parser/parser.go, pruned to a literal-only
// strings section and a string-reference-only condition language).
package parser

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/huan086/acdat/ruleset/ast"
)

// Parser parses rule source text.
type Parser struct {
	parser *participle.Parser[file]
}

// New builds a Parser, compiling its lexer and grammar once.
func New() (*Parser, error) {
	lex := lexer.MustStateful(lexer.Rules{
		"Common": {
			{Name: "LineComment", Pattern: `//[^\n]*`},
			{Name: "BlockComment", Pattern: `/\*(?:[^*]|\*[^/])*\*/`},
			{Name: "Whitespace", Pattern: `[\s]+`},
		},
		"Root": {
			{Name: "Rule", Pattern: `\brule\b`, Action: lexer.Push("RuleBody")},
			lexer.Include("Common"),
		},
		"RuleBody": {
			{Name: "Strings", Pattern: `\bstrings\b`},
			{Name: "Condition", Pattern: `\bcondition\b`, Action: lexer.Push("ConditionExpr")},
			{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
			{Name: "LBrace", Pattern: `\{`},
			{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
			{Name: "Int", Pattern: `-?[0-9]+`},
			{Name: "StringIdent", Pattern: `\$[a-zA-Z0-9_]*`, Action: lexer.Push("StringValue")},
			{Name: "Colon", Pattern: `:`},
			{Name: "Equals", Pattern: `=`},
			{Name: "RBrace", Pattern: `\}`, Action: lexer.Pop()},
			lexer.Include("Common"),
		},
		"StringValue": {
			{Name: "Equals", Pattern: `=`},
			lexer.Include("Common"),
			{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
			{Name: "ValueKw", Pattern: `\bvalue\b`},
			{Name: "Int", Pattern: `-?[0-9]+`},
			lexer.Return(),
		},
		"ConditionExpr": {
			{Name: "Colon", Pattern: `:`},
			{Name: "CondLineComment", Pattern: `//[^\n]*`},
			{Name: "CondBlockComment", Pattern: `/\*(?:[^*]|\*[^/])*\*/`},
			{Name: "CondWhitespace", Pattern: `[\s]+`},
			{Name: "StringPattern", Pattern: `\$[a-zA-Z0-9_]*\*`},
			{Name: "CondStringID", Pattern: `\$[a-zA-Z0-9_]*`},
			{Name: "CondKeyword", Pattern: `\b(and|or|not|any|all|of|them)\b`},
			{Name: "LParen", Pattern: `\(`},
			{Name: "RParen", Pattern: `\)`},
			{Name: "RBrace", Pattern: `\}`, Action: lexer.Pop()},
		},
	})

	p, err := participle.Build[file](
		participle.Lexer(lex),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "CondLineComment", "CondBlockComment", "CondWhitespace"),
		participle.UseLookahead(5),
	)
	if err != nil {
		return nil, fmt.Errorf("building parser: %w", err)
	}

	return &Parser{parser: p}, nil
}

// Parse parses rule source text from a string.
func (p *Parser) Parse(input string) (*ast.RuleSet, error) {
	f, err := p.parser.ParseString("", input)
	if err != nil {
		return nil, err
	}
	return convertToAST(f)
}

// ParseFile parses rule source text from a file.
func (p *Parser) ParseFile(filename string) (*ast.RuleSet, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	f, err := p.parser.ParseBytes(filename, content)
	if err != nil {
		return nil, err
	}
	return convertToAST(f)
}

func convertToAST(f *file) (*ast.RuleSet, error) {
	rs := &ast.RuleSet{Rules: make([]*ast.Rule, 0, len(f.Rules))}
	for _, r := range f.Rules {
		rule, err := convertRule(r)
		if err != nil {
			return nil, err
		}
		rs.Rules = append(rs.Rules, rule)
	}
	return rs, nil
}

func convertRule(r *ruleGrammar) (*ast.Rule, error) {
	rule := &ast.Rule{Name: r.Name}

	if r.Strings != nil {
		for i, s := range r.Strings.Defs {
			def := &ast.StringDef{
				Name:  s.Name,
				Text:  unquoteString(s.Text),
				Value: int64(i),
			}
			if s.Value != nil {
				def.Value = *s.Value
			}
			rule.Strings = append(rule.Strings, def)
		}
	}

	if r.Condition != nil && r.Condition.Expr != nil {
		cond, err := convertOrExpr(r.Condition.Expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		rule.Condition = cond
	}

	return rule, nil
}

func convertOrExpr(e *condOrExpr) (ast.Expr, error) {
	left, err := convertAndExpr(e.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range e.Right {
		r, err := convertAndExpr(right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: "or", Left: left, Right: r}
	}
	return left, nil
}

func convertAndExpr(e *condAndExpr) (ast.Expr, error) {
	left, err := convertNotExpr(e.Left)
	if err != nil {
		return nil, err
	}
	for _, right := range e.Right {
		r, err := convertNotExpr(right)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: "and", Left: left, Right: r}
	}
	return left, nil
}

func convertNotExpr(e *condNotExpr) (ast.Expr, error) {
	inner, err := convertPrimary(e.Operand)
	if err != nil {
		return nil, err
	}
	if e.Not {
		return ast.NotExpr{Inner: inner}, nil
	}
	return inner, nil
}

func convertPrimary(p *condPrimary) (ast.Expr, error) {
	switch {
	case p.Paren != nil:
		inner, err := convertOrExpr(p.Paren)
		if err != nil {
			return nil, err
		}
		return ast.ParenExpr{Inner: inner}, nil

	case p.AnyOf != nil:
		pattern := "them"
		if p.AnyOf.Pattern != nil {
			pattern = *p.AnyOf.Pattern
		}
		return ast.AnyOf{Pattern: pattern}, nil

	case p.AllOf != nil:
		pattern := "them"
		if p.AllOf.Pattern != nil {
			pattern = *p.AllOf.Pattern
		}
		return ast.AllOf{Pattern: pattern}, nil

	case p.StringID != nil:
		return ast.StringRef{Name: *p.StringID}, nil
	}

	return nil, fmt.Errorf("unknown primary type")
}

func unquoteString(s string) string {
	if len(s) < 2 {
		return s
	}
	s = s[1 : len(s)-1]

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
