package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huan086/acdat/ruleset/ast"
)

func TestParse_StringValueAnnotation(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	rs, err := p.Parse(`
rule r {
    strings:
        $a = "one"
        $b = "two" value=7
    condition:
        $a or $b
}
`)
	require.NoError(t, err)
	require.Len(t, rs.Rules, 1)

	rule := rs.Rules[0]
	require.Equal(t, "r", rule.Name)
	require.Len(t, rule.Strings, 2)
	require.Equal(t, "one", rule.Strings[0].Text)
	require.Equal(t, int64(0), rule.Strings[0].Value)
	require.Equal(t, "two", rule.Strings[1].Text)
	require.Equal(t, int64(7), rule.Strings[1].Value)

	_, ok := rule.Condition.(ast.BinaryExpr)
	require.True(t, ok)
}

func TestParse_NotAndParens(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	rs, err := p.Parse(`
rule r {
    strings:
        $a = "foo"
        $b = "bar"
    condition:
        $a and ($b or not $a)
}
`)
	require.NoError(t, err)
	require.Len(t, rs.Rules, 1)
	require.NotNil(t, rs.Rules[0].Condition)
}

func TestParse_EscapedQuotes(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	rs, err := p.Parse(`
rule r {
    strings:
        $a = "say \"hi\""
    condition:
        $a
}
`)
	require.NoError(t, err)
	require.Equal(t, `say "hi"`, rs.Rules[0].Strings[0].Text)
}
