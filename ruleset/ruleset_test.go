package ruleset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/huan086/acdat/ruleset/parser"
)

func compileSource(t *testing.T, src string) *Rules {
	t.Helper()
	p, err := parser.New()
	require.NoError(t, err)

	rs, err := p.Parse(src)
	require.NoError(t, err)

	rules, err := Compile(rs)
	require.NoError(t, err)
	return rules
}

func TestScan_AndCondition(t *testing.T) {
	rules := compileSource(t, `
rule suspicious {
    strings:
        $a = "AutoOpen"
        $b = "CreateObject" value=7
    condition:
        $a and $b
}
`)

	matches := rules.Scan(context.Background(), "Sub AutoOpen() CreateObject(\"wscript.shell\")")
	require.Len(t, matches, 1)
	require.Equal(t, "suspicious", matches[0].Rule)

	var b StringMatch
	for _, s := range matches[0].Strings {
		if s.Name == "$b" {
			b = s
		}
	}
	require.Equal(t, "$b", b.Name)
	require.Equal(t, int64(7), b.Value)
}

func TestScan_AndConditionNoMatchWhenOneMissing(t *testing.T) {
	rules := compileSource(t, `
rule suspicious {
    strings:
        $a = "AutoOpen"
        $b = "CreateObject"
    condition:
        $a and $b
}
`)

	matches := rules.Scan(context.Background(), "Sub AutoOpen() End Sub")
	require.Empty(t, matches)
}

func TestScan_AndNot(t *testing.T) {
	rules := compileSource(t, `
rule r {
    strings:
        $a = "alpha"
        $b = "beta"
    condition:
        $a and (not $b)
}
`)

	require.Len(t, rules.Scan(context.Background(), "alpha only"), 1)
	require.Empty(t, rules.Scan(context.Background(), "alpha and beta"))
}

func TestScan_AnyOfThem(t *testing.T) {
	rules := compileSource(t, `
rule r {
    strings:
        $a = "alpha"
        $b = "beta"
        $c = "gamma"
    condition:
        any of them
}
`)

	require.Len(t, rules.Scan(context.Background(), "contains beta only"), 1)
	require.Empty(t, rules.Scan(context.Background(), "contains none of the three"))
}

func TestScan_AllOfWildcard(t *testing.T) {
	rules := compileSource(t, `
rule r {
    strings:
        $s1 = "one"
        $s2 = "two"
        $other = "three"
    condition:
        all of ($s*)
}
`)

	require.Len(t, rules.Scan(context.Background(), "one two three"), 1)
	require.Empty(t, rules.Scan(context.Background(), "one three"))
}

func TestScan_MultipleRulesShareOneAutomaton(t *testing.T) {
	rules := compileSource(t, `
rule first {
    strings:
        $a = "needle"
    condition:
        $a
}

rule second {
    strings:
        $b = "haystack"
    condition:
        $b
}
`)

	matches := rules.Scan(context.Background(), "a needle in a haystack")
	require.Len(t, matches, 2)
	require.Equal(t, 2, rules.Count())
}
