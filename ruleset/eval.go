package ruleset

import (
	"strings"

	"github.com/huan086/acdat/ruleset/ast"
)

// evalExpr evaluates a rule's condition tree against the set of its
// own string names that fired during a scan. Pruned from the
// teacher's scanner/condeval.go evalExpr: no at-expressions, function
// calls, or integer comparisons, since this language's conditions
// only ever reason about which strings matched.
func evalExpr(expr ast.Expr, matched map[string]bool, stringNames []string) bool {
	switch e := expr.(type) {
	case ast.StringRef:
		return matched[e.Name]

	case ast.NotExpr:
		return !evalExpr(e.Inner, matched, stringNames)

	case ast.BinaryExpr:
		switch e.Op {
		case "and":
			return evalExpr(e.Left, matched, stringNames) && evalExpr(e.Right, matched, stringNames)
		case "or":
			return evalExpr(e.Left, matched, stringNames) || evalExpr(e.Right, matched, stringNames)
		default:
			return false
		}

	case ast.ParenExpr:
		return evalExpr(e.Inner, matched, stringNames)

	case ast.AnyOf:
		for _, name := range matchingStringNames(e.Pattern, stringNames) {
			if matched[name] {
				return true
			}
		}
		return false

	case ast.AllOf:
		names := matchingStringNames(e.Pattern, stringNames)
		if len(names) == 0 {
			return false
		}
		for _, name := range names {
			if !matched[name] {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// matchingStringNames returns the string names pattern selects: "them"
// selects every string in the rule, a "$prefix_*" wildcard selects
// every name with that prefix, anything else selects only an exact
// match.
func matchingStringNames(pattern string, stringNames []string) []string {
	if pattern == "them" {
		return stringNames
	}

	if !strings.HasSuffix(pattern, "*") {
		for _, name := range stringNames {
			if name == pattern {
				return []string{name}
			}
		}
		return nil
	}

	prefix := strings.TrimSuffix(pattern, "*")
	var result []string
	for _, name := range stringNames {
		if strings.HasPrefix(name, prefix) {
			result = append(result, name)
		}
	}
	return result
}
