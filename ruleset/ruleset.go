// Package ruleset compiles rule sets of named literal strings and
// boolean conditions into a form that can be scanned against data in
// one shared automaton pass: one literal-string matching primitive,
// since this layer never needs to decide whether a byte sequence
// matched anything but itself.
package ruleset

import (
	"github.com/huan086/acdat/ahocorasick"
	"github.com/huan086/acdat/ruleset/ast"
)

// compiledRule holds one rule's name, condition tree, and the names of
// the strings it defines — everything evalExpr needs once the shared
// automaton has reported which string names fired.
type compiledRule struct {
	name        string
	condition   ast.Expr
	stringNames []string
}

// MatchRule reports one rule that matched during a Scan.
type MatchRule struct {
	Rule    string
	Strings []StringMatch // the rule's own strings that fired
}

// StringMatch names one fired string (with its '$' prefix) and carries
// its "value=<int>" annotation (the string's ordinal within its rule
// when the string definition had none).
type StringMatch struct {
	Name  string
	Value int64
}

// Rules holds compiled rules ready for scanning: one shared automaton
// over every rule's literal strings, plus enough bookkeeping to map a
// pattern index back to (rule, string name).
type Rules struct {
	rules      []*compiledRule
	matcher    *ahocorasick.Automaton[patternRef]
	patternCnt int
}

// patternRef is the value a pattern carries in the shared automaton: a
// back-pointer to which rule and string name it belongs to, plus the
// string definition's own "value=<int>" annotation (or its ordinal
// within the rule, when no annotation was given).
type patternRef struct {
	ruleIndex  int
	stringName string
	tag        int64
}

// Count returns the number of compiled rules.
func (r *Rules) Count() int {
	return len(r.rules)
}
