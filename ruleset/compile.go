package ruleset

import (
	"github.com/huan086/acdat/ahocorasick"
	"github.com/huan086/acdat/ruleset/ast"
)

// Compile compiles a parsed rule set into Rules ready for Scan: every
// rule's literal strings feed one shared ahocorasick.Builder, and
// rules with no condition are skipped.
func Compile(rs *ast.RuleSet) (*Rules, error) {
	rules := &Rules{rules: make([]*compiledRule, 0, len(rs.Rules))}
	builder := ahocorasick.NewBuilder[patternRef](false)

	ruleIdx := 0
	for _, r := range rs.Rules {
		if r.Condition == nil {
			continue
		}

		cr := &compiledRule{
			name:      r.Name,
			condition: r.Condition,
		}
		for _, s := range r.Strings {
			cr.stringNames = append(cr.stringNames, s.Name)
			if err := builder.Add(s.Text, patternRef{
				ruleIndex:  ruleIdx,
				stringName: s.Name,
				tag:        s.Value,
			}); err != nil {
				return nil, err
			}
			rules.patternCnt++
		}
		rules.rules = append(rules.rules, cr)
		ruleIdx++
	}

	if rules.patternCnt == 0 {
		return rules, nil
	}
	matcher, err := builder.Build()
	if err != nil {
		return nil, err
	}
	rules.matcher = matcher
	return rules, nil
}
