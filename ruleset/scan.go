package ruleset

import (
	"context"

	"github.com/huan086/acdat/ahocorasick"
)

// Scan runs one pass of the shared automaton over data, buckets hits
// by rule, and evaluates each rule's condition against its own matched
// string names. It always returns every matching rule rather than
// stopping at the first; ctx still cancels the scan mid-pass, the same
// contract as the core Automaton's ParseVisitor.
func (r *Rules) Scan(ctx context.Context, data string) []MatchRule {
	if r.matcher == nil {
		return nil
	}

	ruleMatches := make(map[int]map[string]int64)
	r.matcher.ParseVisitor(data, func(h ahocorasick.Hit[patternRef]) bool {
		if ctx.Err() != nil {
			return false
		}
		ref := h.Value
		if ruleMatches[ref.ruleIndex] == nil {
			ruleMatches[ref.ruleIndex] = make(map[string]int64)
		}
		ruleMatches[ref.ruleIndex][ref.stringName] = ref.tag
		return true
	})

	var results []MatchRule
	for ruleIdx, matched := range ruleMatches {
		cr := r.rules[ruleIdx]
		fired := make(map[string]bool, len(matched))
		for name := range matched {
			fired[name] = true
		}
		if !evalExpr(cr.condition, fired, cr.stringNames) {
			continue
		}
		strs := make([]StringMatch, 0, len(matched))
		for name, tag := range matched {
			strs = append(strs, StringMatch{Name: name, Value: tag})
		}
		results = append(results, MatchRule{Rule: cr.name, Strings: strs})
	}
	return results
}
