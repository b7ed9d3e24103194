package ahocorasick

import "sort"

// buildFailureLinks runs the failure-states phase: a BFS over the
// temporary trie (not the DAT queue order from the encoding phase) that
// assigns every reachable node's suffix-failure link and materializes
// its output set, indexed by the DAT slot already stamped onto
// trieNode.index.
//
// fail and output are returned sized size+1; for the empty-trie case
// (size == 0) that's just the root.
func buildFailureLinks(root *trieNode, enc *datArrays) ([]int, [][]int) {
	fail := make([]int, enc.size+1)
	output := make([][]int, enc.size+1)
	output[root.index] = nil // root never accepts an empty-string pattern

	queue := make([]*trieNode, 0, enc.size)
	for _, c := range root.sortedChildren() {
		child := root.success[c]
		child.failure = root
		fail[child.index] = root.index
		output[child.index] = ownEmits(child)
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		for _, c := range s.sortedChildren() {
			t := s.success[c]

			trace := s.failure
			for trace.nextState(c, false) == nil {
				trace = trace.failure
			}
			t.failure = trace.nextState(c, false)
			fail[t.index] = t.failure.index

			own := ownEmits(t)
			inherited := output[t.failure.index]
			if len(own) == 0 {
				output[t.index] = inherited
			} else if len(inherited) == 0 {
				output[t.index] = own
			} else {
				merged := make([]int, 0, len(own)+len(inherited))
				merged = append(merged, own...)
				merged = append(merged, inherited...)
				output[t.index] = merged
			}

			queue = append(queue, t)
		}
	}

	return fail, output
}

// ownEmits returns n's own emit set as a sorted slice, or nil when n has
// no emits. Sorting by pattern index gives a deterministic tie-break
// among patterns that terminate at the very same node (e.g. the same
// key added twice with different values).
func ownEmits(n *trieNode) []int {
	if len(n.emits) == 0 {
		return nil
	}
	out := make([]int, 0, len(n.emits))
	for k := range n.emits {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
