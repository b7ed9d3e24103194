package ahocorasick

import "sort"

// noEmit is the sentinel largestEmit takes when a trieNode's emit set
// is empty. largestEmit is never read on a node whose emits set is
// empty, but the sentinel still needs a value that can't collide with
// a real pattern index.
const noEmit = -1

// trieNode is the temporary, pointer-based trie built while patterns are
// being added to a Builder. It is discarded once the double-array
// encoding and failure links have been materialized into flat arrays;
// nothing about it survives into an Automaton.
type trieNode struct {
	depth       int
	success     map[codeUnit]*trieNode
	emits       map[int]struct{}
	largestEmit int
	failure     *trieNode
	index       int // DAT slot, assigned during encoding; -1 until then
}

func newTrieNode(depth int) *trieNode {
	return &trieNode{
		depth:       depth,
		success:     make(map[codeUnit]*trieNode),
		largestEmit: noEmit,
		index:       -1,
	}
}

// addState returns the child of n reached on c, creating it if absent.
func (n *trieNode) addState(c codeUnit) *trieNode {
	if child, ok := n.success[c]; ok {
		return child
	}
	child := newTrieNode(n.depth + 1)
	n.success[c] = child
	return child
}

// addEmit records pattern index k as terminating at n.
func (n *trieNode) addEmit(k int) {
	if n.emits == nil {
		n.emits = make(map[int]struct{})
	}
	n.emits[k] = struct{}{}
	if k > n.largestEmit {
		n.largestEmit = k
	}
}

// nextState follows the child edge for c. When n is the root and
// ignoreRoot is false, an absent edge self-loops to the root itself, so
// root.nextState(c) with ignoreRoot=false always terminates the
// failure-link walk.
func (n *trieNode) nextState(c codeUnit, ignoreRoot bool) *trieNode {
	if child, ok := n.success[c]; ok {
		return child
	}
	if n.depth == 0 && !ignoreRoot {
		return n
	}
	return nil
}

// isAcceptable reports whether n terminates at least one pattern and is
// not the root (Builder.Add rejects the empty key, so the root never
// terminates a pattern).
func (n *trieNode) isAcceptable() bool {
	return n.depth > 0 && len(n.emits) > 0
}

// sortedChildren returns the code units of n's child edges in ascending
// order, the ordering the double-array encoder requires of sibling
// lists; the children themselves are looked up in n.success.
func (n *trieNode) sortedChildren() []codeUnit {
	keys := make([]codeUnit, 0, len(n.success))
	for c := range n.success {
		keys = append(keys, c)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
