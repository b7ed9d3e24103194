package ahocorasick

import "math"

// maxCapacity bounds the number of (base, check) slots construction may
// grow to: ⌊0.95 · INT_MAX⌋, using a 32-bit INT_MAX since the
// serialized size field is an int32.
var maxInt32Value int32 = math.MaxInt32
var maxCapacity = int(0.95 * float64(maxInt32Value))

// datArrays is the mutable state threaded through the double-array
// encoding pass. It is discarded once the final "lose weight" phase has
// trimmed base/check down to their final size.
type datArrays struct {
	base         []int
	check        []int
	used         []bool
	size         int
	nextCheckPos int
	progress     int
	keySize      int
}

// sibling is one entry in the ordered list the encoder installs into a
// single contiguous DAT block: either a real trie edge (child != nil,
// edge = codeUnit+1) or the synthetic terminator that marks an
// internal-but-accepting node's own acceptance (child == nil, edge = 0).
type sibling struct {
	edge  int
	child *trieNode
}

// fetchSiblings returns n's DAT siblings in ascending edge order: the
// synthetic terminator first (edge 0) when n has real children and is
// itself accepting, followed by n's real children. A node with no real
// children returns nil regardless of whether it accepts — such a node
// is a leaf and is encoded directly into its parent's block by the
// caller rather than being given a DAT block of its own.
func fetchSiblings(n *trieNode) []sibling {
	children := n.sortedChildren()
	if len(children) == 0 {
		return nil
	}
	sibs := make([]sibling, 0, len(children)+1)
	if n.isAcceptable() {
		sibs = append(sibs, sibling{edge: 0, child: nil})
	}
	for _, c := range children {
		sibs = append(sibs, sibling{edge: int(c) + 1, child: n.success[c]})
	}
	return sibs
}

type queueItem struct {
	parentSlot int
	siblings   []sibling
	// owner is the trieNode whose own acceptance the terminator sibling
	// (if present) in this block refers to; nil blocks never need it
	// except to resolve sibling.child == nil's largestEmit.
	owner *trieNode
}

// buildDoubleArray runs the "build DAT" phase: BFS over the temporary
// trie, assigning each reachable node a DAT slot and filling base/check
// accordingly. It also stamps trieNode.index on every node that gets a
// DAT slot, so the failure-link pass can find states by following the
// same pointers construction already walked.
func buildDoubleArray(root *trieNode, keySize int) (*datArrays, error) {
	d := &datArrays{
		base:  make([]int, 65536*32),
		check: make([]int, 65536*32),
		used:  make([]bool, 65536*32),
		keySize: keySize,
	}
	d.base[0] = 1
	root.index = 0

	rootSibs := fetchSiblings(root)
	if len(rootSibs) == 0 {
		d.size = 0
		final := d.size + 65535
		d.base = make([]int, final)
		d.check = make([]int, final)
		for i := range d.check {
			d.check[i] = -1
		}
		d.used = nil
		return d, nil
	}

	queue := []queueItem{{parentSlot: 0, siblings: rootSibs, owner: root}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		begin, err := d.insertBlock(item.siblings)
		if err != nil {
			return nil, err
		}
		d.base[item.parentSlot] = begin

		for _, sib := range item.siblings {
			slot := begin + sib.edge
			d.check[slot] = begin

			if sib.child == nil {
				// synthetic terminator: owner's own acceptance.
				d.base[slot] = -(item.owner.largestEmit + 1)
				d.progress++
				continue
			}

			sib.child.index = slot
			childSibs := fetchSiblings(sib.child)
			if len(childSibs) == 0 {
				// leaf: pattern terminus with no children of its own.
				d.base[slot] = -(sib.child.largestEmit + 1)
				d.progress++
				continue
			}
			queue = append(queue, queueItem{parentSlot: slot, siblings: childSibs, owner: sib.child})
		}
	}

	d.loseWeight()
	return d, nil
}

// grow reallocates base/check/used to at least minSize slots, using a
// growth factor of max(1.05, keySize/(progress+1)) times the current
// capacity.
func (d *datArrays) grow(minSize int) error {
	if minSize > maxCapacity {
		return newErr(ErrCapacityExhausted, "double-array trie exceeded construction cap")
	}
	factor := 1.05
	if f := float64(d.keySize) / float64(d.progress+1); f > factor {
		factor = f
	}
	newSize := int(float64(len(d.base)) * factor)
	if newSize < minSize {
		newSize = minSize
	}
	if newSize > maxCapacity {
		newSize = maxCapacity
	}
	if newSize <= len(d.base) {
		return newErr(ErrCapacityExhausted, "double-array trie exceeded construction cap")
	}

	base2 := make([]int, newSize)
	check2 := make([]int, newSize)
	used2 := make([]bool, newSize)
	copy(base2, d.base)
	copy(check2, d.check)
	copy(used2, d.used)
	d.base, d.check, d.used = base2, check2, used2
	return nil
}

// insertBlock runs the free-block search for one sibling list, marks the
// accepted begin as used and widens size to cover the block, returning
// the accepted begin. The caller writes each sibling's check and base
// slots.
func (d *datArrays) insertBlock(siblings []sibling) (int, error) {
	pos := siblings[0].edge + 1
	if d.nextCheckPos > pos {
		pos = d.nextCheckPos
	}
	pos--

	nonzeroNum := 0
	first := false
	var begin int

outer:
	for {
		pos++
		if pos >= len(d.base) {
			if err := d.grow(pos + 1); err != nil {
				return 0, err
			}
		}

		if d.check[pos] != 0 {
			nonzeroNum++
			continue
		}
		if !first {
			d.nextCheckPos = pos
			first = true
		}

		begin = pos - siblings[0].edge
		lastEdge := siblings[len(siblings)-1].edge
		if len(d.base) <= begin+lastEdge {
			if err := d.grow(begin + lastEdge + 1); err != nil {
				return 0, err
			}
		}

		if d.used[begin] {
			continue outer
		}

		for i := 1; i < len(siblings); i++ {
			if d.check[begin+siblings[i].edge] != 0 {
				continue outer
			}
		}
		break
	}

	if float64(nonzeroNum)/float64(pos-d.nextCheckPos+1) >= 0.95 {
		d.nextCheckPos = pos
	}

	d.used[begin] = true
	tmpSize := begin + siblings[len(siblings)-1].edge + 1
	if d.size < tmpSize {
		d.size = tmpSize
	}

	return begin, nil
}

// loseWeight trims base/check to exactly size+65535 slots, padding that
// eliminates bounds checks on the match-time hot path.
func (d *datArrays) loseWeight() {
	final := d.size + 65535
	base2 := make([]int, final)
	check2 := make([]int, final)
	copy(base2, d.base[:min(final, len(d.base))])
	copy(check2, d.check[:min(final, len(d.check))])
	d.base, d.check = base2, check2
	d.used = nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
