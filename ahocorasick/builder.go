package ahocorasick

// PatternValue pairs a pattern key with its caller-supplied value, the
// unit AddAll bulk-loads into a Builder.
type PatternValue[TValue any] struct {
	Key   string
	Value TValue
}

// Builder consumes patterns and their associated values and produces an
// immutable Automaton: construct, add patterns, build once.
//
// A Builder is not safe for concurrent Add/AddAll calls; callers must
// externally synchronize mutation.
type Builder[TValue any] struct {
	ignoreCase bool
	root       *trieNode
	keyLengths []int
	values     []TValue
	built      bool
}

// NewBuilder creates an empty Builder. ignoreCase is frozen at
// construction: it governs both how Add upper-cases incoming keys and
// how the built Automaton upper-cases scan input, and it is recorded in
// the serialized form.
func NewBuilder[TValue any](ignoreCase bool) *Builder[TValue] {
	return &Builder[TValue]{
		ignoreCase: ignoreCase,
		root:       newTrieNode(0),
	}
}

// Add inserts key with its associated value. The empty string is
// rejected with ErrInvalidArgument rather than given "matches at every
// position" semantics.
func (b *Builder[TValue]) Add(key string, value TValue) error {
	if b.built {
		return newErr(ErrInvalidState, "Add called after Build")
	}
	if key == "" {
		return newErr(ErrInvalidArgument, "key must be non-empty")
	}

	units := toCodeUnits(key)
	if b.ignoreCase {
		units = upperCodeUnits(units)
	}

	k := len(b.keyLengths)
	b.keyLengths = append(b.keyLengths, len(units))
	b.values = append(b.values, value)

	node := b.root
	for _, c := range units {
		node = node.addState(c)
	}
	node.addEmit(k)
	return nil
}

// AddAll bulk-loads patterns, reserving capacity in the pattern-indexed
// arrays up front to avoid quadratic regrowth.
func (b *Builder[TValue]) AddAll(patterns []PatternValue[TValue]) error {
	if b.built {
		return newErr(ErrInvalidState, "AddAll called after Build")
	}
	if patterns == nil {
		return newErr(ErrInvalidArgument, "patterns must be non-nil")
	}

	if n := len(patterns); cap(b.keyLengths)-len(b.keyLengths) < n {
		grownLengths := make([]int, len(b.keyLengths), len(b.keyLengths)+n)
		copy(grownLengths, b.keyLengths)
		b.keyLengths = grownLengths

		grownValues := make([]TValue, len(b.values), len(b.values)+n)
		copy(grownValues, b.values)
		b.values = grownValues
	}

	for _, p := range patterns {
		if err := b.Add(p.Key, p.Value); err != nil {
			return err
		}
	}
	return nil
}

// Build consumes the builder and returns an immutable Automaton. Any
// mutating call on b after Build fails with ErrInvalidState.
func (b *Builder[TValue]) Build() (*Automaton[TValue], error) {
	if b.built {
		return nil, newErr(ErrInvalidState, "Build called twice")
	}
	b.built = true

	enc, err := buildDoubleArray(b.root, len(b.keyLengths))
	if err != nil {
		return nil, err
	}
	fail, output := buildFailureLinks(b.root, enc)
	b.root = nil // the temporary trie is never retained past Build

	return &Automaton[TValue]{
		base:         enc.base,
		check:        enc.check,
		size:         enc.size,
		fail:         fail,
		output:       output,
		keyLengths:   b.keyLengths,
		values:       b.values,
		hasValues:    true,
		ignoreCase:   b.ignoreCase,
		patternCount: len(b.keyLengths),
	}, nil
}
