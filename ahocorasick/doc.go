// Package ahocorasick implements a multi-pattern string matcher: an
// Aho-Corasick automaton encoded as a double-array trie, in the style
// of Aoe's original construction. Build an Automaton once with
// Builder, then scan any number of texts against it concurrently.
package ahocorasick
