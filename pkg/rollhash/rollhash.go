// Package rollhash implements the weak, window-rollable hashes used to
// find candidate chunk boundaries and block matches: Adler32-style and
// Gear64. Neither has a usable rolling form in any library on the
// ecosystem's radar — rollability is the entire design constraint being
// implemented here, so both are hand-written against the standard
// library rather than wired to a third-party hash package.
package rollhash

// Hash is a window-keyed weak hash that can be advanced one byte at a
// time without rescanning the whole window.
type Hash interface {
	// Reset re-initializes the hash over the given window.
	Reset(window []byte)

	// Roll advances the window by one byte: old leaves, new enters.
	Roll(old, new byte)

	// Sum returns the current hash value.
	Sum() uint64
}

// FromScratch computes h's value over window by resetting and reading
// Sum immediately, with no rolling involved. Used to cross-check Roll's
// incremental result against a full recomputation.
func FromScratch(h Hash, window []byte) uint64 {
	h.Reset(window)
	return h.Sum()
}
