package rollhash

// adlerMod is the modulus from the Adler-32 definition (the largest
// prime below 2^16).
const adlerMod uint32 = 65521

// Adler32 is a rolling variant of the Adler-32 checksum. Unlike
// hash/adler32 in the standard library, it exposes Roll so a window can
// be advanced in O(1) instead of rescanned.
type Adler32 struct {
	a, b uint32
	size uint32
}

// NewAdler32 returns an Adler32 hash initialized over window.
func NewAdler32(window []byte) *Adler32 {
	h := &Adler32{}
	h.Reset(window)
	return h
}

func (h *Adler32) Reset(window []byte) {
	var a, b uint32 = 1, 0
	for _, c := range window {
		a = (a + uint32(c)) % adlerMod
		b = (b + a) % adlerMod
	}
	h.a, h.b = a, b
	h.size = uint32(len(window))
}

// Roll advances the window by one byte: old is the byte leaving the
// window at its start, new is the byte entering at its end.
//
//	a' = a - old + new
//	b' = b - size*old + a' - 1
//
// derived from Adler-32's definition (a = 1 + sum(bytes), b = running
// sum of a's partial sums) rather than the plain rsync checksum, which
// omits the leading 1.
func (h *Adler32) Roll(old, new byte) {
	a := (h.a + adlerMod - uint32(old)%adlerMod) % adlerMod
	a = (a + uint32(new)) % adlerMod

	sub := (h.size % adlerMod) * uint32(old) % adlerMod
	b := (h.b + adlerMod - sub) % adlerMod
	b = (b + a) % adlerMod
	b = (b + adlerMod - 1) % adlerMod

	h.a, h.b = a, b
}

func (h *Adler32) Sum() uint64 {
	return uint64(h.b)<<16 | uint64(h.a)
}
