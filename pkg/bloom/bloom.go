// Package bloom implements a double-hashing Bloom filter and a
// rank-select bitmap, the two probabilistic/succinct index structures a
// Star Map embeds to answer "have I seen this chunk" and "which chunks
// in this window are still missing" without a full scan.
package bloom

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/uplo-tech/fastrand"
)

// Filter is a Bloom filter sized for an expected element count and a
// target false positive rate. It never produces false negatives:
// Contains returns false only for keys that were never Added.
type Filter struct {
	bits  []uint64
	m     uint64 // bit count
	k     uint64 // hash count
	h1    uint64 // seed 1
	h2    uint64 // seed 2
	count uint64 // elements added
}

// New returns a Filter sized for n expected elements at false positive
// rate p. m and k follow the standard Bloom sizing formulas:
//
//	m = ceil(-n*ln(p) / (ln 2)^2)
//	k = ceil((m/n)*ln 2)
func New(n uint64, p float64) *Filter {
	if n == 0 {
		n = 1
	}
	if p <= 0 || p >= 1 {
		p = 0.01
	}

	m := uint64(math.Ceil(-float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)))
	if m == 0 {
		m = 1
	}
	k := uint64(math.Ceil((float64(m) / float64(n)) * math.Ln2))
	if k == 0 {
		k = 1
	}

	return &Filter{
		bits: make([]uint64, (m+63)/64),
		m:    m,
		k:    k,
		h1:   fastrand.Uint64n(math.MaxUint64),
		h2:   fastrand.Uint64n(math.MaxUint64),
	}
}

// baseHashes returns two independent 64-bit hashes of key, used as the
// (h1, h2) pair in the i-th hash formula h1 + i*h2.
func (f *Filter) baseHashes(key []byte) (uint64, uint64) {
	h := fnv.New64a()
	_, _ = h.Write(key)
	sum1 := h.Sum64()

	var seedBuf [8]byte
	binary.LittleEndian.PutUint64(seedBuf[:], f.h1)
	h2 := fnv.New64a()
	_, _ = h2.Write(seedBuf[:])
	_, _ = h2.Write(key)
	sum2 := h2.Sum64() ^ f.h2

	return sum1, sum2
}

func (f *Filter) bitIndex(h1, h2 uint64, i uint64) uint64 {
	return (h1 + i*h2) % f.m
}

// Add inserts key into the filter.
func (f *Filter) Add(key []byte) {
	h1, h2 := f.baseHashes(key)
	for i := uint64(0); i < f.k; i++ {
		idx := f.bitIndex(h1, h2, i)
		f.bits[idx/64] |= 1 << (idx % 64)
	}
	f.count++
}

// Contains reports whether key may have been added. False positives are
// possible; false negatives are not.
func (f *Filter) Contains(key []byte) bool {
	h1, h2 := f.baseHashes(key)
	for i := uint64(0); i < f.k; i++ {
		idx := f.bitIndex(h1, h2, i)
		if f.bits[idx/64]&(1<<(idx%64)) == 0 {
			return false
		}
	}
	return true
}

// EstimatedFalsePositiveRate returns the theoretical FPR given the
// number of elements inserted so far: (1 - e^(-kN/m))^k.
func (f *Filter) EstimatedFalsePositiveRate() float64 {
	if f.count == 0 {
		return 0
	}
	exponent := -float64(f.k) * float64(f.count) / float64(f.m)
	return math.Pow(1-math.Exp(exponent), float64(f.k))
}

// BitCount returns m, the number of bits in the underlying vector.
func (f *Filter) BitCount() uint64 { return f.m }

// HashCount returns k, the number of hash functions used per key.
func (f *Filter) HashCount() uint64 { return f.k }

// Seeds returns the two independent seeds used to derive per-key hash
// pairs, for serialization into a Star Map.
func (f *Filter) Seeds() (uint64, uint64) { return f.h1, f.h2 }

// Load reconstructs a Filter from a previously serialized bit vector
// and seed pair, as read back out of a Star Map.
func Load(bits []uint64, m, k, h1, h2, count uint64) *Filter {
	return &Filter{bits: bits, m: m, k: k, h1: h1, h2: h2, count: count}
}

// Bits returns the raw bit vector words, for serialization.
func (f *Filter) Bits() []uint64 { return f.bits }
