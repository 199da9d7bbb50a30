// Package xrand provides a cheap pseudo-random boolean gate used by the
// dynamic data generators to decide parameter re-samples and trend
// episode starts without burning a full uniform draw per step.
package xrand

// BoolGen is a xorshift128+ generator that shifts one boolean per call
// out of a 64-bit draw, so a fresh draw is only needed every 64 calls.
type BoolGen struct {
	s0, s1 uint64
	word   uint64
	bits   int
}

// NewBoolGen seeds the generator. A zero seed is remapped to a fixed
// non-zero state since xorshift cannot leave the all-zero state.
func NewBoolGen(seed uint64) *BoolGen {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	g := &BoolGen{s0: seed, s1: seed ^ 0xBF58476D1CE4E5B9}
	// warm up past the low-entropy seed state
	for i := 0; i < 8; i++ {
		g.next64()
	}
	return g
}

func (g *BoolGen) next64() uint64 {
	x := g.s0
	y := g.s1
	g.s0 = y
	x ^= x << 23
	g.s1 = x ^ y ^ (x >> 17) ^ (y >> 26)
	return g.s1 + y
}

// Next returns the next pseudo-random boolean.
func (g *BoolGen) Next() bool {
	if g.bits == 0 {
		g.word = g.next64()
		g.bits = 64
	}
	b := g.word&1 == 1
	g.word >>= 1
	g.bits--
	return b
}
