package xrand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolGenDeterministic(t *testing.T) {
	t.Parallel()

	a := NewBoolGen(42)
	b := NewBoolGen(42)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Next(), b.Next(), "draw %d diverged", i)
	}
}

func TestBoolGenSeedsDiffer(t *testing.T) {
	t.Parallel()

	a := NewBoolGen(1)
	b := NewBoolGen(2)
	same := 0
	for i := 0; i < 256; i++ {
		if a.Next() == b.Next() {
			same++
		}
	}
	assert.Less(t, same, 256)
}

func TestBoolGenRoughBalance(t *testing.T) {
	t.Parallel()

	g := NewBoolGen(7)
	trues := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if g.Next() {
			trues++
		}
	}
	// ~50% with generous tolerance
	assert.Greater(t, trues, n*4/10)
	assert.Less(t, trues, n*6/10)
}

func TestBoolGenZeroSeed(t *testing.T) {
	t.Parallel()

	g := NewBoolGen(0)
	varied := false
	first := g.Next()
	for i := 0; i < 64; i++ {
		if g.Next() != first {
			varied = true
			break
		}
	}
	assert.True(t, varied, "zero seed must still produce a varied stream")
}
