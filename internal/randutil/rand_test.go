package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64(), "draw %d diverged", i)
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 32; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	assert.Less(t, same, 32)
}

func TestSeedStream(t *testing.T) {
	s1 := NewSeedStream(2024)
	s2 := NewSeedStream(2024)
	for i := 0; i < 50; i++ {
		seed := s1.Next()
		require.Equal(t, seed, s2.Next())
		require.GreaterOrEqual(t, seed, int64(0))
		require.Less(t, seed, int64(MaxSeed))
	}
}

func TestRandomSeedRange(t *testing.T) {
	for i := 0; i < 20; i++ {
		seed := RandomSeed()
		assert.GreaterOrEqual(t, seed, int64(0))
		assert.Less(t, seed, int64(MaxSeed))
	}
}

func TestSampleIndices(t *testing.T) {
	rng := New(7)
	for i := 0; i < 500; i++ {
		idx := SampleIndices(rng, 6, 2)
		require.Len(t, idx, 2)
		assert.NotEqual(t, idx[0], idx[1])
		for _, v := range idx {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, 6)
		}
	}

	assert.Len(t, SampleIndices(New(1), 3, 5), 3, "k is clamped to n")
}

func TestSampleIndicesCoversAllPairs(t *testing.T) {
	rng := New(11)
	seen := map[[2]int]bool{}
	for i := 0; i < 2000; i++ {
		idx := SampleIndices(rng, 6, 2)
		a, b := idx[0], idx[1]
		if a > b {
			a, b = b, a
		}
		seen[[2]int{a, b}] = true
	}
	assert.Len(t, seen, 15, "every unordered pair of 6 should appear")
}
