package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dynRanges() (freq, mu, amp [][3]float64) {
	freq = [][3]float64{{0.5, 5, 0.5}, {0.5, 5, 0.5}}
	mu = [][3]float64{{50, 60, 1}, {20, 30, 1}}
	amp = [][3]float64{{1, 3, 0.5}, {1, 3, 0.5}}
	return
}

func TestSineDynamicBoundedByRanges(t *testing.T) {
	t.Parallel()

	freq, mu, amp := dynRanges()
	s, err := NewSineDynamic(freq, mu, amp, 0.01, 0, 13)
	require.NoError(t, err)
	assert.Equal(t, 2, s.NAssets())

	for i := 0; i < 5000; i++ {
		obs, err := s.Advance()
		require.NoError(t, err)
		// each value stays inside mu range +/- amp max
		assert.GreaterOrEqual(t, obs[0], 50-3-1e-9)
		assert.LessOrEqual(t, obs[0], 60+3+1e-9)
		assert.GreaterOrEqual(t, obs[1], 20-3-1e-9)
		assert.LessOrEqual(t, obs[1], 30+3+1e-9)
	}
}

func TestSineDynamicReproducible(t *testing.T) {
	t.Parallel()

	freq, mu, amp := dynRanges()
	a, err := NewSineDynamic(freq, mu, amp, 0.01, 0.1, 29)
	require.NoError(t, err)
	b, err := NewSineDynamic(freq, mu, amp, 0.01, 0.1, 29)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		va, _ := a.Advance()
		vb, _ := b.Advance()
		assert.Equal(t, va, vb, "step %d", i)
	}
}

func TestSineDynamicResetReplays(t *testing.T) {
	t.Parallel()

	freq, mu, amp := dynRanges()
	s, err := NewSineDynamic(freq, mu, amp, 0.01, 0, 29)
	require.NoError(t, err)

	first := make([][]float64, 0, 300)
	for i := 0; i < 300; i++ {
		obs, err := s.Advance()
		require.NoError(t, err)
		first = append(first, append([]float64(nil), obs...))
	}

	require.NoError(t, s.Reset())
	for i := 0; i < 300; i++ {
		obs, err := s.Advance()
		require.NoError(t, err)
		assert.Equal(t, first[i], obs, "step %d", i)
	}
}

func TestSineDynamicRejectsBadRanges(t *testing.T) {
	t.Parallel()

	freq, mu, _ := dynRanges()

	_, err := NewSineDynamic(freq, mu, [][3]float64{{1, 3, 0.5}}, 0.01, 0, DefaultSeed)
	require.Error(t, err)
	assertConfigError(t, err)

	_, err = NewSineDynamic([][3]float64{{5, 0.5, 0.5}}, [][3]float64{{50, 60, 1}},
		[][3]float64{{1, 3, 0.5}}, 0.01, 0, DefaultSeed)
	require.Error(t, err)
	assertConfigError(t, err)

	_, err = NewSineDynamic([][3]float64{{0.5, 5, 0.5}}, [][3]float64{{50, 60, 1}},
		[][3]float64{{1, 3, 0.5}}, 0, 0, DefaultSeed)
	require.Error(t, err)
	assertConfigError(t, err)
}

func TestSineDynamicTrendOverlay(t *testing.T) {
	t.Parallel()

	// trendProb=1 guarantees an episode from the first idle step; the
	// overlay shifts the waveform away from the static mu band
	freqRange := [][3]float64{{1, 1, 0}}
	muRange := [][3]float64{{100, 100, 0}}
	ampRange := [][3]float64{{0, 0, 0}}

	s, err := NewSineDynamicTrend(freqRange, muRange, ampRange,
		[][2]int{{20, 20}}, []float64{1}, []float64{1},
		0.01, 0, 41)
	require.NoError(t, err)

	var last float64
	for i := 0; i < 100; i++ {
		obs, err := s.Advance()
		require.NoError(t, err)
		last = obs[0]
	}
	assert.NotEqual(t, 100.0, last, "trend overlay must have displaced the level")

	require.NoError(t, s.Reset())
	obs, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, 100.0, obs[0], "reset clears the trend component")
}

func TestSineDynamicTrendConfigRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Config{
		"freqRange":  []any{[]any{0.5, 5., 0.5}},
		"muRange":    []any{[]any{50., 60., 1.}},
		"ampRange":   []any{[]any{1., 3., 0.5}},
		"trendRange": []any{[]any{5, 50}},
		"trendIncr":  []any{0.5},
		"trendProb":  []any{0.01},
		"dX":         0.01,
	}
	s, err := NewSineDynamicTrendFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, s.NAssets())

	delete(cfg, "trendProb")
	_, err = NewSineDynamicTrendFromConfig(cfg)
	require.Error(t, err)
	assertConfigError(t, err)
}
