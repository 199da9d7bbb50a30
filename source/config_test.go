package source

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/marketsim/market"
)

func assertConfigError(t *testing.T, err error) {
	t.Helper()
	var cfgErr *market.ConfigError
	assert.True(t, errors.As(err, &cfgErr), "want *market.ConfigError, got %T: %v", err, err)
}

func TestConfigScalars(t *testing.T) {
	t.Parallel()

	cfg := Config{"dX": 0.01, "n": 5, "name": "ou"}

	f, err := cfg.Float("dX")
	require.NoError(t, err)
	assert.Equal(t, 0.01, f)

	n, err := cfg.Int("n")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	s, err := cfg.Str("name")
	require.NoError(t, err)
	assert.Equal(t, "ou", s)

	_, err = cfg.Float("missing")
	assertConfigError(t, err)

	_, err = cfg.Str("dX")
	assertConfigError(t, err)
}

func TestConfigFloatOr(t *testing.T) {
	t.Parallel()

	cfg := Config{"noise": "loud"}

	v, err := Config{}.FloatOr("noise", 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, v)

	// present but ill-typed stays an error
	_, err = cfg.FloatOr("noise", 0.5)
	assertConfigError(t, err)
}

func TestConfigFloats(t *testing.T) {
	t.Parallel()

	cfg := Config{
		"freq": []any{1, 2.5, int64(3)},
		"bad":  []any{1., "x"},
	}

	fs, err := cfg.Floats("freq")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, 3}, fs)

	_, err = cfg.Floats("bad")
	assertConfigError(t, err)

	_, err = cfg.Floats("missing")
	assertConfigError(t, err)
}

func TestConfigTriples(t *testing.T) {
	t.Parallel()

	cfg := Config{
		"freqRange": []any{
			[]any{0.1, 1.0, 0.1},
			[]any{0.2, 2.0, 0.2},
		},
		"short": []any{[]any{0.1, 1.0}},
	}

	triples, err := cfg.Triples("freqRange")
	require.NoError(t, err)
	require.Len(t, triples, 2)
	assert.Equal(t, [3]float64{0.1, 1.0, 0.1}, triples[0])

	_, err = cfg.Triples("short")
	assertConfigError(t, err)
}

func TestConfigIntPairs(t *testing.T) {
	t.Parallel()

	cfg := Config{"trendRange": []any{[]any{5, 50}}}

	pairs, err := cfg.IntPairs("trendRange")
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{5, 50}}, pairs)
}

func TestConfigSubs(t *testing.T) {
	t.Parallel()

	cfg := Config{
		"sources": []any{
			map[string]any{"type": "gaussian"},
			map[string]any{"type": "ou"},
		},
	}

	subs, err := cfg.Subs("sources")
	require.NoError(t, err)
	require.Len(t, subs, 2)

	name, err := subs[0].Str("type")
	require.NoError(t, err)
	assert.Equal(t, "gaussian", name)
}

func TestConfigSeedDefault(t *testing.T) {
	t.Parallel()

	seed, err := Config{}.Seed()
	require.NoError(t, err)
	assert.Equal(t, DefaultSeed, seed)

	seed, err = Config{"seed": 7}.Seed()
	require.NoError(t, err)
	assert.Equal(t, int64(7), seed)
}
