package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryUnknownType(t *testing.T) {
	t.Parallel()

	_, err := New("brownian_bridge", Config{})
	require.Error(t, err)
	assertConfigError(t, err)
	assert.Contains(t, err.Error(), "brownian_bridge")
}

func TestFactoryConstructsEveryType(t *testing.T) {
	t.Parallel()

	periodic := Config{
		"freq":  []any{1., 0.5},
		"mu":    []any{2., 2.1},
		"amp":   []any{1., 1.2},
		"phase": []any{0., 1.},
		"dX":    0.01,
	}
	dynamic := Config{
		"freqRange": []any{[]any{0.5, 5., 0.5}},
		"muRange":   []any{[]any{50., 60., 1.}},
		"ampRange":  []any{[]any{1., 3., 0.5}},
		"dX":        0.01,
	}
	trend := Config{
		"trendProb": []any{0.01},
		"minPeriod": []any{5},
		"maxPeriod": []any{50},
		"dYMin":     []any{0.1},
		"dYMax":     []any{0.5},
		"start":     []any{100.},
	}
	trendOU := Config{}
	for k, v := range trend {
		trendOU[k] = v
	}
	trendOU["theta"] = []any{0.1}
	trendOU["phi"] = []any{0.2}
	trendOU["noiseVar"] = []any{0.01}
	trendOU["emaAlpha"] = []any{0.05}

	trendSimple := Config{}
	for k, v := range trend {
		trendSimple[k] = v
	}
	trendSimple["noise"] = []any{0.1}

	dynamicTrend := Config{}
	for k, v := range dynamic {
		dynamicTrend[k] = v
	}
	dynamicTrend["trendRange"] = []any{[]any{5, 50}}
	dynamicTrend["trendIncr"] = []any{0.5}
	dynamicTrend["trendProb"] = []any{0.01}

	cases := []struct {
		typeName string
		cfg      Config
		nAssets  int
	}{
		{"sine", periodic, 2},
		{"synth", periodic, 2},
		{"sawtooth", periodic, 2},
		{"triangle", periodic, 2},
		{"sine_adder", periodic, 1},
		{"sine_dynamic", dynamic, 1},
		{"sine_dynamic_trend", dynamicTrend, 1},
		{"gaussian", Config{"mean": []any{1., 2.}, "var": []any{0.1, 0.2}}, 2},
		{"ou", Config{"mean": []any{10.}, "theta": []any{0.1}, "phi": []any{0.2}}, 1},
		{"ou_dynamic", Config{
			"meanRange":  []any{[]any{5., 10., 1.}},
			"thetaRange": []any{[]any{0.1, 0.5, 0.1}},
			"phiRange":   []any{[]any{0., 0.2, 0.05}},
		}, 1},
		{"ou_pair", Config{"theta": 0.1, "phi": 0.2, "noise": 0.5}, 2},
		{"coint_pair", Config{"theta": 0.1, "phi": 0.2, "noise": 0.5}, 2},
		{"simple_trend", trendSimple, 1},
		{"trend_ou", trendOU, 1},
		{"trendy_ou", trendOU, 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.typeName, func(t *testing.T) {
			t.Parallel()
			s, err := New(tc.typeName, tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.nAssets, s.NAssets())

			obs, err := s.Advance()
			require.NoError(t, err)
			assert.Len(t, obs, s.NFeatures())
			assert.False(t, s.DataEnd())
		})
	}
}
