package replay

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/marketsim/market"
	"github.com/rustyeddy/marketsim/source"
)

// writeTickStore fills a store with rows ts=0..n-1 where every column is
// a simple function of ts, so tests can predict any row.
func writeTickStore(t *testing.T, path string, cols []string, n int) {
	t.Helper()
	w, err := CreateStore(path, "btc_usd", "ts", cols)
	require.NoError(t, err)
	defer w.Close()

	for ts := 0; ts < n; ts++ {
		vals := make([]float64, len(cols))
		for j := range vals {
			vals[j] = float64(ts) + float64(j)/10
		}
		require.NoError(t, w.Append(uint64(ts), vals))
	}
}

func TestSingleWindowAndExhaustion(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ticks.db")
	writeTickStore(t, path, []string{"price", "volume", "spread"}, 100)

	s, err := NewSingle(SingleParams{
		Path:         path,
		Table:        "btc_usd",
		TimestampCol: "ts",
		PriceCol:     "price",
		FeatureCols:  []string{"price", "volume", "spread"},
		CacheSize:    7, // force several refills inside the window
		StartTime:    10,
		EndTime:      40,
	})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 1, s.NAssets())
	assert.Equal(t, 3, s.NFeatures())
	assert.True(t, s.IsDateTime())

	for ts := 10; ts < 40; ts++ {
		assert.False(t, s.DataEnd(), "dataEnd before ts %d", ts)
		obs, err := s.Advance()
		require.NoError(t, err)
		assert.Equal(t, uint64(ts), s.CurrentTime())
		assert.Equal(t, float64(ts), obs[0])
		assert.Equal(t, float64(ts)+0.1, obs[1])
		assert.Equal(t, float64(ts), s.CurrentPrices()[0])
	}
	assert.True(t, s.DataEnd())

	_, err = s.Advance()
	require.Error(t, err)
	assert.True(t, errors.Is(err, market.ErrDataExhausted))
}

func TestSingleReset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ticks.db")
	writeTickStore(t, path, []string{"price"}, 50)

	s, err := NewSingle(SingleParams{
		Path:         path,
		Table:        "btc_usd",
		TimestampCol: "ts",
		PriceCol:     "price",
		FeatureCols:  []string{"price"},
		CacheSize:    100,
		StartTime:    5,
		EndTime:      15,
	})
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 10; i++ {
		_, err := s.Advance()
		require.NoError(t, err)
	}
	require.True(t, s.DataEnd())

	require.NoError(t, s.Reset())
	assert.False(t, s.DataEnd(), "reset must clear dataEnd")

	obs, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), s.CurrentTime(), "reset rewinds to startTime")
	assert.Equal(t, 5.0, obs[0])
}

func TestSingleEmptyWindowRejected(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ticks.db")
	writeTickStore(t, path, []string{"price"}, 20)

	_, err := NewSingle(SingleParams{
		Path:         path,
		Table:        "btc_usd",
		TimestampCol: "ts",
		PriceCol:     "price",
		FeatureCols:  []string{"price"},
		CacheSize:    10,
		StartTime:    100,
		EndTime:      200,
	})
	require.Error(t, err)
	var cfgErr *market.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestSingleFromConfigMissingKey(t *testing.T) {
	t.Parallel()

	cfg := source.Config{
		"path":      "nowhere.db",
		"table":     "btc_usd",
		"timestamp": "ts",
		// price omitted
		"features":  []any{"price"},
		"cacheSize": 10,
		"startTime": 0,
		"endTime":   10,
	}
	_, err := NewSingleFromConfig(cfg)
	require.Error(t, err)
	var cfgErr *market.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, err.Error(), "price")
}

func TestMultiPricesPerStep(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ticks.db")
	writeTickStore(t, path, []string{"btc_usd", "eth_usd"}, 30)

	m, err := NewMulti(MultiParams{
		Path:         path,
		Table:        "btc_usd",
		TimestampCol: "ts",
		PriceCols:    []string{"btc_usd", "eth_usd"},
		CacheSize:    4,
		StartTime:    0,
		EndTime:      30,
	})
	require.NoError(t, err)
	defer m.Close()

	assert.Equal(t, 2, m.NAssets())
	assert.Equal(t, []string{"BTC_USD", "ETH_USD"}, m.Assets().Codes())

	for ts := 0; ts < 30; ts++ {
		obs, err := m.Advance()
		require.NoError(t, err)
		assert.Equal(t, float64(ts), obs[0])
		assert.Equal(t, float64(ts)+0.1, obs[1])
		assert.Equal(t, obs, m.CurrentPrices())
	}
	assert.True(t, m.DataEnd())
	_, err = m.Advance()
	assert.True(t, errors.Is(err, market.ErrDataExhausted))
}

func TestStoreBoundsAndCount(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ticks.db")
	writeTickStore(t, path, []string{"price"}, 25)

	store, err := OpenStore(path, "btc_usd", "ts")
	require.NoError(t, err)
	defer store.Close()

	min, max, err := store.Bounds()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), min)
	assert.Equal(t, uint64(24), max)

	n, err := store.Count(5, 15)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestWriterRejectsWidthMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ticks.db")
	w, err := CreateStore(path, "btc_usd", "ts", []string{"price", "volume"})
	require.NoError(t, err)
	defer w.Close()

	err = w.Append(0, []float64{1.0})
	require.Error(t, err)
	var dimErr *market.DimensionError
	assert.True(t, errors.As(err, &dimErr))
}

func TestCheckIdentRejectsInjection(t *testing.T) {
	t.Parallel()

	_, err := OpenStore(filepath.Join(t.TempDir(), "x.db"), "t; DROP TABLE t", "ts")
	require.Error(t, err)

	_, err = CreateStore(filepath.Join(t.TempDir(), "y.db"), "ticks", "ts", []string{"a b"})
	require.Error(t, err)

	_, err = CreateStore(filepath.Join(t.TempDir(), "z.db"), "ticks", "ts", []string{"1col"})
	require.Error(t, err)
}

func TestSingleCacheRefillSeamless(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ticks.db")
	writeTickStore(t, path, []string{"price"}, 200)

	// cacheSize 1 exercises a refill on every step
	s, err := NewSingle(SingleParams{
		Path:         path,
		Table:        "btc_usd",
		TimestampCol: "ts",
		PriceCol:     "price",
		FeatureCols:  []string{"price"},
		CacheSize:    1,
		StartTime:    0,
		EndTime:      200,
	})
	require.NoError(t, err)
	defer s.Close()

	prev := math.Inf(-1)
	for i := 0; i < 200; i++ {
		obs, err := s.Advance()
		require.NoError(t, err)
		assert.Greater(t, obs[0], prev, "rows must stay in timestamp order across refills")
		prev = obs[0]
	}
	assert.True(t, s.DataEnd())
}
