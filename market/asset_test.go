package market

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAssetSet(t *testing.T) {
	t.Parallel()

	s, err := NewAssetSet("btc_usd", "eth_usd", "sol_usd")
	require.NoError(t, err)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"BTC_USD", "ETH_USD", "SOL_USD"}, s.Codes())

	// positional index is stable and matches insertion order
	for i, code := range s.Codes() {
		idx, err := s.Index(code)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	// lookup is case-insensitive on code
	idx, err := s.Index("eth_usd")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	assert.True(t, s.Contains("SOL_USD"))
	assert.False(t, s.Contains("DOGE_USD"))
}

func TestNewAssetSetRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := NewAssetSet("btc_usd", "BTC_USD")
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestNewAssetSetRejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := NewAssetSet()
	require.Error(t, err)
}

func TestIndexUnknownAsset(t *testing.T) {
	t.Parallel()

	s, err := NewAssetSet("btc_usd")
	require.NoError(t, err)

	_, err = s.Index("eth_usd")
	require.Error(t, err)

	var unknown *UnknownAssetError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "eth_usd", unknown.Code)
}

func TestAssetEqualByCode(t *testing.T) {
	t.Parallel()

	a := Asset{Name: "bitcoin", Code: "BTC_USD", Exchange: "binance", Multiplier: 1}
	b := Asset{Name: "btc", Code: "BTC_USD", Exchange: "kraken", Multiplier: 1}
	c := NewAsset("eth_usd")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
