// Package source implements the market-data generator family: synthetic
// stochastic processes sharing one contract, plus a compositor. File
// backed replay sources implementing the same contract live in the
// replay package.
package source

import (
	"math/rand"
	"strconv"

	"github.com/rustyeddy/marketsim/market"
)

// Source produces one price observation per step.
//
// Advance mutates internal state and returns the new observation by
// reference; the slice is valid until the next Advance. Consumers must
// treat it as read-only. The usage contract is single-writer: exactly one
// borrower calls Advance per step, everyone else reads Current.
type Source interface {
	NAssets() int
	// NFeatures is per-step observation width: equal to NAssets for tick
	// sources, larger for sources exposing multi-field rows.
	NFeatures() int
	Assets() *market.AssetSet

	// Advance computes the next observation. Finite sources return
	// market.ErrDataExhausted once past their configured bound.
	Advance() ([]float64, error)
	// Current returns the last computed observation without advancing.
	Current() []float64
	// CurrentPrices returns the per-asset price view of the last
	// observation (identical to Current for tick sources).
	CurrentPrices() []float64

	// Reset rewinds to the initial state. For stochastic generators this
	// restores starting values; for file-backed sources it is a true
	// cursor rewind.
	Reset() error

	// CurrentTime is the logical step count, or a real timestamp when
	// IsDateTime reports true.
	CurrentTime() uint64
	IsDateTime() bool
	// DataEnd is true only for finite sources once the bound is reached.
	DataEnd() bool
}

// base carries the state every synthetic generator shares.
type base struct {
	assets *market.AssetSet
	data   []float64
	t      uint64
}

func newBase(prefix string, n int) (base, error) {
	names := make([]string, n)
	for i := range names {
		names[i] = prefix + "_" + strconv.Itoa(i)
	}
	assets, err := market.NewAssetSet(names...)
	if err != nil {
		return base{}, err
	}
	return base{assets: assets, data: make([]float64, n)}, nil
}

func checkPerAsset(nAssets, got int, key string) error {
	if got != nAssets {
		return market.Configf("key %q: expected %d per-asset entries, got %d", key, nAssets, got)
	}
	return nil
}

func errRangeLens(lens ...int) error {
	return market.Configf("range vectors have mismatched lengths: %v", lens)
}

func randIntIn(rng *rand.Rand, r [2]int) int {
	if r[1] <= r[0] {
		return r[0]
	}
	return r[0] + rng.Intn(r[1]-r[0]+1)
}

func (b *base) NAssets() int             { return b.assets.Len() }
func (b *base) NFeatures() int           { return b.assets.Len() }
func (b *base) Assets() *market.AssetSet { return b.assets }
func (b *base) Current() []float64       { return b.data }
func (b *base) CurrentPrices() []float64 { return b.data }
func (b *base) CurrentTime() uint64      { return b.t }
func (b *base) IsDateTime() bool         { return false }
func (b *base) DataEnd() bool            { return false }
