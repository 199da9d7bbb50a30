package source

import (
	"math"
	"math/rand"

	"github.com/rustyeddy/marketsim/market"
)

// Gaussian emits independent draws mean_i + N(0, var_i) per asset.
type Gaussian struct {
	base
	mean []float64
	sd   []float64
	seed int64
	rng  *rand.Rand
}

func NewGaussian(mean, variance []float64, seed int64) (*Gaussian, error) {
	if err := sameLen(mean, variance); err != nil {
		return nil, err
	}
	for i, v := range variance {
		if v < 0 {
			return nil, market.Configf("var[%d] must be non-negative, got %v", i, v)
		}
	}
	b, err := newBase("gauss", len(mean))
	if err != nil {
		return nil, err
	}
	sd := make([]float64, len(variance))
	for i, v := range variance {
		sd[i] = math.Sqrt(v)
	}
	return &Gaussian{
		base: b,
		mean: append([]float64(nil), mean...),
		sd:   sd,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

func NewGaussianFromConfig(cfg Config) (*Gaussian, error) {
	mean, err := cfg.Floats("mean")
	if err != nil {
		return nil, err
	}
	variance, err := cfg.Floats("var")
	if err != nil {
		return nil, err
	}
	seed, err := cfg.Seed()
	if err != nil {
		return nil, err
	}
	return NewGaussian(mean, variance, seed)
}

func (g *Gaussian) Advance() ([]float64, error) {
	for i := range g.data {
		g.data[i] = g.mean[i] + g.sd[i]*g.rng.NormFloat64()
	}
	g.t++
	return g.data, nil
}

func (g *Gaussian) Reset() error {
	g.rng = rand.New(rand.NewSource(g.seed))
	g.t = 0
	return nil
}
