package source

import (
	"math/rand"

	"github.com/rustyeddy/marketsim/internal/xrand"
)

// OU is a discrete Ornstein-Uhlenbeck process per asset:
// x_{t+1} = x_t + theta*(mean - x_t) + phi*N(0,1), starting at mean.
type OU struct {
	base
	mean  []float64
	theta []float64
	phi   []float64
	x     []float64
	seed  int64
	rng   *rand.Rand
}

func NewOU(mean, theta, phi []float64, seed int64) (*OU, error) {
	if err := sameLen(mean, theta, phi); err != nil {
		return nil, err
	}
	b, err := newBase("ou", len(mean))
	if err != nil {
		return nil, err
	}
	o := &OU{
		base:  b,
		mean:  append([]float64(nil), mean...),
		theta: append([]float64(nil), theta...),
		phi:   append([]float64(nil), phi...),
		x:     append([]float64(nil), mean...),
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
	}
	return o, nil
}

func NewOUFromConfig(cfg Config) (*OU, error) {
	mean, theta, phi, seed, err := ouParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewOU(mean, theta, phi, seed)
}

func ouParams(cfg Config) (mean, theta, phi []float64, seed int64, err error) {
	if mean, err = cfg.Floats("mean"); err != nil {
		return
	}
	if theta, err = cfg.Floats("theta"); err != nil {
		return
	}
	if phi, err = cfg.Floats("phi"); err != nil {
		return
	}
	seed, err = cfg.Seed()
	return
}

func (o *OU) Advance() ([]float64, error) {
	for i := range o.x {
		o.x[i] += o.theta[i]*(o.mean[i]-o.x[i]) + o.phi[i]*o.rng.NormFloat64()
		o.data[i] = o.x[i]
	}
	o.t++
	return o.data, nil
}

func (o *OU) Reset() error {
	copy(o.x, o.mean)
	o.rng = rand.New(rand.NewSource(o.seed))
	o.t = 0
	return nil
}

// OUDynamic is OU with (mean, theta, phi) re-sampled from
// [min, max, step] ranges; the boolean gate decides per asset per step
// whether to re-sample.
type OUDynamic struct {
	base
	meanRange  [][3]float64
	thetaRange [][3]float64
	phiRange   [][3]float64
	mean       []float64
	theta      []float64
	phi        []float64
	x          []float64
	seed       int64
	rng        *rand.Rand
	gate       *xrand.BoolGen
}

func NewOUDynamic(meanRange, thetaRange, phiRange [][3]float64, seed int64) (*OUDynamic, error) {
	if len(thetaRange) != len(meanRange) || len(phiRange) != len(meanRange) {
		return nil, errRangeLens(len(meanRange), len(thetaRange), len(phiRange))
	}
	b, err := newBase("oudyn", len(meanRange))
	if err != nil {
		return nil, err
	}
	n := len(meanRange)
	o := &OUDynamic{
		base:       b,
		meanRange:  meanRange,
		thetaRange: thetaRange,
		phiRange:   phiRange,
		mean:       make([]float64, n),
		theta:      make([]float64, n),
		phi:        make([]float64, n),
		x:          make([]float64, n),
		seed:       seed,
	}
	o.seedState()
	return o, nil
}

func NewOUDynamicFromConfig(cfg Config) (*OUDynamic, error) {
	meanRange, err := cfg.Triples("meanRange")
	if err != nil {
		return nil, err
	}
	thetaRange, err := cfg.Triples("thetaRange")
	if err != nil {
		return nil, err
	}
	phiRange, err := cfg.Triples("phiRange")
	if err != nil {
		return nil, err
	}
	seed, err := cfg.Seed()
	if err != nil {
		return nil, err
	}
	return NewOUDynamic(meanRange, thetaRange, phiRange, seed)
}

func (o *OUDynamic) seedState() {
	o.rng = rand.New(rand.NewSource(o.seed))
	o.gate = xrand.NewBoolGen(uint64(o.seed))
	for i := range o.mean {
		o.mean[i] = sampleRange(o.rng, o.meanRange[i])
		o.theta[i] = sampleRange(o.rng, o.thetaRange[i])
		o.phi[i] = sampleRange(o.rng, o.phiRange[i])
		o.x[i] = o.mean[i]
	}
	o.t = 0
}

func (o *OUDynamic) Advance() ([]float64, error) {
	for i := range o.x {
		if o.gate.Next() {
			o.mean[i] = sampleRange(o.rng, o.meanRange[i])
			o.theta[i] = sampleRange(o.rng, o.thetaRange[i])
			o.phi[i] = sampleRange(o.rng, o.phiRange[i])
		}
		o.x[i] += o.theta[i]*(o.mean[i]-o.x[i]) + o.phi[i]*o.rng.NormFloat64()
		o.data[i] = o.x[i]
	}
	o.t++
	return o.data, nil
}

func (o *OUDynamic) Reset() error {
	o.seedState()
	return nil
}
