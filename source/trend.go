package source

import (
	"math/rand"

	"github.com/rustyeddy/marketsim/market"
)

// trendState tracks per-asset trend episodes: while trending the price
// drifts by a per-episode increment each step; episodes start with a
// configured per-step probability when idle and last a duration drawn
// from [minPeriod, maxPeriod].
type trendState struct {
	trendProb []float64
	minPeriod []int
	maxPeriod []int
	dYMin     []float64
	dYMax     []float64

	trending  []bool
	remaining []int
	dY        []float64
}

func newTrendState(trendProb []float64, minPeriod, maxPeriod []int, dYMin, dYMax []float64) (*trendState, error) {
	n := len(trendProb)
	if n == 0 {
		return nil, market.Configf("per-asset parameter vectors are empty")
	}
	if len(minPeriod) != n || len(maxPeriod) != n {
		return nil, market.Configf("period vectors have mismatched lengths: prob=%d min=%d max=%d",
			n, len(minPeriod), len(maxPeriod))
	}
	if err := sameLen(trendProb, dYMin, dYMax); err != nil {
		return nil, err
	}
	return &trendState{
		trendProb: trendProb,
		minPeriod: minPeriod,
		maxPeriod: maxPeriod,
		dYMin:     dYMin,
		dYMax:     dYMax,
		trending:  make([]bool, n),
		remaining: make([]int, n),
		dY:        make([]float64, n),
	}, nil
}

// step updates episode state for asset i and reports whether a trend
// episode just ended this step.
func (ts *trendState) step(rng *rand.Rand, i int) (ended bool) {
	if ts.trending[i] {
		ts.remaining[i]--
		if ts.remaining[i] <= 0 {
			ts.trending[i] = false
			return true
		}
		return false
	}
	if rng.Float64() < ts.trendProb[i] {
		ts.trending[i] = true
		ts.remaining[i] = randIntIn(rng, [2]int{ts.minPeriod[i], ts.maxPeriod[i]})
		mag := ts.dYMin[i] + rng.Float64()*(ts.dYMax[i]-ts.dYMin[i])
		if rng.Float64() < 0.5 {
			mag = -mag
		}
		ts.dY[i] = mag
	}
	return false
}

func (ts *trendState) reset() {
	for i := range ts.trending {
		ts.trending[i] = false
		ts.remaining[i] = 0
		ts.dY[i] = 0
	}
}

// SimpleTrend is a noisy random level subject to trend episodes.
type SimpleTrend struct {
	base
	*trendState
	noise []float64
	start []float64
	x     []float64
	seed  int64
	rng   *rand.Rand
}

func NewSimpleTrend(trendProb []float64, minPeriod, maxPeriod []int,
	noise, dYMin, dYMax, start []float64, seed int64) (*SimpleTrend, error) {

	ts, err := newTrendState(trendProb, minPeriod, maxPeriod, dYMin, dYMax)
	if err != nil {
		return nil, err
	}
	if err := sameLen(trendProb, noise, start); err != nil {
		return nil, err
	}
	b, err := newBase("trend", len(trendProb))
	if err != nil {
		return nil, err
	}
	s := &SimpleTrend{
		base:       b,
		trendState: ts,
		noise:      append([]float64(nil), noise...),
		start:      append([]float64(nil), start...),
		x:          append([]float64(nil), start...),
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
	}
	return s, nil
}

func NewSimpleTrendFromConfig(cfg Config) (*SimpleTrend, error) {
	p, err := trendParams(cfg)
	if err != nil {
		return nil, err
	}
	noise, err := cfg.Floats("noise")
	if err != nil {
		return nil, err
	}
	return NewSimpleTrend(p.trendProb, p.minPeriod, p.maxPeriod, noise, p.dYMin, p.dYMax, p.start, p.seed)
}

type trendCfg struct {
	trendProb            []float64
	minPeriod, maxPeriod []int
	dYMin, dYMax         []float64
	start                []float64
	seed                 int64
}

func trendParams(cfg Config) (trendCfg, error) {
	var p trendCfg
	var err error
	if p.trendProb, err = cfg.Floats("trendProb"); err != nil {
		return p, err
	}
	if p.minPeriod, err = cfg.Ints("minPeriod"); err != nil {
		return p, err
	}
	if p.maxPeriod, err = cfg.Ints("maxPeriod"); err != nil {
		return p, err
	}
	if p.dYMin, err = cfg.Floats("dYMin"); err != nil {
		return p, err
	}
	if p.dYMax, err = cfg.Floats("dYMax"); err != nil {
		return p, err
	}
	if p.start, err = cfg.Floats("start"); err != nil {
		return p, err
	}
	p.seed, err = cfg.Seed()
	return p, err
}

func (s *SimpleTrend) Advance() ([]float64, error) {
	for i := range s.x {
		s.step(s.rng, i)
		if s.trending[i] {
			s.x[i] += s.dY[i]
		}
		if s.noise[i] != 0 {
			s.x[i] += s.noise[i] * s.rng.NormFloat64()
		}
		s.data[i] = s.x[i]
	}
	s.t++
	return s.data, nil
}

func (s *SimpleTrend) Reset() error {
	copy(s.x, s.start)
	s.trendState.reset()
	s.rng = rand.New(rand.NewSource(s.seed))
	s.t = 0
	return nil
}
