package source

import (
	"math"
	"math/rand"
)

// TrendOU alternates per asset between trend episodes and OU mean
// reversion toward an exponentially smoothed baseline. While trending the
// price drifts with additive trend noise; while idle it reverts toward
// the EMA of its own path. When an episode ends the reversion anchor is
// re-seated at the current price so the trend's gains are not unwound in
// one jump.
type TrendOU struct {
	base
	*trendState
	theta      []float64
	phi        []float64
	noiseTrend []float64
	emaAlpha   []float64
	start      []float64

	x      []float64
	ema    []float64
	ouMean []float64
	seed   int64
	rng    *rand.Rand
}

func NewTrendOU(trendProb []float64, minPeriod, maxPeriod []int,
	dYMin, dYMax, start, theta, phi, noiseVar, emaAlpha []float64,
	seed int64) (*TrendOU, error) {

	ts, err := newTrendState(trendProb, minPeriod, maxPeriod, dYMin, dYMax)
	if err != nil {
		return nil, err
	}
	if err := sameLen(trendProb, start, theta, phi, noiseVar, emaAlpha); err != nil {
		return nil, err
	}
	b, err := newBase("trendou", len(trendProb))
	if err != nil {
		return nil, err
	}
	noiseTrend := make([]float64, len(noiseVar))
	for i, v := range noiseVar {
		noiseTrend[i] = math.Sqrt(v)
	}
	s := &TrendOU{
		base:       b,
		trendState: ts,
		theta:      append([]float64(nil), theta...),
		phi:        append([]float64(nil), phi...),
		noiseTrend: noiseTrend,
		emaAlpha:   append([]float64(nil), emaAlpha...),
		start:      append([]float64(nil), start...),
		x:          append([]float64(nil), start...),
		ema:        append([]float64(nil), start...),
		ouMean:     append([]float64(nil), start...),
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
	}
	return s, nil
}

func NewTrendOUFromConfig(cfg Config) (*TrendOU, error) {
	p, err := trendParams(cfg)
	if err != nil {
		return nil, err
	}
	theta, phi, noiseVar, emaAlpha, err := ouBlendParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewTrendOU(p.trendProb, p.minPeriod, p.maxPeriod,
		p.dYMin, p.dYMax, p.start, theta, phi, noiseVar, emaAlpha, p.seed)
}

func ouBlendParams(cfg Config) (theta, phi, noiseVar, emaAlpha []float64, err error) {
	if theta, err = cfg.Floats("theta"); err != nil {
		return
	}
	if phi, err = cfg.Floats("phi"); err != nil {
		return
	}
	if noiseVar, err = cfg.Floats("noiseVar"); err != nil {
		return
	}
	emaAlpha, err = cfg.Floats("emaAlpha")
	return
}

func (s *TrendOU) Advance() ([]float64, error) {
	for i := range s.x {
		ended := s.step(s.rng, i)
		if ended {
			s.ouMean[i] = s.x[i]
		}
		if s.trending[i] {
			s.x[i] += s.dY[i] + s.noiseTrend[i]*s.rng.NormFloat64()
		} else {
			s.ouMean[i] = s.ema[i]
			s.x[i] += s.theta[i]*(s.ouMean[i]-s.x[i]) + s.phi[i]*s.rng.NormFloat64()
		}
		a := s.emaAlpha[i]
		s.ema[i] = a*s.x[i] + (1-a)*s.ema[i]
		s.data[i] = s.x[i]
	}
	s.t++
	return s.data, nil
}

func (s *TrendOU) Reset() error {
	copy(s.x, s.start)
	copy(s.ema, s.start)
	copy(s.ouMean, s.start)
	s.trendState.reset()
	s.rng = rand.New(rand.NewSource(s.seed))
	s.t = 0
	return nil
}

// TrendyOU blends all three components at once: the emitted price is the
// EMA baseline plus an OU excursion around it plus the accumulated trend
// component. When an episode ends the trend component is folded into the
// baseline.
type TrendyOU struct {
	base
	*trendState
	theta      []float64
	phi        []float64
	noiseTrend []float64
	emaAlpha   []float64
	start      []float64

	ema       []float64
	ouComp    []float64
	trendComp []float64
	seed      int64
	rng       *rand.Rand
}

func NewTrendyOU(trendProb []float64, minPeriod, maxPeriod []int,
	dYMin, dYMax, start, theta, phi, noiseVar, emaAlpha []float64,
	seed int64) (*TrendyOU, error) {

	ts, err := newTrendState(trendProb, minPeriod, maxPeriod, dYMin, dYMax)
	if err != nil {
		return nil, err
	}
	if err := sameLen(trendProb, start, theta, phi, noiseVar, emaAlpha); err != nil {
		return nil, err
	}
	b, err := newBase("trendyou", len(trendProb))
	if err != nil {
		return nil, err
	}
	noiseTrend := make([]float64, len(noiseVar))
	for i, v := range noiseVar {
		noiseTrend[i] = math.Sqrt(v)
	}
	s := &TrendyOU{
		base:       b,
		trendState: ts,
		theta:      append([]float64(nil), theta...),
		phi:        append([]float64(nil), phi...),
		noiseTrend: noiseTrend,
		emaAlpha:   append([]float64(nil), emaAlpha...),
		start:      append([]float64(nil), start...),
		ema:        append([]float64(nil), start...),
		ouComp:     make([]float64, len(start)),
		trendComp:  make([]float64, len(start)),
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
	}
	return s, nil
}

func NewTrendyOUFromConfig(cfg Config) (*TrendyOU, error) {
	p, err := trendParams(cfg)
	if err != nil {
		return nil, err
	}
	theta, phi, noiseVar, emaAlpha, err := ouBlendParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewTrendyOU(p.trendProb, p.minPeriod, p.maxPeriod,
		p.dYMin, p.dYMax, p.start, theta, phi, noiseVar, emaAlpha, p.seed)
}

func (s *TrendyOU) Advance() ([]float64, error) {
	for i := range s.data {
		ended := s.step(s.rng, i)
		if ended {
			s.ema[i] += s.trendComp[i]
			s.trendComp[i] = 0
		}
		if s.trending[i] {
			s.trendComp[i] += s.dY[i] + s.noiseTrend[i]*s.rng.NormFloat64()
		}
		s.ouComp[i] += s.theta[i]*(0-s.ouComp[i]) + s.phi[i]*s.rng.NormFloat64()

		price := s.ema[i] + s.ouComp[i] + s.trendComp[i]
		a := s.emaAlpha[i]
		s.ema[i] = a*price + (1-a)*s.ema[i]
		s.data[i] = price
	}
	s.t++
	return s.data, nil
}

func (s *TrendyOU) Reset() error {
	copy(s.ema, s.start)
	for i := range s.ouComp {
		s.ouComp[i] = 0
		s.trendComp[i] = 0
	}
	s.trendState.reset()
	s.rng = rand.New(rand.NewSource(s.seed))
	s.t = 0
	return nil
}
