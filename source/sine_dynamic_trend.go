package source

// SineDynamicTrend overlays SineDynamic with a persistent directional
// drift. Episodes start stochastically at a configured per-step
// probability; each episode draws its per-step increment from
// (0, trendIncr_i] and its length from trendRange_i.
type SineDynamicTrend struct {
	*SineDynamic
	trendRange [][2]int
	trendIncr  []float64
	trendProb  []float64

	trending  []bool
	remaining []int
	dY        []float64
	trendComp []float64
}

func NewSineDynamicTrend(freqRange, muRange, ampRange [][3]float64,
	trendRange [][2]int, trendIncr, trendProb []float64,
	dX, noise float64, seed int64) (*SineDynamicTrend, error) {

	sd, err := NewSineDynamic(freqRange, muRange, ampRange, dX, noise, seed)
	if err != nil {
		return nil, err
	}
	n := sd.NAssets()
	if err := checkPerAsset(n, len(trendRange), "trendRange"); err != nil {
		return nil, err
	}
	if err := checkPerAsset(n, len(trendIncr), "trendIncr"); err != nil {
		return nil, err
	}
	if err := checkPerAsset(n, len(trendProb), "trendProb"); err != nil {
		return nil, err
	}
	s := &SineDynamicTrend{
		SineDynamic: sd,
		trendRange:  trendRange,
		trendIncr:   trendIncr,
		trendProb:   trendProb,
		trending:    make([]bool, n),
		remaining:   make([]int, n),
		dY:          make([]float64, n),
		trendComp:   make([]float64, n),
	}
	return s, nil
}

func NewSineDynamicTrendFromConfig(cfg Config) (*SineDynamicTrend, error) {
	freqRange, muRange, ampRange, dX, noise, seed, err := dynamicParams(cfg)
	if err != nil {
		return nil, err
	}
	trendRange, err := cfg.IntPairs("trendRange")
	if err != nil {
		return nil, err
	}
	trendIncr, err := cfg.Floats("trendIncr")
	if err != nil {
		return nil, err
	}
	trendProb, err := cfg.Floats("trendProb")
	if err != nil {
		return nil, err
	}
	return NewSineDynamicTrend(freqRange, muRange, ampRange, trendRange, trendIncr, trendProb, dX, noise, seed)
}

func (s *SineDynamicTrend) Advance() ([]float64, error) {
	if _, err := s.SineDynamic.Advance(); err != nil {
		return nil, err
	}
	for i := range s.data {
		if s.trending[i] {
			s.trendComp[i] += s.dY[i]
			s.remaining[i]--
			if s.remaining[i] <= 0 {
				s.trending[i] = false
			}
		} else if s.rng.Float64() < s.trendProb[i] {
			s.trending[i] = true
			s.remaining[i] = randIntIn(s.rng, s.trendRange[i])
			s.dY[i] = s.rng.Float64() * s.trendIncr[i]
			if s.gate.Next() {
				s.dY[i] = -s.dY[i]
			}
		}
		s.data[i] += s.trendComp[i]
	}
	return s.data, nil
}

func (s *SineDynamicTrend) Reset() error {
	if err := s.SineDynamic.Reset(); err != nil {
		return err
	}
	for i := range s.trending {
		s.trending[i] = false
		s.remaining[i] = 0
		s.dY[i] = 0
		s.trendComp[i] = 0
	}
	return nil
}
