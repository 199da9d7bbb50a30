package source

import (
	"math"
	"math/rand"

	"github.com/rustyeddy/marketsim/internal/wavetable"
	"github.com/rustyeddy/marketsim/internal/xrand"
	"github.com/rustyeddy/marketsim/market"
)

// SineDynamic is the periodic kernel with (freq, mu, amp) re-sampled
// inside configured [min, max, step] ranges. Re-sampling is decided once
// per elapsed sample window by the boolean gate; synthesis goes through a
// wavetable oscillator so frequent frequency changes stay band-limited
// and phase-continuous.
type SineDynamic struct {
	base
	freqRange [][3]float64
	muRange   [][3]float64
	ampRange  [][3]float64
	freq      []float64
	mu        []float64
	amp       []float64
	oscs      []*wavetable.Osc
	dX        float64

	sampleRate  int // steps per parameter-update window
	sinceUpdate int

	noise float64
	seed  int64
	rng   *rand.Rand
	gate  *xrand.BoolGen
}

func NewSineDynamic(freqRange, muRange, ampRange [][3]float64, dX, noise float64, seed int64) (*SineDynamic, error) {
	if err := checkRanges(freqRange, muRange, ampRange); err != nil {
		return nil, err
	}
	if dX <= 0 {
		return nil, market.Configf("dX must be positive, got %v", dX)
	}
	n := len(freqRange)
	b, err := newBase("sinedyn", n)
	if err != nil {
		return nil, err
	}
	s := &SineDynamic{
		base:       b,
		freqRange:  freqRange,
		muRange:    muRange,
		ampRange:   ampRange,
		freq:       make([]float64, n),
		mu:         make([]float64, n),
		amp:        make([]float64, n),
		oscs:       make([]*wavetable.Osc, n),
		dX:         dX,
		sampleRate: sampleRateFor(dX),
		noise:      noise,
		seed:       seed,
	}
	s.seedState()
	return s, nil
}

func NewSineDynamicFromConfig(cfg Config) (*SineDynamic, error) {
	freqRange, muRange, ampRange, dX, noise, seed, err := dynamicParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewSineDynamic(freqRange, muRange, ampRange, dX, noise, seed)
}

func dynamicParams(cfg Config) (freqRange, muRange, ampRange [][3]float64, dX, noise float64, seed int64, err error) {
	if freqRange, err = cfg.Triples("freqRange"); err != nil {
		return
	}
	if muRange, err = cfg.Triples("muRange"); err != nil {
		return
	}
	if ampRange, err = cfg.Triples("ampRange"); err != nil {
		return
	}
	if dX, err = cfg.Float("dX"); err != nil {
		return
	}
	if noise, err = cfg.FloatOr("noise", 0); err != nil {
		return
	}
	seed, err = cfg.Seed()
	return
}

func checkRanges(freqRange, muRange, ampRange [][3]float64) error {
	if len(muRange) != len(freqRange) || len(ampRange) != len(freqRange) {
		return market.Configf("range vectors have mismatched lengths: freq=%d mu=%d amp=%d",
			len(freqRange), len(muRange), len(ampRange))
	}
	if len(freqRange) == 0 {
		return market.Configf("range vectors are empty")
	}
	for i, rngs := range [][][3]float64{freqRange, muRange, ampRange} {
		for j, r := range rngs {
			if r[1] < r[0] {
				return market.Configf("range %d[%d]: max %v < min %v", i, j, r[1], r[0])
			}
		}
	}
	return nil
}

func sampleRateFor(dX float64) int {
	sr := int(math.Round(1 / dX))
	if sr < 1 {
		sr = 1
	}
	return sr
}

// sampleRange draws min + k*step on the step grid, or a continuous
// uniform value when step is zero.
func sampleRange(rng *rand.Rand, r [3]float64) float64 {
	min, max, step := r[0], r[1], r[2]
	if max <= min {
		return min
	}
	if step <= 0 {
		return min + rng.Float64()*(max-min)
	}
	n := int(math.Floor((max-min)/step)) + 1
	return min + float64(rng.Intn(n))*step
}

func (s *SineDynamic) seedState() {
	s.rng = rand.New(rand.NewSource(s.seed))
	s.gate = xrand.NewBoolGen(uint64(s.seed))
	for i := range s.freq {
		s.freq[i] = sampleRange(s.rng, s.freqRange[i])
		s.mu[i] = sampleRange(s.rng, s.muRange[i])
		s.amp[i] = sampleRange(s.rng, s.ampRange[i])
		s.oscs[i] = wavetable.NewOsc(s.freq[i] * s.dX)
	}
	s.sinceUpdate = 0
	s.t = 0
}

func (s *SineDynamic) updateParams() {
	for i := range s.freq {
		if !s.gate.Next() {
			continue
		}
		s.freq[i] = sampleRange(s.rng, s.freqRange[i])
		s.mu[i] = sampleRange(s.rng, s.muRange[i])
		s.amp[i] = sampleRange(s.rng, s.ampRange[i])
		s.oscs[i].SetFrequency(s.freq[i] * s.dX)
	}
}

func (s *SineDynamic) Advance() ([]float64, error) {
	if s.sinceUpdate >= s.sampleRate {
		s.updateParams()
		s.sinceUpdate = 0
	}
	s.sinceUpdate++
	for i := range s.data {
		v := s.mu[i] + s.amp[i]*s.oscs[i].Next()
		if s.noise != 0 {
			v += s.noise * s.rng.NormFloat64()
		}
		s.data[i] = v
	}
	s.t++
	return s.data, nil
}

func (s *SineDynamic) Reset() error {
	s.seedState()
	return nil
}
