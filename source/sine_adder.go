package source

import "math"

// SineAdder sums every configured wave component into a single asset's
// composite waveform. The parameter vectors describe components, not
// assets: NAssets is always 1.
type SineAdder struct {
	periodic
}

func NewSineAdder(freq, mu, amp, phase []float64, dX, noise float64, seed int64) (*SineAdder, error) {
	p, err := newPeriodic("sineadd", freq, mu, amp, phase, dX, noise, seed)
	if err != nil {
		return nil, err
	}
	s := &SineAdder{periodic: p}
	// one composite output series
	b, err := newBase("sineadd", 1)
	if err != nil {
		return nil, err
	}
	s.base = b
	return s, nil
}

func NewSineAdderFromConfig(cfg Config) (*SineAdder, error) {
	freq, err := cfg.Floats("freq")
	if err != nil {
		return nil, err
	}
	mu, err := cfg.Floats("mu")
	if err != nil {
		return nil, err
	}
	amp, err := cfg.Floats("amp")
	if err != nil {
		return nil, err
	}
	phase, err := cfg.Floats("phase")
	if err != nil {
		return nil, err
	}
	dX, err := cfg.Float("dX")
	if err != nil {
		return nil, err
	}
	noise, err := cfg.FloatOr("noise", 0)
	if err != nil {
		return nil, err
	}
	seed, err := cfg.Seed()
	if err != nil {
		return nil, err
	}
	return NewSineAdder(freq, mu, amp, phase, dX, noise, seed)
}

func (s *SineAdder) Advance() ([]float64, error) {
	sum := 0.
	for i := range s.freq {
		sum += s.mu[i] + s.amp[i]*math.Sin(2*math.Pi*s.freq[i]*s.x[i])
		s.x[i] += s.dX
	}
	s.data[0] = s.addNoise(sum)
	s.t++
	return s.data, nil
}
