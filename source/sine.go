package source

import (
	"math"
	"math/rand"
)

// periodic carries the parameter block shared by the fixed-parameter
// wave generators: one wave per asset, evaluated at x which starts at
// phase and advances by dX each step.
type periodic struct {
	base
	freq  []float64
	mu    []float64
	amp   []float64
	phase []float64
	x     []float64
	dX    float64
	noise float64
	seed  int64
	rng   *rand.Rand
}

func newPeriodic(prefix string, freq, mu, amp, phase []float64, dX, noise float64, seed int64) (periodic, error) {
	if err := sameLen(freq, mu, amp, phase); err != nil {
		return periodic{}, err
	}
	b, err := newBase(prefix, len(freq))
	if err != nil {
		return periodic{}, err
	}
	p := periodic{
		base:  b,
		freq:  append([]float64(nil), freq...),
		mu:    append([]float64(nil), mu...),
		amp:   append([]float64(nil), amp...),
		phase: append([]float64(nil), phase...),
		x:     append([]float64(nil), phase...),
		dX:    dX,
		noise: noise,
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
	}
	return p, nil
}

func periodicFromConfig(prefix string, cfg Config) (periodic, error) {
	freq, err := cfg.Floats("freq")
	if err != nil {
		return periodic{}, err
	}
	mu, err := cfg.Floats("mu")
	if err != nil {
		return periodic{}, err
	}
	amp, err := cfg.Floats("amp")
	if err != nil {
		return periodic{}, err
	}
	phase, err := cfg.Floats("phase")
	if err != nil {
		return periodic{}, err
	}
	dX, err := cfg.Float("dX")
	if err != nil {
		return periodic{}, err
	}
	noise, err := cfg.FloatOr("noise", 0)
	if err != nil {
		return periodic{}, err
	}
	seed, err := cfg.Seed()
	if err != nil {
		return periodic{}, err
	}
	return newPeriodic(prefix, freq, mu, amp, phase, dX, noise, seed)
}

func (p *periodic) Reset() error {
	copy(p.x, p.phase)
	p.t = 0
	p.rng = rand.New(rand.NewSource(p.seed))
	return nil
}

func (p *periodic) addNoise(v float64) float64 {
	if p.noise == 0 {
		return v
	}
	return v + p.noise*p.rng.NormFloat64()
}

// Sine emits mu_i + amp_i*sin(2π*freq_i*x_i) per asset.
type Sine struct {
	periodic
}

func NewSine(freq, mu, amp, phase []float64, dX, noise float64, seed int64) (*Sine, error) {
	p, err := newPeriodic("sine", freq, mu, amp, phase, dX, noise, seed)
	if err != nil {
		return nil, err
	}
	return &Sine{periodic: p}, nil
}

func NewSineFromConfig(cfg Config) (*Sine, error) {
	p, err := periodicFromConfig("sine", cfg)
	if err != nil {
		return nil, err
	}
	return &Sine{periodic: p}, nil
}

func (s *Sine) Advance() ([]float64, error) {
	for i := range s.data {
		s.data[i] = s.addNoise(s.mu[i] + s.amp[i]*math.Sin(2*math.Pi*s.freq[i]*s.x[i]))
		s.x[i] += s.dX
	}
	s.t++
	return s.data, nil
}

// SawTooth emits a rising ramp wave with the same parameter block.
type SawTooth struct {
	periodic
}

func NewSawTooth(freq, mu, amp, phase []float64, dX, noise float64, seed int64) (*SawTooth, error) {
	p, err := newPeriodic("saw", freq, mu, amp, phase, dX, noise, seed)
	if err != nil {
		return nil, err
	}
	return &SawTooth{periodic: p}, nil
}

func NewSawToothFromConfig(cfg Config) (*SawTooth, error) {
	p, err := periodicFromConfig("saw", cfg)
	if err != nil {
		return nil, err
	}
	return &SawTooth{periodic: p}, nil
}

func (s *SawTooth) Advance() ([]float64, error) {
	for i := range s.data {
		xf := s.freq[i] * s.x[i]
		s.data[i] = s.addNoise(s.mu[i] + 2*s.amp[i]*(xf-math.Floor(0.5+xf)))
		s.x[i] += s.dX
	}
	s.t++
	return s.data, nil
}

// Triangle emits a triangle wave with the same parameter block.
type Triangle struct {
	periodic
}

func NewTriangle(freq, mu, amp, phase []float64, dX, noise float64, seed int64) (*Triangle, error) {
	p, err := newPeriodic("tri", freq, mu, amp, phase, dX, noise, seed)
	if err != nil {
		return nil, err
	}
	return &Triangle{periodic: p}, nil
}

func NewTriangleFromConfig(cfg Config) (*Triangle, error) {
	p, err := periodicFromConfig("tri", cfg)
	if err != nil {
		return nil, err
	}
	return &Triangle{periodic: p}, nil
}

func (s *Triangle) Advance() ([]float64, error) {
	for i := range s.data {
		arg := math.Sin(2 * math.Pi * s.freq[i] * s.x[i])
		s.data[i] = s.addNoise(s.mu[i] + s.amp[i]*(2/math.Pi)*math.Asin(arg))
		s.x[i] += s.dX
	}
	s.t++
	return s.data, nil
}
