package source

import "math/rand"

const pairStart = 100. // starting level for the random-walk leg

// OUPair models a cointegrated pair: the first series is a driftless
// random walk, the second equals the first plus an OU-distributed spread.
type OUPair struct {
	base
	theta  float64
	phi    float64
	noise  float64
	walk   float64
	spread float64
	seed   int64
	rng    *rand.Rand
}

func NewOUPair(theta, phi, noise float64, seed int64) (*OUPair, error) {
	b, err := newBase("oupair", 2)
	if err != nil {
		return nil, err
	}
	p := &OUPair{base: b, theta: theta, phi: phi, noise: noise, seed: seed}
	p.seedState()
	return p, nil
}

func NewOUPairFromConfig(cfg Config) (*OUPair, error) {
	theta, phi, noise, seed, err := pairParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewOUPair(theta, phi, noise, seed)
}

func pairParams(cfg Config) (theta, phi, noise float64, seed int64, err error) {
	if theta, err = cfg.Float("theta"); err != nil {
		return
	}
	if phi, err = cfg.Float("phi"); err != nil {
		return
	}
	if noise, err = cfg.Float("noise"); err != nil {
		return
	}
	seed, err = cfg.Seed()
	return
}

func (p *OUPair) seedState() {
	p.rng = rand.New(rand.NewSource(p.seed))
	p.walk = pairStart
	p.spread = 0
	p.t = 0
}

func (p *OUPair) Advance() ([]float64, error) {
	p.walk += p.noise * p.rng.NormFloat64()
	p.spread += p.theta*(0-p.spread) + p.phi*p.rng.NormFloat64()
	p.data[0] = p.walk
	p.data[1] = p.walk + p.spread
	p.t++
	return p.data, nil
}

func (p *OUPair) Reset() error {
	p.seedState()
	return nil
}

// CointPair models the stationary spread directly and splits it
// symmetrically across the two legs of a shared random walk.
type CointPair struct {
	base
	theta  float64
	phi    float64
	noise  float64
	walk   float64
	spread float64
	seed   int64
	rng    *rand.Rand
}

func NewCointPair(theta, phi, noise float64, seed int64) (*CointPair, error) {
	b, err := newBase("coint", 2)
	if err != nil {
		return nil, err
	}
	p := &CointPair{base: b, theta: theta, phi: phi, noise: noise, seed: seed}
	p.seedState()
	return p, nil
}

func NewCointPairFromConfig(cfg Config) (*CointPair, error) {
	theta, phi, noise, seed, err := pairParams(cfg)
	if err != nil {
		return nil, err
	}
	return NewCointPair(theta, phi, noise, seed)
}

func (p *CointPair) seedState() {
	p.rng = rand.New(rand.NewSource(p.seed))
	p.walk = pairStart
	p.spread = 0
	p.t = 0
}

func (p *CointPair) Advance() ([]float64, error) {
	p.walk += p.noise * p.rng.NormFloat64()
	p.spread += p.theta*(0-p.spread) + p.phi*p.rng.NormFloat64()
	p.data[0] = p.walk + p.spread/2
	p.data[1] = p.walk - p.spread/2
	p.t++
	return p.data, nil
}

func (p *CointPair) Reset() error {
	p.seedState()
	return nil
}
