package source

import (
	"math/rand"

	"github.com/rustyeddy/marketsim/market"
)

// DefaultSeed seeds generator RNGs when a config supplies none, so a
// generator built twice from the same config replays the same sequence.
const DefaultSeed int64 = 1

// Config is the dynamically-typed construction mapping accepted by every
// generator, as decoded from YAML/JSON. Required keys that are missing or
// ill-typed fail construction with *market.ConfigError; nothing is
// silently defaulted.
type Config map[string]any

func (c Config) Has(key string) bool {
	_, ok := c[key]
	return ok
}

func (c Config) Float(key string) (float64, error) {
	v, ok := c[key]
	if !ok {
		return 0, market.Configf("missing required key %q", key)
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, market.Configf("key %q: expected number, got %T", key, v)
	}
	return f, nil
}

// FloatOr reads an optional scalar. A present but ill-typed value is
// still an error.
func (c Config) FloatOr(key string, def float64) (float64, error) {
	if !c.Has(key) {
		return def, nil
	}
	return c.Float(key)
}

func (c Config) Int(key string) (int, error) {
	f, err := c.Float(key)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func (c Config) IntOr(key string, def int) (int, error) {
	if !c.Has(key) {
		return def, nil
	}
	return c.Int(key)
}

func (c Config) Str(key string) (string, error) {
	v, ok := c[key]
	if !ok {
		return "", market.Configf("missing required key %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", market.Configf("key %q: expected string, got %T", key, v)
	}
	return s, nil
}

func (c Config) Floats(key string) ([]float64, error) {
	v, ok := c[key]
	if !ok {
		return nil, market.Configf("missing required key %q", key)
	}
	items, ok := v.([]any)
	if !ok {
		if fs, ok := v.([]float64); ok {
			return fs, nil
		}
		return nil, market.Configf("key %q: expected sequence of numbers, got %T", key, v)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return nil, market.Configf("key %q[%d]: expected number, got %T", key, i, item)
		}
		out[i] = f
	}
	return out, nil
}

func (c Config) Ints(key string) ([]int, error) {
	fs, err := c.Floats(key)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(fs))
	for i, f := range fs {
		out[i] = int(f)
	}
	return out, nil
}

func (c Config) Strs(key string) ([]string, error) {
	v, ok := c[key]
	if !ok {
		return nil, market.Configf("missing required key %q", key)
	}
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return ss, nil
		}
		return nil, market.Configf("key %q: expected sequence of strings, got %T", key, v)
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, market.Configf("key %q[%d]: expected string, got %T", key, i, item)
		}
		out[i] = s
	}
	return out, nil
}

// Triples reads a sequence of [min, max, step] triples.
func (c Config) Triples(key string) ([][3]float64, error) {
	rows, err := c.rows(key, 3)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(rows))
	for i, r := range rows {
		out[i] = [3]float64{r[0], r[1], r[2]}
	}
	return out, nil
}

// IntPairs reads a sequence of [min, max] integer pairs.
func (c Config) IntPairs(key string) ([][2]int, error) {
	rows, err := c.rows(key, 2)
	if err != nil {
		return nil, err
	}
	out := make([][2]int, len(rows))
	for i, r := range rows {
		out[i] = [2]int{int(r[0]), int(r[1])}
	}
	return out, nil
}

func (c Config) rows(key string, width int) ([][]float64, error) {
	v, ok := c[key]
	if !ok {
		return nil, market.Configf("missing required key %q", key)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, market.Configf("key %q: expected sequence of sequences, got %T", key, v)
	}
	out := make([][]float64, len(items))
	for i, item := range items {
		row, ok := item.([]any)
		if !ok {
			return nil, market.Configf("key %q[%d]: expected sequence, got %T", key, i, item)
		}
		if len(row) != width {
			return nil, market.Configf("key %q[%d]: expected %d elements, got %d", key, i, width, len(row))
		}
		fs := make([]float64, width)
		for j, cell := range row {
			f, ok := toFloat(cell)
			if !ok {
				return nil, market.Configf("key %q[%d][%d]: expected number, got %T", key, i, j, cell)
			}
			fs[j] = f
		}
		out[i] = fs
	}
	return out, nil
}

// Sub reads a nested mapping.
func (c Config) Sub(key string) (Config, error) {
	v, ok := c[key]
	if !ok {
		return nil, market.Configf("missing required key %q", key)
	}
	return toConfig(key, v)
}

// Subs reads a sequence of nested mappings.
func (c Config) Subs(key string) ([]Config, error) {
	v, ok := c[key]
	if !ok {
		return nil, market.Configf("missing required key %q", key)
	}
	items, ok := v.([]any)
	if !ok {
		return nil, market.Configf("key %q: expected sequence of mappings, got %T", key, v)
	}
	out := make([]Config, len(items))
	for i, item := range items {
		sub, err := toConfig(key, item)
		if err != nil {
			return nil, err
		}
		out[i] = sub
	}
	return out, nil
}

// Seed returns the optional "seed" key, or DefaultSeed.
func (c Config) Seed() (int64, error) {
	f, err := c.FloatOr("seed", float64(DefaultSeed))
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}

func (c Config) rng() (*rand.Rand, error) {
	seed, err := c.Seed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}

func toConfig(key string, v any) (Config, error) {
	switch m := v.(type) {
	case Config:
		return m, nil
	case map[string]any:
		return Config(m), nil
	default:
		return nil, market.Configf("key %q: expected mapping, got %T", key, v)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// sameLen verifies that per-asset parameter vectors agree in length.
func sameLen(first []float64, rest ...[]float64) error {
	for _, r := range rest {
		if len(r) != len(first) {
			return market.Configf("per-asset parameter vectors have mismatched lengths: %d vs %d",
				len(first), len(r))
		}
	}
	if len(first) == 0 {
		return market.Configf("per-asset parameter vectors are empty")
	}
	return nil
}
