package source

import (
	"strings"

	"github.com/rustyeddy/marketsim/market"
)

// New resolves a synthetic generator type name plus configuration to a
// constructed source. Unknown names are a configuration error. The
// file-backed replay types are resolved one level up, by the sim
// package's data-source factory.
func New(typeName string, cfg Config) (Source, error) {
	switch strings.ToLower(typeName) {
	case "sine", "synth":
		return NewSineFromConfig(cfg)
	case "sawtooth":
		return NewSawToothFromConfig(cfg)
	case "triangle":
		return NewTriangleFromConfig(cfg)
	case "sine_adder":
		return NewSineAdderFromConfig(cfg)
	case "sine_dynamic":
		return NewSineDynamicFromConfig(cfg)
	case "sine_dynamic_trend":
		return NewSineDynamicTrendFromConfig(cfg)
	case "gaussian":
		return NewGaussianFromConfig(cfg)
	case "ou":
		return NewOUFromConfig(cfg)
	case "ou_dynamic":
		return NewOUDynamicFromConfig(cfg)
	case "ou_pair":
		return NewOUPairFromConfig(cfg)
	case "coint_pair":
		return NewCointPairFromConfig(cfg)
	case "simple_trend":
		return NewSimpleTrendFromConfig(cfg)
	case "trend_ou":
		return NewTrendOUFromConfig(cfg)
	case "trendy_ou":
		return NewTrendyOUFromConfig(cfg)
	case "composite":
		return NewCompositeFromConfig(cfg)
	default:
		return nil, market.Configf("unknown data source type %q", typeName)
	}
}
