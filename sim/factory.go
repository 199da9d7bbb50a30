package sim

import (
	"strings"

	"github.com/rustyeddy/marketsim/replay"
	"github.com/rustyeddy/marketsim/source"
)

// NewDataSource constructs any data source by type name: the replay
// types backed by an on-disk store, plus every synthetic generator the
// source package knows.
func NewDataSource(typeName string, cfg source.Config) (source.Source, error) {
	switch strings.ToLower(typeName) {
	case "replay_single":
		return replay.NewSingleFromConfig(cfg)
	case "replay_multi":
		return replay.NewMultiFromConfig(cfg)
	default:
		src, err := source.New(typeName, cfg)
		if err != nil {
			return nil, err
		}
		return src, nil
	}
}

// closeSource releases a replay source's database handle; synthetic
// sources hold no resources.
func closeSource(src source.Source) error {
	if c, ok := src.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
