package market

import (
	"errors"
	"fmt"
)

// ErrDataExhausted is returned by a finite data source when Advance is
// called past its configured end bound.
var ErrDataExhausted = errors.New("data source exhausted")

// ConfigError reports an invalid construction configuration: a missing
// required key, a wrongly typed value, or mismatched per-asset vectors.
// Construction that returns a ConfigError yields no usable object.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

func Configf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// DimensionError reports an asset-indexed input whose length does not
// match the configured asset set.
type DimensionError struct {
	Want, Got int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("dimension mismatch: want %d, got %d", e.Want, e.Got)
}

// UnknownAssetError reports a reference to an asset code absent from the
// bound asset set.
type UnknownAssetError struct {
	Code string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("unknown asset %q", e.Code)
}
