package market

import "strings"

// Asset identifies one tradeable instrument. Equality is by Code: two
// assets with the same code are the same asset regardless of venue.
type Asset struct {
	Name       string
	Exchange   string
	Code       string
	Multiplier float64 // contract multiplier, 1 for spot
}

func NewAsset(name string) Asset {
	return Asset{
		Name:       name,
		Code:       strings.ToUpper(name),
		Multiplier: 1,
	}
}

func (a Asset) Equal(b Asset) bool { return a.Code == b.Code }

// AssetSet is an ordered, duplicate-free sequence of assets. The
// positional index of each asset is fixed for the set's lifetime and is
// what ledgers and price vectors are keyed by.
type AssetSet struct {
	assets []Asset
	index  map[string]int
}

// NewAssetSet builds a set from asset names/codes.
func NewAssetSet(names ...string) (*AssetSet, error) {
	assets := make([]Asset, 0, len(names))
	for _, n := range names {
		assets = append(assets, NewAsset(n))
	}
	return NewAssetSetFrom(assets)
}

// NewAssetSetFrom builds a set from fully specified assets. Duplicate
// codes are a configuration error.
func NewAssetSetFrom(assets []Asset) (*AssetSet, error) {
	s := &AssetSet{
		assets: make([]Asset, 0, len(assets)),
		index:  make(map[string]int, len(assets)),
	}
	for _, a := range assets {
		if a.Code == "" {
			return nil, Configf("asset %q has empty code", a.Name)
		}
		if _, dup := s.index[a.Code]; dup {
			return nil, Configf("duplicate asset code %q", a.Code)
		}
		if a.Multiplier == 0 {
			a.Multiplier = 1
		}
		s.index[a.Code] = len(s.assets)
		s.assets = append(s.assets, a)
	}
	if len(s.assets) == 0 {
		return nil, Configf("asset set is empty")
	}
	return s, nil
}

func (s *AssetSet) Len() int { return len(s.assets) }

// At returns the asset at positional index i.
func (s *AssetSet) At(i int) Asset { return s.assets[i] }

// Index resolves an asset code to its positional index.
func (s *AssetSet) Index(code string) (int, error) {
	i, ok := s.index[strings.ToUpper(code)]
	if !ok {
		return 0, &UnknownAssetError{Code: code}
	}
	return i, nil
}

func (s *AssetSet) Contains(code string) bool {
	_, ok := s.index[strings.ToUpper(code)]
	return ok
}

// Codes returns the asset codes in positional order.
func (s *AssetSet) Codes() []string {
	codes := make([]string, len(s.assets))
	for i, a := range s.assets {
		codes[i] = a.Code
	}
	return codes
}

// Assets returns a copy of the underlying slice.
func (s *AssetSet) Assets() []Asset {
	out := make([]Asset, len(s.assets))
	copy(out, s.assets)
	return out
}
