package domain

import "errors"

var ErrNotFound = errors.New("not found")

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is one nearby-search candidate. Any field except Location may be
// absent; a nil PriceLevel means the price level is unknown.
type Place struct {
	Name       *string
	Rating     *float64
	PriceLevel *int
	Vicinity   *string
	Location   Coords
}

type Label int

const (
	LabelNone Label = iota
	LabelSafe
	LabelRated
)

func (l Label) String() string {
	switch l {
	case LabelSafe:
		return "safe"
	case LabelRated:
		return "rated"
	}
	return "none"
}
