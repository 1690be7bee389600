package coord

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSystem = errors.New("unknown coordinate system")

// Coordinate is a (longitude, latitude) pair in degrees.
// It does not know which reference system it is expressed in, the caller tracks that.
type Coordinate struct {
	Lng float64 `json:"lng" yaml:"lng"`
	Lat float64 `json:"lat" yaml:"lat"`
}

func New(lng, lat float64) Coordinate {
	return Coordinate{Lng: lng, Lat: lat}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lng, c.Lat)
}

// System is a coordinate reference system used by chinese map providers.
type System int

const (
	WGS84 System = iota
	GCJ02
	BD09
)

var systemNames = map[System]string{
	WGS84: "wgs84",
	GCJ02: "gcj02",
	BD09:  "bd09",
}

var systemAliases = map[string]System{
	"wgs84": WGS84,
	"wgs":   WGS84,
	"gps":   WGS84,
	"gcj02": GCJ02,
	"gcj":   GCJ02,
	"mars":  GCJ02,
	"amap":  GCJ02,
	"gaode": GCJ02,
	"bd09":  BD09,
	"bd":    BD09,
	"baidu": BD09,
}

// Systems returns all supported systems in declaration order.
func Systems() []System {
	return []System{WGS84, GCJ02, BD09}
}

func ParseSystem(s string) (System, error) {
	if v, ok := systemAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, s)
}

func (s System) Valid() bool {
	_, ok := systemNames[s]
	return ok
}

func (s System) String() string {
	if n, ok := systemNames[s]; ok {
		return n
	}

	return fmt.Sprintf("System(%d)", int(s))
}

func (s System) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSystem, int(s))
	}

	return []byte(s.String()), nil
}

func (s *System) UnmarshalText(b []byte) error {
	v, err := ParseSystem(string(b))
	if err != nil {
		return err
	}

	*s = v

	return nil
}
