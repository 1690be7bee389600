package mapper

import (
	"errors"
	"fmt"
	"math"

	"github.com/kdudkov/chinacoord/pkg/coord"
)

const (
	MaxZoom = 30

	maxLat = 85.05112878
)

var ErrInvalidZoom = errors.New("invalid zoom")

// TileSystem is a web mercator tile grid drawn in some coordinate reference system.
// Gaode and Google China tiles are drawn in GCJ-02, Baidu uses BD-09.
type TileSystem struct {
	system   coord.System
	isTms    bool
	tileSize int
}

func NewTileSystem(system coord.System, tms bool) *TileSystem {
	return &TileSystem{
		system:   system,
		isTms:    tms,
		tileSize: 256,
	}
}

func (ts *TileSystem) System() coord.System {
	return ts.system
}

func (ts *TileSystem) size(zoom int) float64 {
	return float64(1 << zoom * ts.tileSize)
}

func checkZoom(zoom int) error {
	if zoom < 0 || zoom > MaxZoom {
		return fmt.Errorf("%w: %d", ErrInvalidZoom, zoom)
	}

	return nil
}

// Project returns pixel coordinates of a point already expressed in the grid system.
func (ts *TileSystem) Project(c coord.Coordinate, zoom int) (float64, float64, error) {
	if err := checkZoom(zoom); err != nil {
		return 0, 0, err
	}

	x, y := ts.project(c, zoom)

	return x, y, nil
}

func (ts *TileSystem) project(c coord.Coordinate, zoom int) (float64, float64) {
	size := ts.size(zoom)
	lat := math.Max(-maxLat, math.Min(maxLat, c.Lat))
	lon := math.Mod(c.Lng+180, 360)

	if lon < 0 {
		lon += 360
	}

	x := lon / 360 * size
	y := (1 - math.Log(math.Tan(coord.Radians(lat))+(1/math.Cos(coord.Radians(lat))))/math.Pi) / 2 * size

	if ts.isTms {
		y = size - y
	}

	return x, y
}

// Unproject is the inverse of Project.
func (ts *TileSystem) Unproject(x, y float64, zoom int) (coord.Coordinate, error) {
	if err := checkZoom(zoom); err != nil {
		return coord.Coordinate{}, err
	}

	return ts.unproject(x, y, zoom), nil
}

func (ts *TileSystem) unproject(x, y float64, zoom int) coord.Coordinate {
	size := ts.size(zoom)

	if ts.isTms {
		y = size - y
	}

	lon := x/size*360.0 - 180.0
	lat := coord.Degrees(math.Atan(math.Sinh(math.Pi * (1 - 2*y/size))))

	return coord.New(lon, lat)
}

// Locate converts c from the given system into the grid system and returns the tile holding it.
func (ts *TileSystem) Locate(c coord.Coordinate, from coord.System, zoom int) (Tile, error) {
	if err := checkZoom(zoom); err != nil {
		return Tile{}, err
	}

	x, y := ts.project(coord.Transform(c, from, ts.system), zoom)

	n := 1 << zoom
	px, py := clamp(int(math.Floor(x)), n*ts.tileSize), clamp(int(math.Floor(y)), n*ts.tileSize)

	return Tile{
		X:  px / ts.tileSize,
		Y:  py / ts.tileSize,
		Z:  zoom,
		PX: px % ts.tileSize,
		PY: py % ts.tileSize,
	}, nil
}

// TileCenter returns the centre of the tile expressed in the target system.
func (ts *TileSystem) TileCenter(t Tile, to coord.System) (coord.Coordinate, error) {
	half := float64(ts.tileSize) / 2

	c, err := ts.Unproject(float64(t.X*ts.tileSize)+half, float64(t.Y*ts.tileSize)+half, t.Z)
	if err != nil {
		return coord.Coordinate{}, err
	}

	return coord.Transform(c, ts.system, to), nil
}

func clamp(v, size int) int {
	return max(0, min(v, size-1))
}
