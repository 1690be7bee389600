package model

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/kdudkov/chinacoord/pkg/coord"
	"github.com/kdudkov/chinacoord/pkg/mapper"
)

const defaultMaxZoom = 18

var (
	ErrNoLayer   = errors.New("layer not found")
	ErrZoomRange = errors.New("zoom is out of layer range")
)

// Layer is a remote tile layer drawn in a known coordinate system.
type Layer struct {
	key         string
	name        string
	minZoom     int
	maxZoom     int
	tms         bool
	url         string
	serverParts []string
	ts          *mapper.TileSystem
}

func NewLayer(l *LayerDescription) (*Layer, error) {
	if l.Key == "" {
		return nil, errors.New("layer without key")
	}

	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(l.Url, p) {
			return nil, fmt.Errorf("layer %s: url has no %s", l.Key, p)
		}
	}

	if strings.Contains(l.Url, "{s}") && len(l.ServerParts) == 0 {
		return nil, fmt.Errorf("layer %s: url has {s} but no serverParts", l.Key)
	}

	if !l.System.Valid() {
		return nil, fmt.Errorf("layer %s: %w", l.Key, coord.ErrUnknownSystem)
	}

	maxZoom := l.MaxZoom
	if maxZoom == 0 {
		maxZoom = defaultMaxZoom
	}

	if l.MinZoom < 0 || maxZoom > mapper.MaxZoom || l.MinZoom > maxZoom {
		return nil, fmt.Errorf("layer %s: invalid zoom range %d:%d", l.Key, l.MinZoom, maxZoom)
	}

	name := l.Name
	if name == "" {
		name = l.Key
	}

	return &Layer{
		key:         l.Key,
		name:        name,
		minZoom:     l.MinZoom,
		maxZoom:     maxZoom,
		tms:         l.Tms,
		url:         l.Url,
		serverParts: l.ServerParts,
		ts:          mapper.NewTileSystem(l.System, l.Tms),
	}, nil
}

func (l *Layer) String() string {
	return fmt.Sprintf("%s %s %d:%d %v", l.name, l.ts.System(), l.minZoom, l.maxZoom, l.tms)
}

func (l *Layer) GetKey() string {
	return l.key
}

func (l *Layer) GetName() string {
	return l.name
}

func (l *Layer) GetMinZoom() int {
	return l.minZoom
}

func (l *Layer) GetMaxZoom() int {
	return l.maxZoom
}

func (l *Layer) IsTms() bool {
	return l.tms
}

func (l *Layer) System() coord.System {
	return l.ts.System()
}

func (l *Layer) CheckZoom(z int) error {
	if z < l.minZoom || z > l.maxZoom {
		return fmt.Errorf("%w: %d not in %d:%d", ErrZoomRange, z, l.minZoom, l.maxZoom)
	}

	return nil
}

// GetUrl returns the upstream url, y is in the layer's own row numbering.
func (l *Layer) GetUrl(z, x, y int) string {
	url := strings.ReplaceAll(l.url, "{z}", strconv.Itoa(z))
	url = strings.ReplaceAll(url, "{x}", strconv.Itoa(x))
	url = strings.ReplaceAll(url, "{y}", strconv.Itoa(y))

	if len(l.serverParts) > 0 {
		i := rand.Intn(len(l.serverParts))
		url = strings.ReplaceAll(url, "{s}", l.serverParts[i])
	}

	return url
}

// Locate finds the layer tile holding c, given in the from system.
func (l *Layer) Locate(c coord.Coordinate, from coord.System, zoom int) (mapper.Tile, string, error) {
	if err := l.CheckZoom(zoom); err != nil {
		return mapper.Tile{}, "", err
	}

	t, err := l.ts.Locate(c, from, zoom)
	if err != nil {
		return mapper.Tile{}, "", err
	}

	return t, l.GetUrl(t.Z, t.X, t.Y), nil
}

// TileCenter returns the centre of a layer tile in the to system.
func (l *Layer) TileCenter(t mapper.Tile, to coord.System) (coord.Coordinate, error) {
	return l.ts.TileCenter(t, to)
}
