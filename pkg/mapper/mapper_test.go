package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/chinacoord/pkg/coord"
)

func TestLocateOsm(t *testing.T) {
	ts := NewTileSystem(coord.WGS84, false)

	tile, err := ts.Locate(coord.New(37.612228, 55.746819), coord.WGS84, 16)
	require.NoError(t, err)

	assert.Equal(t, Tile{X: 39615, Y: 20489, Z: 16, PX: 24, PY: 160}, tile)
	assert.Equal(t, "16/39615/20489", tile.String())
}

func TestLocateTms(t *testing.T) {
	xyz := NewTileSystem(coord.WGS84, false)
	tms := NewTileSystem(coord.WGS84, true)

	c := coord.New(37.612228, 55.746819)

	t1, err := xyz.Locate(c, coord.WGS84, 10)
	require.NoError(t, err)
	t2, err := tms.Locate(c, coord.WGS84, 10)
	require.NoError(t, err)

	assert.Equal(t, t1.X, t2.X)
	assert.Equal(t, t1.Flip().Y, t2.Y)
}

func TestLocateConverts(t *testing.T) {
	gcj := NewTileSystem(coord.GCJ02, false)
	wgs := NewTileSystem(coord.WGS84, false)

	c := coord.New(114.304569, 30.593354)

	for zoom := 0; zoom <= 18; zoom++ {
		t1, err := gcj.Locate(c, coord.WGS84, zoom)
		require.NoError(t, err)

		t2, err := wgs.Locate(coord.WGS84ToGCJ02(c), coord.WGS84, zoom)
		require.NoError(t, err)

		assert.Equal(t, t2, t1)
	}

	tile, err := gcj.Locate(c, coord.WGS84, 12)
	require.NoError(t, err)
	assert.Equal(t, 3348, tile.X)
	assert.Equal(t, 1682, tile.Y)
}

func TestLocateInvalidZoom(t *testing.T) {
	ts := NewTileSystem(coord.WGS84, false)

	_, err := ts.Locate(coord.New(0, 0), coord.WGS84, -1)
	assert.ErrorIs(t, err, ErrInvalidZoom)

	_, err = ts.Locate(coord.New(0, 0), coord.WGS84, MaxZoom+1)
	assert.ErrorIs(t, err, ErrInvalidZoom)
}

func TestLocateEdges(t *testing.T) {
	ts := NewTileSystem(coord.WGS84, false)

	tile, err := ts.Locate(coord.New(180, 89.9), coord.WGS84, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, tile.X)
	assert.Equal(t, 0, tile.Y)

	tile, err = ts.Locate(coord.New(-181, -89.9), coord.WGS84, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, tile.X)
	assert.Equal(t, 3, tile.Y)
}

func TestUnproject(t *testing.T) {
	for _, tms := range []bool{false, true} {
		ts := NewTileSystem(coord.GCJ02, tms)
		c := coord.New(116.413629, 39.905582)

		x, y, err := ts.Project(c, 14)
		require.NoError(t, err)

		r, err := ts.Unproject(x, y, 14)
		require.NoError(t, err)

		assert.InDelta(t, c.Lng, r.Lng, 1e-9)
		assert.InDelta(t, c.Lat, r.Lat, 1e-9)
	}
}

func TestTileCenter(t *testing.T) {
	ts := NewTileSystem(coord.BD09, false)
	c := coord.New(116.407387, 39.904179)

	tile, err := ts.Locate(c, coord.WGS84, 17)
	require.NoError(t, err)

	center, err := ts.TileCenter(tile, coord.WGS84)
	require.NoError(t, err)

	// a z17 tile is about 300 m wide
	assert.InDelta(t, c.Lng, center.Lng, 0.003)
	assert.InDelta(t, c.Lat, center.Lat, 0.003)

	back, err := ts.Locate(center, coord.WGS84, 17)
	require.NoError(t, err)
	assert.Equal(t, tile.X, back.X)
	assert.Equal(t, tile.Y, back.Y)
}

func TestProjectInvalidZoom(t *testing.T) {
	ts := NewTileSystem(coord.WGS84, false)

	for _, zoom := range []int{-1, -64, MaxZoom + 1, 64} {
		_, _, err := ts.Project(coord.New(116.4, 39.9), zoom)
		assert.ErrorIs(t, err, ErrInvalidZoom)

		_, err = ts.Unproject(128, 128, zoom)
		assert.ErrorIs(t, err, ErrInvalidZoom)

		_, err = ts.TileCenter(Tile{X: 1, Y: 1, Z: zoom}, coord.WGS84)
		assert.ErrorIs(t, err, ErrInvalidZoom)
	}
}
