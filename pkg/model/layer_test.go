package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdudkov/chinacoord/pkg/coord"
)

const layersYml = `
- name: Gaode
  key: amap
  maxZoom: 18
  url: https://webrd0{s}.is.autonavi.com/appmaptile?style=8&x={x}&y={y}&z={z}
  serverParts: ["1", "2", "3", "4"]
  system: gcj02
- key: osm
  minZoom: 2
  url: https://tile.openstreetmap.org/{z}/{x}/{y}.png
- key: tms
  tms: true
  url: http://localhost/{z}/{x}/{y}.png
  system: baidu
`

func TestParseDescriptions(t *testing.T) {
	res, err := ParseDescriptions([]byte(layersYml))
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.Equal(t, "amap", res[0].Key)
	assert.Equal(t, coord.GCJ02, res[0].System)
	assert.Equal(t, coord.WGS84, res[1].System)
	assert.Equal(t, coord.BD09, res[2].System)

	_, err = ParseDescriptions([]byte("- key: x\n  system: cgcs2000\n"))
	assert.ErrorIs(t, err, coord.ErrUnknownSystem)
}

func TestNewLayer(t *testing.T) {
	res, err := ParseDescriptions([]byte(layersYml))
	require.NoError(t, err)

	l, err := NewLayer(res[1])
	require.NoError(t, err)

	assert.Equal(t, "osm", l.GetName())
	assert.Equal(t, 2, l.GetMinZoom())
	assert.Equal(t, defaultMaxZoom, l.GetMaxZoom())
	assert.Equal(t, "https://tile.openstreetmap.org/3/1/2.png", l.GetUrl(3, 1, 2))

	bad := []*LayerDescription{
		{Url: "http://x/{z}/{x}/{y}"},
		{Key: "a", Url: "http://x/{z}/{x}"},
		{Key: "a", Url: "http://{s}/{z}/{x}/{y}"},
		{Key: "a", Url: "http://x/{z}/{x}/{y}", MinZoom: 10, MaxZoom: 5},
		{Key: "a", Url: "http://x/{z}/{x}/{y}", MaxZoom: 31},
		{Key: "a", Url: "http://x/{z}/{x}/{y}", System: coord.System(9)},
	}

	for _, d := range bad {
		_, err := NewLayer(d)
		assert.Error(t, err, "%+v", d)
	}

	_, err = NewLayer(&LayerDescription{Url: "http://x/{z}/{x}/{y}"})
	assert.EqualError(t, err, "layer without key")
}

func TestServerParts(t *testing.T) {
	res, err := ParseDescriptions([]byte(layersYml))
	require.NoError(t, err)

	l, err := NewLayer(res[0])
	require.NoError(t, err)

	u := l.GetUrl(12, 3348, 1682)
	assert.Regexp(t, `^https://webrd0[1-4]\.is\.autonavi\.com/appmaptile\?style=8&x=3348&y=1682&z=12$`, u)
}

func TestLocate(t *testing.T) {
	l, err := NewLayer(&LayerDescription{
		Key:     "amap",
		Url:     "https://amap/{z}/{x}/{y}",
		System:  coord.GCJ02,
		MinZoom: 3,
		MaxZoom: 18,
	})
	require.NoError(t, err)

	c := coord.New(114.304569, 30.593354)

	tile, url, err := l.Locate(c, coord.WGS84, 12)
	require.NoError(t, err)
	assert.Equal(t, 3348, tile.X)
	assert.Equal(t, 1682, tile.Y)
	assert.Equal(t, "https://amap/12/3348/1682", url)

	_, _, err = l.Locate(c, coord.WGS84, 2)
	assert.ErrorIs(t, err, ErrZoomRange)

	_, _, err = l.Locate(c, coord.WGS84, 19)
	assert.ErrorIs(t, err, ErrZoomRange)

	center, err := l.TileCenter(tile, coord.GCJ02)
	require.NoError(t, err)
	assert.InDelta(t, c.Lng, center.Lng, 0.1)
	assert.InDelta(t, c.Lat, center.Lat, 0.1)
}

func TestLocateTms(t *testing.T) {
	l, err := NewLayer(&LayerDescription{
		Key: "tms",
		Url: "http://localhost/{z}/{x}/{y}.png",
		Tms: true,
	})
	require.NoError(t, err)

	tile, url, err := l.Locate(coord.New(37.612228, 55.746819), coord.WGS84, 16)
	require.NoError(t, err)

	assert.Equal(t, 1<<16-20489-1, tile.Y)
	assert.Equal(t, "http://localhost/16/39615/45046.png", url)
}
