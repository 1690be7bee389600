package coord

import "math"

const (
	exactPrecision = 1e-9
	exactMaxIter   = 32
)

// WGS84ToGCJ02 applies the GCJ-02 offset. Points outside China are returned unchanged.
func WGS84ToGCJ02(c Coordinate) Coordinate {
	if OutOfChina(c.Lng, c.Lat) {
		return c
	}

	dLng, dLat := delta(c.Lng, c.Lat)

	return Coordinate{Lng: c.Lng + dLng, Lat: c.Lat + dLat}
}

// GCJ02ToWGS84 removes the offset evaluated at the GCJ-02 point itself.
// This is a first order inverse, the error is about 1-2 meters.
// Use GCJ02ToWGS84Exact for a precise result.
func GCJ02ToWGS84(c Coordinate) Coordinate {
	if OutOfChina(c.Lng, c.Lat) {
		return c
	}

	dLng, dLat := delta(c.Lng, c.Lat)

	return Coordinate{Lng: c.Lng - dLng, Lat: c.Lat - dLat}
}

// GCJ02ToWGS84Exact inverts WGS84ToGCJ02 by fixed point iteration.
func GCJ02ToWGS84Exact(c Coordinate) Coordinate {
	if OutOfChina(c.Lng, c.Lat) {
		return c
	}

	w := c

	for i := 0; i < exactMaxIter; i++ {
		g := WGS84ToGCJ02(w)
		dx, dy := g.Lng-c.Lng, g.Lat-c.Lat

		if math.Abs(dx) < exactPrecision && math.Abs(dy) < exactPrecision {
			break
		}

		w.Lng -= dx
		w.Lat -= dy
	}

	return w
}
