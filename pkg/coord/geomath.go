package coord

import "math"

const (
	// semi-major axis and eccentricity squared of the Krasovsky 1940 ellipsoid
	a  = 6378245.0
	ee = 0.00669342162296594323

	xPi = math.Pi * 3000.0 / 180.0
)

// rough bounding box of mainland China, GCJ-02 is the identity outside it
const (
	minLng = 72.004
	maxLng = 137.8347
	minLat = 0.8293
	maxLat = 55.8271
)

func Radians(d float64) float64 {
	return d / 180 * math.Pi
}

func Degrees(r float64) float64 {
	return r / math.Pi * 180
}

// OutOfChina reports whether the point lies outside the GCJ-02 area.
// Points exactly on the box edge are inside.
func OutOfChina(lng, lat float64) bool {
	if lng < minLng || lng > maxLng {
		return true
	}

	if lat < minLat || lat > maxLat {
		return true
	}

	return false
}

// the two polynomials are empirical, keep coefficients and evaluation order as is
func transformLat(x, y float64) float64 {
	ret := -100.0 + 2.0*x + 3.0*y + 0.2*y*y + 0.1*x*y + 0.2*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(y*math.Pi) + 40.0*math.Sin(y/3.0*math.Pi)) * 2.0 / 3.0
	ret += (160.0*math.Sin(y/12.0*math.Pi) + 320.0*math.Sin(y*math.Pi/30.0)) * 2.0 / 3.0
	return ret
}

func transformLng(x, y float64) float64 {
	ret := 300.0 + x + 2.0*y + 0.1*x*x + 0.1*x*y + 0.1*math.Sqrt(math.Abs(x))
	ret += (20.0*math.Sin(6.0*x*math.Pi) + 20.0*math.Sin(2.0*x*math.Pi)) * 2.0 / 3.0
	ret += (20.0*math.Sin(x*math.Pi) + 40.0*math.Sin(x/3.0*math.Pi)) * 2.0 / 3.0
	ret += (150.0*math.Sin(x/12.0*math.Pi) + 300.0*math.Sin(x/30.0*math.Pi)) * 2.0 / 3.0
	return ret
}

// delta returns the GCJ-02 offset in degrees for a point.
func delta(lng, lat float64) (float64, float64) {
	dLat := transformLat(lng-105.0, lat-35.0)
	dLng := transformLng(lng-105.0, lat-35.0)

	radLat := lat / 180.0 * math.Pi
	magic := math.Sin(radLat)
	magic = 1 - ee*magic*magic
	sqrtMagic := math.Sqrt(magic)

	dLat = (dLat * 180.0) / ((a * (1 - ee)) / (magic * sqrtMagic) * math.Pi)
	dLng = (dLng * 180.0) / (a / sqrtMagic * math.Cos(radLat) * math.Pi)

	return dLng, dLat
}
