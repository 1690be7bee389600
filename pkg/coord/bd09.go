package coord

import "math"

func GCJ02ToBD09(c Coordinate) Coordinate {
	x, y := c.Lng, c.Lat
	z := math.Sqrt(x*x+y*y) + 0.00002*math.Sin(y*xPi)
	theta := math.Atan2(y, x) + 0.000003*math.Cos(x*xPi)

	return Coordinate{
		Lng: z*math.Cos(theta) + 0.0065,
		Lat: z*math.Sin(theta) + 0.006,
	}
}

// BD09ToGCJ02 is the closed form inverse of GCJ02ToBD09.
func BD09ToGCJ02(c Coordinate) Coordinate {
	x := c.Lng - 0.0065
	y := c.Lat - 0.006
	z := math.Sqrt(x*x+y*y) - 0.00002*math.Sin(y*xPi)
	theta := math.Atan2(y, x) - 0.000003*math.Cos(x*xPi)

	return Coordinate{
		Lng: z * math.Cos(theta),
		Lat: z * math.Sin(theta),
	}
}
