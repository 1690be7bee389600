package coord

// Transform converts c from one reference system to another.
// WGS-84 and BD-09 are connected through GCJ-02.
// NaN or infinite input is not checked and propagates into the result.
func Transform(c Coordinate, from, to System) Coordinate {
	return transform(c, from, to, GCJ02ToWGS84)
}

// TransformExact is like Transform but uses the iterative GCJ-02 inverse
// on every path that ends in WGS-84.
func TransformExact(c Coordinate, from, to System) Coordinate {
	return transform(c, from, to, GCJ02ToWGS84Exact)
}

func transform(c Coordinate, from, to System, toWGS84 func(Coordinate) Coordinate) Coordinate {
	if from == to {
		return c
	}

	switch from {
	case WGS84:
		switch to {
		case GCJ02:
			return WGS84ToGCJ02(c)
		case BD09:
			return GCJ02ToBD09(WGS84ToGCJ02(c))
		}
	case GCJ02:
		switch to {
		case WGS84:
			return toWGS84(c)
		case BD09:
			return GCJ02ToBD09(c)
		}
	case BD09:
		switch to {
		case WGS84:
			return toWGS84(BD09ToGCJ02(c))
		case GCJ02:
			return BD09ToGCJ02(c)
		}
	}

	return c
}
