package mapper

import "fmt"

type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
	// pixel offset inside the tile
	PX int `json:"px"`
	PY int `json:"py"`
}

func (t Tile) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Flip converts between XYZ and TMS row numbering.
func (t Tile) Flip() Tile {
	t.Y = 1<<t.Z - t.Y - 1
	return t
}
