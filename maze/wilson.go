package maze

import (
	wilson "github.com/beka-birhanu/wilson-maze"
)

// Generate builds a solver grid from a freshly generated Wilson maze.
// Generation itself is delegated to the external module; only the east and
// south wall bits carry over, since each interior wall is stored on one of
// the two cells it separates.
func Generate(width, height int) (*Grid, error) {
	m, err := wilson.New(width, height)
	if err != nil {
		return nil, err
	}

	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cell := m.Grid[row][col]
			g.SetWalls(Position{Row: row, Col: col}, cell.HasEastWall(), cell.HasSouthWall())
		}
	}

	return g, nil
}
