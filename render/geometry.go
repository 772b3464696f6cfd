package render

import (
	"math"

	"github.com/lixenwraith/offwall/constants"
)

// CanvasSize returns the pixel canvas covered by a terminal of cols x rows
func CanvasSize(cols, rows int) (width, height float64) {
	return float64(cols) * constants.CellWidth, float64(rows) * constants.CellHeight
}

// CellAt returns the cell containing a canvas point
func CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / constants.CellWidth)), int(math.Floor(y / constants.CellHeight))
}

// CellCenter returns the canvas point at the centre of a cell
func CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * constants.CellWidth, (float64(row) + 0.5) * constants.CellHeight
}
