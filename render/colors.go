package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/constants"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background
	RgbWall       = tcell.NewHexColor(constants.WallColor)
	RgbWallHit    = tcell.NewHexColor(constants.WallHitColor)
	RgbBall       = tcell.NewHexColor(constants.BallColor)

	RgbHUDLabel   = tcell.NewRGBColor(180, 180, 180) // Gray
	RgbHUDValue   = tcell.NewRGBColor(255, 255, 255) // White
	RgbHUDScoring = tcell.NewRGBColor(255, 165, 0)   // Orange while a turn is running
	RgbHUDFlag    = tcell.NewRGBColor(255, 80, 80)   // Red for paused/muted
)

// DefaultFill returns the fill a body starts with
func DefaultFill(label string) tcell.Color {
	if label == constants.LabelBall {
		return RgbBall
	}
	return RgbWall
}
