package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/physics"
)

// Flags are session toggles shown on the HUD
type Flags struct {
	Paused bool
	Muted  bool
}

// Renderer draws the arena, the ball and the HUD onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	board  *Scoreboard
	fills  map[int]tcell.Color
	flags  Flags
}

// NewRenderer creates a renderer drawing to screen with its own scoreboard
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		board:  NewScoreboard(),
		fills:  make(map[int]tcell.Color),
	}
}

// Scoreboard returns the HUD display surface
func (r *Renderer) Scoreboard() *Scoreboard {
	return r.board
}

// SetFill overrides the color a body is drawn with
func (r *Renderer) SetFill(bodyID int, color tcell.Color) {
	r.fills[bodyID] = color
}

// Fill returns the current color of a body
func (r *Renderer) Fill(b *physics.Body) tcell.Color {
	if c, ok := r.fills[b.ID]; ok {
		return c
	}
	return DefaultFill(b.Label)
}

// SetFlags updates the HUD toggles
func (r *Renderer) SetFlags(f Flags) {
	r.flags = f
}

// Sync repaints the whole terminal after a resize
func (r *Renderer) Sync() {
	r.screen.Sync()
}

// Draw renders one frame
func (r *Renderer) Draw(world *physics.World) {
	r.screen.Clear()
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', bg)

	for _, b := range world.Bodies() {
		switch b.Shape {
		case physics.ShapeRectangle:
			r.drawRect(b)
		case physics.ShapeCircle:
			r.drawCircle(b, bg)
		}
	}

	r.drawHUD()
	r.screen.Show()
}

// drawRect fills every cell whose centre lies inside the body
func (r *Renderer) drawRect(b *physics.Body) {
	lo, hi := b.Bounds()
	style := tcell.StyleDefault.Background(r.Fill(b))

	c0, r0 := CellAt(lo.X, lo.Y)
	c1, r1 := CellAt(hi.X, hi.Y)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := CellCenter(col, row)
			if x < lo.X || x > hi.X || y < lo.Y || y > hi.Y {
				continue
			}
			r.screen.SetContent(col, row, ' ', nil, style)
		}
	}
}

// drawCircle fills cells whose centre lies within the radius, always including the centre cell
func (r *Renderer) drawCircle(b *physics.Body, bg tcell.Style) {
	p := b.Position()
	if !p.IsFinite() {
		return
	}
	style := bg.Foreground(r.Fill(b))

	lo, hi := b.Bounds()
	c0, r0 := CellAt(lo.X, lo.Y)
	c1, r1 := CellAt(hi.X, hi.Y)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := CellCenter(col, row)
			if math.Hypot(x-p.X, y-p.Y) > b.Radius {
				continue
			}
			r.screen.SetContent(col, row, '█', nil, style)
		}
	}

	col, row := CellAt(p.X, p.Y)
	r.screen.SetContent(col, row, '█', nil, style)
}

// drawHUD writes the score line into the ceiling row
func (r *Renderer) drawHUD() {
	width, _ := r.screen.Size()
	snap := r.board.Snapshot()

	base := tcell.StyleDefault.Background(RgbWall)
	label := base.Foreground(RgbHUDLabel)
	value := base.Foreground(RgbHUDValue).Bold(true)
	if snap.Scoring {
		value = value.Foreground(RgbHUDScoring)
	}

	x := 2
	x = r.text(x, 0, constants.HUDScoreLabel+" ", label)
	x = r.text(x, 0, fmt.Sprintf("%d", snap.Current), value)
	x = r.text(x, 0, "  "+constants.HUDHighLabel+" ", label)
	r.text(x, 0, fmt.Sprintf("%d", snap.High), base.Foreground(RgbHUDValue))

	var right string
	switch {
	case r.flags.Paused:
		right = constants.HUDPaused
	case !snap.Scoring:
		right = constants.HUDHintIdle
	}
	if r.flags.Muted {
		if right != "" {
			right += " "
		}
		right += constants.HUDMuted
	}
	if right == "" {
		return
	}

	style := label
	if r.flags.Paused || r.flags.Muted {
		style = base.Foreground(RgbHUDFlag)
	}
	r.text(width-len(right)-2, 0, right, style)
}

// text writes s from column x and returns the column after it
func (r *Renderer) text(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
