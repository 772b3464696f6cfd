package physics

import (
	"sort"

	"github.com/solarlune/resolv"

	"github.com/lixenwraith/offwall/constants"
	"github.com/lixenwraith/offwall/events"
)

// spaceCellSize is the broad-phase grid cell in pixels
const spaceCellSize = 16

type contactKey struct {
	a, b int
}

// World holds bodies, gravity and the broad-phase space
// Not safe for concurrent use; owned by the game loop
type World struct {
	space   *resolv.Space
	width   float64
	height  float64
	gravity Vector

	bodies    []*Body
	byID      map[int]*Body
	nextID    int
	timestamp float64 // Simulated milliseconds
	steps     int64

	contacts map[contactKey]struct{}
}

// NewWorld creates a world covering the canvas with gravity along +y
func NewWorld(width, height, gravity float64) *World {
	return &World{
		space:    resolv.NewSpace(int(width), int(height), spaceCellSize, spaceCellSize),
		width:    width,
		height:   height,
		gravity:  Vector{0, gravity},
		byID:     make(map[int]*Body),
		nextID:   1,
		contacts: make(map[contactKey]struct{}),
	}
}

func (w *World) Width() float64 { return w.width }

func (w *World) Height() float64 { return w.height }

// Timestamp returns the simulated time in milliseconds
func (w *World) Timestamp() float64 { return w.timestamp }

// Steps returns the number of completed steps
func (w *World) Steps() int64 { return w.steps }

// Bodies returns bodies in creation order
func (w *World) Bodies() []*Body { return w.bodies }

// Body returns the body with the given id
func (w *World) Body(id int) (*Body, bool) {
	b, ok := w.byID[id]
	return b, ok
}

// AddWall creates a static rectangle centred at (x, y)
func (w *World) AddWall(x, y, width, height float64) *Body {
	b := &Body{
		Label:    constants.LabelWall,
		Shape:    ShapeRectangle,
		Width:    width,
		Height:   height,
		Material: WallMaterial,
		static:   true,
	}
	return w.add(b, Vector{x, y})
}

// AddBall creates a dynamic circle centred at (x, y)
func (w *World) AddBall(x, y, radius float64, material Material) *Body {
	b := &Body{
		Label:    constants.LabelBall,
		Shape:    ShapeCircle,
		Radius:   radius,
		Material: material,
	}
	return w.add(b, Vector{x, y})
}

func (w *World) add(b *Body, pos Vector) *Body {
	b.ID = w.nextID
	w.nextID++

	half := b.halfExtents()
	b.obj = resolv.NewObject(
		pos.X-half.X-objectPadding, pos.Y-half.Y-objectPadding,
		(half.X+objectPadding)*2, (half.Y+objectPadding)*2,
		b.Label,
	)
	b.obj.Data = b
	w.space.Add(b.obj)

	b.SetPosition(pos)
	w.bodies = append(w.bodies, b)
	w.byID[b.ID] = b
	return b
}

// AddArena creates the four walls around a canvas in left, right, floor, ceiling order
func (w *World) AddArena(thickness float64) []*Body {
	return []*Body{
		w.AddWall(thickness/2, w.height/2, thickness, w.height-thickness*2),
		w.AddWall(w.width-thickness/2, w.height/2, thickness, w.height-thickness*2),
		w.AddWall(w.width/2, w.height-thickness/2, w.width, thickness),
		w.AddWall(w.width/2, thickness/2, w.width, thickness),
	}
}

// Step advances the simulation by deltaMs and returns contacts that began during it
// Contacts persisting from the previous step are not reported again
func (w *World) Step(deltaMs float64) []events.Pair {
	w.timestamp += deltaMs
	w.steps++

	current := make(map[contactKey]struct{})

	for _, b := range w.bodies {
		if b.static {
			continue
		}
		b.positionPrev = b.position
		if !b.position.IsFinite() || !b.velocity.IsFinite() {
			continue
		}
		integrate(b, w.gravity, deltaMs)
		w.move(b, current)
	}

	var started []events.Pair
	for key := range current {
		if _, ok := w.contacts[key]; ok {
			continue
		}
		a, b := w.byID[key.a], w.byID[key.b]
		started = append(started, events.Pair{
			BodyA:       events.Body{ID: a.ID, Label: a.Label},
			BodyB:       events.Body{ID: b.ID, Label: b.Label},
			TimeCreated: w.timestamp,
		})
	}
	w.contacts = current

	sort.Slice(started, func(i, j int) bool {
		if started[i].BodyA.ID != started[j].BodyA.ID {
			return started[i].BodyA.ID < started[j].BodyA.ID
		}
		return started[i].BodyB.ID < started[j].BodyB.ID
	})
	return started
}

// move displaces a circle by its velocity in sub-steps, resolving static contacts
func (w *World) move(b *Body, current map[contactKey]struct{}) {
	n := substeps(b.velocity, constants.WallThickness/2)

	for i := 0; i < n; i++ {
		b.position = b.position.Add(b.velocity.Scale(1 / float64(n)))
		b.syncObject()

		if b.Shape != ShapeCircle {
			continue
		}

		col := b.obj.Check(0, 0)
		if col == nil {
			continue
		}
		for _, o := range col.Objects {
			other, ok := o.Data.(*Body)
			if !ok || other == b || !other.static {
				continue
			}
			lo, hi := other.Bounds()
			c, hit := CircleRect(b.position, b.Radius, lo, hi)
			if !hit {
				continue
			}
			resolveContact(b, other, c)
			b.syncObject()
			current[pairKey(b.ID, other.ID)] = struct{}{}
		}
	}
}

func pairKey(a, b int) contactKey {
	if a > b {
		a, b = b, a
	}
	return contactKey{a, b}
}
