package events

// Body identifies one side of a collision pair
type Body struct {
	ID    int
	Label string
}

// Pair is a contact that began during a step
// BodyA always has the lower id
type Pair struct {
	BodyA       Body
	BodyB       Body
	TimeCreated float64 // Simulated milliseconds, shared by all pairs of one step
}

// CollisionStartPayload lists new contacts in emission order
type CollisionStartPayload struct {
	Pairs []Pair
}

// BeforeStepPayload identifies the step about to be integrated
type BeforeStepPayload struct {
	Step      int64
	Timestamp float64 // Simulated milliseconds before the step
}

// DragPayload carries the pointer position in canvas pixels
type DragPayload struct {
	X, Y float64
}
