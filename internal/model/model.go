package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a coordinate in the lathe working plane, in mm.
// X is measured across the spindle axis, Z along it. Movements use X as a
// diameter value (lathe convention); profile geometry uses X as a radius.
type Point2D struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// DistanceTo returns the straight-line distance to another point.
func (p Point2D) DistanceTo(q Point2D) float64 {
	dx := q.X - p.X
	dz := q.Z - p.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// ToolType identifies the kind of lathe tool an operation cuts with.
type ToolType int

const (
	ToolTurning ToolType = iota
	ToolFacing
	ToolParting
	ToolThreading
	ToolGrooving
)

func (t ToolType) String() string {
	switch t {
	case ToolFacing:
		return "Facing"
	case ToolParting:
		return "Parting"
	case ToolThreading:
		return "Threading"
	case ToolGrooving:
		return "Grooving"
	default:
		return "Turning"
	}
}

// Tool describes a lathe tool and its cutting parameters. Tools are value
// types supplied by the caller and are never mutated by the engine.
type Tool struct {
	Name          string   `json:"name"`
	Type          ToolType `json:"type"`
	Diameter      float64  `json:"diameter"`        // insert/shank width in mm
	TipRadius     float64  `json:"tip_radius"`      // nose radius in mm
	FeedRate      float64  `json:"feed_rate"`       // mm/rev
	SpindleSpeed  float64  `json:"spindle_speed"`   // RPM
	DepthOfCut    float64  `json:"depth_of_cut"`    // mm per pass
	Stepover      float64  `json:"stepover"`        // mm lateral increment
	RapidFeedRate float64  `json:"rapid_feed_rate"` // mm/min
}

// MovementType classifies a single atomic tool action.
type MovementType int

const (
	MoveRapid MovementType = iota
	MoveLinear
	MoveCircularCW
	MoveCircularCCW
	MoveDwell
	MoveToolChange
)

func (m MovementType) String() string {
	switch m {
	case MoveRapid:
		return "Rapid"
	case MoveLinear:
		return "Linear"
	case MoveCircularCW:
		return "CircularCW"
	case MoveCircularCCW:
		return "CircularCCW"
	case MoveDwell:
		return "Dwell"
	case MoveToolChange:
		return "ToolChange"
	default:
		return "Unknown"
	}
}

// Movement is one atomic tool action within a toolpath. Coordinates use the
// lathe diameter convention on X.
type Movement struct {
	Type         MovementType `json:"type"`
	Start        Point2D      `json:"start"`
	End          Point2D      `json:"end"`
	FeedRate     float64      `json:"feed_rate"` // mm/rev; unused for rapids
	DwellSeconds float64      `json:"dwell_seconds,omitempty"`
	Radius       float64      `json:"radius,omitempty"`      // arc radius for circular moves
	ToolNumber   int          `json:"tool_number,omitempty"` // turret position for tool changes
	Comment      string       `json:"comment,omitempty"`
	Operation    string       `json:"operation,omitempty"`
}

// Toolpath is a named, ordered movement sequence produced by one operation
// run. It is append-only while an operation builds it and read-only once it
// is handed to the G-code generator or a result structure.
type Toolpath struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Operation string     `json:"operation"`
	Tool      Tool       `json:"tool"`
	Movements []Movement `json:"movements"`
}

func NewToolpath(name, operation string, tool Tool) *Toolpath {
	return &Toolpath{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Operation: operation,
		Tool:      tool,
	}
}

// Append adds a movement, tagging it with the owning operation.
func (tp *Toolpath) Append(m Movement) {
	if m.Operation == "" {
		m.Operation = tp.Operation
	}
	tp.Movements = append(tp.Movements, m)
}

// Rapid appends a rapid positioning move ending at p.
func (tp *Toolpath) Rapid(p Point2D, comment string) {
	tp.Append(Movement{Type: MoveRapid, Start: tp.LastPosition(), End: p, Comment: comment})
}

// Linear appends a cutting move ending at p at the given feed in mm/rev.
func (tp *Toolpath) Linear(p Point2D, feed float64, comment string) {
	tp.Append(Movement{Type: MoveLinear, Start: tp.LastPosition(), End: p, FeedRate: feed, Comment: comment})
}

// Dwell appends a pause of the given duration in seconds.
func (tp *Toolpath) Dwell(seconds float64, comment string) {
	last := tp.LastPosition()
	tp.Append(Movement{Type: MoveDwell, Start: last, End: last, DwellSeconds: seconds, Comment: comment})
}

// LastPosition returns the end of the most recent positioning movement, or
// the origin for an empty toolpath.
func (tp *Toolpath) LastPosition() Point2D {
	for i := len(tp.Movements) - 1; i >= 0; i-- {
		m := tp.Movements[i]
		if m.Type != MoveDwell && m.Type != MoveToolChange {
			return m.End
		}
	}
	return Point2D{}
}

func (tp *Toolpath) MovementCount() int {
	return len(tp.Movements)
}

// Bounds returns the min and max corners of all movement endpoints.
// ok is false for a toolpath without positioning moves.
func (tp *Toolpath) Bounds() (min, max Point2D, ok bool) {
	for _, m := range tp.Movements {
		if m.Type == MoveDwell || m.Type == MoveToolChange {
			continue
		}
		for _, p := range [2]Point2D{m.Start, m.End} {
			if !ok {
				min, max = p, p
				ok = true
				continue
			}
			if p.X < min.X {
				min.X = p.X
			}
			if p.Z < min.Z {
				min.Z = p.Z
			}
			if p.X > max.X {
				max.X = p.X
			}
			if p.Z > max.Z {
				max.Z = p.Z
			}
		}
	}
	return min, max, ok
}

// defaultRapidRate is assumed when a tool does not specify its rapid
// traverse rate.
const defaultRapidRate = 5000.0 // mm/min

// EstimateTime returns the estimated run time in minutes. Cutting feeds use
// the same mm/rev ×60 convention the G-code emitter applies, so estimates
// and emitted feed words stay consistent.
func (tp *Toolpath) EstimateTime() float64 {
	var minutes float64
	for _, m := range tp.Movements {
		switch m.Type {
		case MoveDwell:
			minutes += m.DwellSeconds / 60.0
		case MoveRapid:
			rate := tp.Tool.RapidFeedRate
			if rate <= 0 {
				rate = defaultRapidRate
			}
			minutes += m.Start.DistanceTo(m.End) / rate
		case MoveLinear, MoveCircularCW, MoveCircularCCW:
			if m.FeedRate > 0 {
				minutes += m.Start.DistanceTo(m.End) / (m.FeedRate * 60.0)
			}
		}
	}
	return minutes
}

// CuttingLength returns the total length of non-rapid positioning moves in mm.
func (tp *Toolpath) CuttingLength() float64 {
	var length float64
	for _, m := range tp.Movements {
		switch m.Type {
		case MoveLinear, MoveCircularCW, MoveCircularCCW:
			length += m.Start.DistanceTo(m.End)
		}
	}
	return length
}

// OperationType enumerates the closed set of machining operations.
type OperationType int

const (
	OpFacing OperationType = iota
	OpRoughing
	OpFinishing
	OpParting
	OpThreading
	OpGrooving
	OpContouring
)

func (o OperationType) String() string {
	switch o {
	case OpFacing:
		return "Facing"
	case OpRoughing:
		return "Roughing"
	case OpFinishing:
		return "Finishing"
	case OpParting:
		return "Parting"
	case OpThreading:
		return "Threading"
	case OpGrooving:
		return "Grooving"
	case OpContouring:
		return "Contouring"
	default:
		return "Unknown"
	}
}
