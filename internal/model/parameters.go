package model

import "fmt"

// Typed parameter structs, one per operation. Each carries Validate, a pure
// check returning an empty string on success or a human-readable reason.
// Default*Parameters constructors derive starting values from the material
// table; operations never mutate their parameters after construction.

// FacingStrategy selects the radial sweep pattern for facing passes.
type FacingStrategy int

const (
	FacingOutsideIn FacingStrategy = iota
	FacingInsideOut
	FacingSpiral
	FacingConventional
	FacingClimb
	FacingAdaptiveRoughing
	FacingHighSpeed
)

func (s FacingStrategy) String() string {
	switch s {
	case FacingInsideOut:
		return "InsideOut"
	case FacingSpiral:
		return "Spiral"
	case FacingConventional:
		return "Conventional"
	case FacingClimb:
		return "Climb"
	case FacingAdaptiveRoughing:
		return "AdaptiveRoughing"
	case FacingHighSpeed:
		return "HighSpeedFacing"
	default:
		return "OutsideIn"
	}
}

// FacingParameters configures an end-face sweep. Diameters in mm; Z values
// in part coordinates with the finished face at EndZ.
type FacingParameters struct {
	StartDiameter  float64        `json:"start_diameter"` // outer sweep diameter
	EndDiameter    float64        `json:"end_diameter"`   // 0 to face to center
	StartZ         float64        `json:"start_z"`        // front of raw stock
	EndZ           float64        `json:"end_z"`          // finished face position
	DepthOfCut     float64        `json:"depth_of_cut"`   // axial mm per pass
	StockAllowance float64        `json:"stock_allowance"`
	Strategy       FacingStrategy `json:"strategy"`
	Clearance      float64        `json:"clearance"` // rapid clearance above the face, mm
}

func (p FacingParameters) Validate() string {
	if p.StartDiameter <= p.EndDiameter {
		return "startDiameter must exceed endDiameter"
	}
	if p.StartZ <= p.EndZ {
		return "startZ must exceed endZ"
	}
	if p.DepthOfCut <= 0 {
		return "depthOfCut must be positive"
	}
	if p.StockAllowance < 0 {
		return "stockAllowance must not be negative"
	}
	if p.Clearance <= 0 {
		return "clearance must be positive"
	}
	return ""
}

func DefaultFacingParameters(mat Material) FacingParameters {
	return FacingParameters{
		DepthOfCut:     1.0 * mat.MaxDepthFactor,
		StockAllowance: 0.2,
		Strategy:       FacingOutsideIn,
		Clearance:      2.0,
	}
}

// RoughingParameters configures bulk stock removal between StartDiameter and
// EndDiameter over [EndZ, StartZ].
type RoughingParameters struct {
	StartDiameter  float64 `json:"start_diameter"`
	EndDiameter    float64 `json:"end_diameter"`
	StartZ         float64 `json:"start_z"`
	EndZ           float64 `json:"end_z"`
	DepthOfCut     float64 `json:"depth_of_cut"` // radial mm per pass
	StockAllowance float64 `json:"stock_allowance"`
	Clearance      float64 `json:"clearance"`

	FollowProfile    bool    `json:"follow_profile"`     // bound passes by the actual profile
	ReverseDirection bool    `json:"reverse_direction"`  // alternate pass direction
	ChipBreaking     bool    `json:"chip_breaking"`      // periodic retract and dwell
	ChipBreakEvery   float64 `json:"chip_break_every"`   // mm of cut between breaks
	ChipBreakRetract float64 `json:"chip_break_retract"` // mm retract on break
	ChipBreakDwell   float64 `json:"chip_break_dwell"`   // seconds
}

func (p RoughingParameters) Validate() string {
	if p.StartDiameter <= p.EndDiameter {
		return "startDiameter must exceed endDiameter"
	}
	if p.StartZ <= p.EndZ {
		return "startZ must exceed endZ"
	}
	if p.DepthOfCut <= 0 {
		return "depthOfCut must be positive"
	}
	if p.StockAllowance < 0 {
		return "stockAllowance must not be negative"
	}
	if p.ChipBreaking && p.ChipBreakEvery <= 0 {
		return "chipBreakEvery must be positive when chip breaking is enabled"
	}
	return ""
}

func DefaultRoughingParameters(mat Material) RoughingParameters {
	return RoughingParameters{
		DepthOfCut:       2.0 * mat.MaxDepthFactor,
		StockAllowance:   0.5,
		Clearance:        2.0,
		ChipBreakEvery:   15.0,
		ChipBreakRetract: 0.5,
		ChipBreakDwell:   0.2,
	}
}

// FinishingParameters configures the single profile-following finish pass.
type FinishingParameters struct {
	Clearance     float64 `json:"clearance"`
	LeadInLength  float64 `json:"lead_in_length"`  // mm of approach before the profile
	LeadOutLength float64 `json:"lead_out_length"` // mm of exit after the profile
	ChordTol      float64 `json:"chord_tolerance"` // curved-segment sampling tolerance
}

func (p FinishingParameters) Validate() string {
	if p.Clearance <= 0 {
		return "clearance must be positive"
	}
	if p.ChordTol <= 0 {
		return "chordTolerance must be positive"
	}
	return ""
}

func DefaultFinishingParameters(mat Material) FinishingParameters {
	return FinishingParameters{
		Clearance:     2.0,
		LeadInLength:  2.0,
		LeadOutLength: 1.0,
		ChordTol:      0.01,
	}
}

// PartingStrategy selects the cut-off technique.
type PartingStrategy int

const (
	PartingStraight PartingStrategy = iota
	PartingStepped
	PartingGroove
	PartingUndercut
	PartingTrepanning
)

func (s PartingStrategy) String() string {
	switch s {
	case PartingStepped:
		return "Stepped"
	case PartingGroove:
		return "Groove"
	case PartingUndercut:
		return "Undercut"
	case PartingTrepanning:
		return "Trepanning"
	default:
		return "Straight"
	}
}

// PartingParameters configures the cut-off operation. PartingZ at zero asks
// the operation to pick a position from profile discontinuities.
type PartingParameters struct {
	PartingDiameter    float64         `json:"parting_diameter"`
	CenterHoleDiameter float64         `json:"center_hole_diameter"` // 0 for solid stock
	PartingZ           float64         `json:"parting_z"`
	AutoPosition       bool            `json:"auto_position"`
	Strategy           PartingStrategy `json:"strategy"`
	PeckDepth          float64         `json:"peck_depth"` // radial mm per peck (Stepped)
	Retract            float64         `json:"retract"`    // mm retract between pecks
	DwellSeconds       float64         `json:"dwell_seconds"`
	Clearance          float64         `json:"clearance"`
}

func (p PartingParameters) Validate() string {
	if p.PartingDiameter <= p.CenterHoleDiameter {
		return "partingDiameter must exceed centerHoleDiameter"
	}
	if p.CenterHoleDiameter < 0 {
		return "centerHoleDiameter must not be negative"
	}
	if p.Strategy == PartingStepped && p.PeckDepth <= 0 {
		return "peckDepth must be positive for the stepped strategy"
	}
	if p.Clearance <= 0 {
		return "clearance must be positive"
	}
	return ""
}

func DefaultPartingParameters(mat Material) PartingParameters {
	return PartingParameters{
		Strategy:     PartingStepped,
		PeckDepth:    3.0 * mat.MaxDepthFactor,
		Retract:      0.5,
		DwellSeconds: 0.2,
		Clearance:    2.0,
	}
}

// ThreadingParameters configures an external thread. Either Designation
// (e.g. "M20x1.5") or MajorDiameter+Pitch must be given; ThreadDepth at zero
// derives the ISO metric depth from the pitch.
type ThreadingParameters struct {
	Designation   string  `json:"designation,omitempty"`
	MajorDiameter float64 `json:"major_diameter"`
	Pitch         float64 `json:"pitch"`
	ThreadDepth   float64 `json:"thread_depth"`
	StartZ        float64 `json:"start_z"`
	Length        float64 `json:"length"`     // threaded length toward -Z
	Passes        int     `json:"passes"`     // 0 picks a pass count from depth
	Degression    bool    `json:"degression"` // geometric per-pass depth decrease
	LeadIn        float64 `json:"lead_in"`    // mm before the thread start
	LeadOut       float64 `json:"lead_out"`   // mm past the thread end
	ChamferPass   bool    `json:"chamfer_pass"`
	Clearance     float64 `json:"clearance"`
}

func (p ThreadingParameters) Validate() string {
	if p.Designation == "" {
		if p.MajorDiameter <= 0 {
			return "majorDiameter must be positive when no designation is given"
		}
		if p.Pitch <= 0 {
			return "pitch must be positive when no designation is given"
		}
	}
	if p.Length <= 0 {
		return "thread length must be positive"
	}
	if p.Passes < 0 {
		return "pass count must not be negative"
	}
	if p.Clearance <= 0 {
		return "clearance must be positive"
	}
	return ""
}

func DefaultThreadingParameters(mat Material) ThreadingParameters {
	return ThreadingParameters{
		Degression: true,
		LeadIn:     2.0,
		LeadOut:    1.5,
		Clearance:  2.0,
	}
}

// GroovingParameters configures a rectangular groove plunge sequence.
type GroovingParameters struct {
	GrooveZ        float64 `json:"groove_z"`        // center of the groove
	Width          float64 `json:"width"`           // mm along Z
	Depth          float64 `json:"depth"`           // radial mm
	OuterDiameter  float64 `json:"outer_diameter"`  // diameter at the groove location
	PeckDepth      float64 `json:"peck_depth"`      // radial mm per peck
	StepoverFactor float64 `json:"stepover_factor"` // fraction of tool width per plunge
	SpringPass     bool    `json:"spring_pass"`     // finishing pass along the floor
	Clearance      float64 `json:"clearance"`
}

func (p GroovingParameters) Validate() string {
	if p.Width <= 0 {
		return "groove width must be positive"
	}
	if p.Depth <= 0 {
		return "groove depth must be positive"
	}
	if p.OuterDiameter <= 2*p.Depth {
		return "groove depth exceeds the available radius"
	}
	if p.StepoverFactor <= 0 || p.StepoverFactor > 1 {
		return fmt.Sprintf("stepoverFactor %.2f outside (0, 1]", p.StepoverFactor)
	}
	if p.Clearance <= 0 {
		return "clearance must be positive"
	}
	return ""
}

func DefaultGroovingParameters(mat Material) GroovingParameters {
	return GroovingParameters{
		PeckDepth:      2.0 * mat.MaxDepthFactor,
		StepoverFactor: 0.75,
		Clearance:      2.0,
	}
}

// ContouringParameters configures the facing/roughing/finishing coordinator.
type ContouringParameters struct {
	ProfileTolerance float64 `json:"profile_tolerance"`
	EnableFacing     bool    `json:"enable_facing"`
	EnableRoughing   bool    `json:"enable_roughing"`
	EnableFinishing  bool    `json:"enable_finishing"`
	StockAllowance   float64 `json:"stock_allowance"`
	DepthOfCut       float64 `json:"depth_of_cut"`
	Clearance        float64 `json:"clearance"`
}

func (p ContouringParameters) Validate() string {
	if p.ProfileTolerance <= 0 {
		return "profileTolerance must be positive"
	}
	if !p.EnableFacing && !p.EnableRoughing && !p.EnableFinishing {
		return "at least one sub-operation must be enabled"
	}
	if p.DepthOfCut <= 0 {
		return "depthOfCut must be positive"
	}
	if p.StockAllowance < 0 {
		return "stockAllowance must not be negative"
	}
	if p.Clearance <= 0 {
		return "clearance must be positive"
	}
	return ""
}
