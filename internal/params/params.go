// Package params is the single authority on required and optional cutting
// parameters per operation type, their valid ranges, and material-driven
// defaults. It validates and fills the generic key/value configuration used
// before an operation's typed parameter struct is populated.
package params

import (
	"fmt"
	"math"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

// Config is a string-keyed parameter bag used only for validation and
// defaulting. Provided records the keys the caller set explicitly, so
// filling never overwrites an explicit value.
type Config struct {
	Numbers  map[string]float64 `json:"numbers,omitempty"`
	Strings  map[string]string  `json:"strings,omitempty"`
	Bools    map[string]bool    `json:"bools,omitempty"`
	Provided map[string]bool    `json:"provided,omitempty"`
}

func NewConfig() *Config {
	return &Config{
		Numbers:  map[string]float64{},
		Strings:  map[string]string{},
		Bools:    map[string]bool{},
		Provided: map[string]bool{},
	}
}

// SetNumber stores an explicit numeric value.
func (c *Config) SetNumber(key string, v float64) {
	c.Numbers[key] = v
	c.Provided[key] = true
}

// SetString stores an explicit string value.
func (c *Config) SetString(key, v string) {
	c.Strings[key] = v
	c.Provided[key] = true
}

// SetBool stores an explicit boolean value.
func (c *Config) SetBool(key string, v bool) {
	c.Bools[key] = v
	c.Provided[key] = true
}

// Number returns a numeric value and whether it is present.
func (c *Config) Number(key string) (float64, bool) {
	v, ok := c.Numbers[key]
	return v, ok
}

// fillNumber stores a defaulted value without marking it provided.
func (c *Config) fillNumber(key string, v float64) {
	if !c.Provided[key] {
		c.Numbers[key] = v
	}
}

// ValidationStatus summarizes a configuration check.
type ValidationStatus int

const (
	StatusValid ValidationStatus = iota
	StatusMissingParameters
	StatusInvalidConfiguration
)

func (s ValidationStatus) String() string {
	switch s {
	case StatusMissingParameters:
		return "MissingParameters"
	case StatusInvalidConfiguration:
		return "InvalidConfiguration"
	default:
		return "Valid"
	}
}

// ValidationResult reports everything found wrong (or worth mentioning)
// about one operation's configuration.
type ValidationResult struct {
	Status       ValidationStatus `json:"status"`
	Missing      []string         `json:"missing,omitempty"`
	Invalid      []string         `json:"invalid,omitempty"`
	Warnings     []string         `json:"warnings,omitempty"`
	SafetyIssues []string         `json:"safety_issues,omitempty"`
	Confidence   float64          `json:"confidence"`
}

// Fixed safety ceilings. These bind regardless of material; a config past
// any of them is an invalid configuration, not a warning.
const (
	MaxSpindleSpeed = 3000.0   // RPM
	MaxFeedRate     = 1.0      // mm/rev
	MaxRemovalRate  = 300000.0 // mm³/min, feed × depth × cutting speed
)

// spec describes one parameter's requirement and valid range.
type spec struct {
	key      string
	min, max float64
	required bool
}

// requirement tables per operation type, built once at process start.
var requirements = map[model.OperationType][]spec{
	model.OpFacing: {
		{key: "start_diameter", min: 0, max: 1000, required: true},
		{key: "end_diameter", min: 0, max: 1000},
		{key: "start_z", min: -1000, max: 1000, required: true},
		{key: "end_z", min: -1000, max: 1000, required: true},
		{key: "feed_rate", min: 0.01, max: MaxFeedRate},
		{key: "spindle_speed", min: 10, max: MaxSpindleSpeed},
		{key: "depth_of_cut", min: 0.01, max: 10},
	},
	model.OpRoughing: {
		{key: "start_diameter", min: 0.1, max: 1000, required: true},
		{key: "end_diameter", min: 0, max: 1000, required: true},
		{key: "start_z", min: -1000, max: 1000, required: true},
		{key: "end_z", min: -1000, max: 1000, required: true},
		{key: "feed_rate", min: 0.01, max: MaxFeedRate},
		{key: "spindle_speed", min: 10, max: MaxSpindleSpeed},
		{key: "depth_of_cut", min: 0.01, max: 10},
		{key: "stock_allowance", min: 0, max: 5},
	},
	model.OpFinishing: {
		{key: "feed_rate", min: 0.01, max: MaxFeedRate},
		{key: "spindle_speed", min: 10, max: MaxSpindleSpeed},
	},
	model.OpParting: {
		{key: "parting_diameter", min: 0.1, max: 1000, required: true},
		{key: "center_hole_diameter", min: 0, max: 1000},
		{key: "feed_rate", min: 0.01, max: MaxFeedRate},
		{key: "spindle_speed", min: 10, max: MaxSpindleSpeed},
	},
	model.OpThreading: {
		{key: "major_diameter", min: 0.5, max: 500, required: true},
		{key: "pitch", min: 0.1, max: 10, required: true},
		{key: "length", min: 0.1, max: 1000, required: true},
		{key: "spindle_speed", min: 10, max: MaxSpindleSpeed},
	},
	model.OpGrooving: {
		{key: "groove_z", min: -1000, max: 1000, required: true},
		{key: "width", min: 0.1, max: 100, required: true},
		{key: "depth", min: 0.1, max: 100, required: true},
		{key: "outer_diameter", min: 0.5, max: 1000, required: true},
		{key: "feed_rate", min: 0.01, max: MaxFeedRate},
		{key: "spindle_speed", min: 10, max: MaxSpindleSpeed},
	},
	model.OpContouring: {
		{key: "profile_tolerance", min: 0.0001, max: 1},
		{key: "depth_of_cut", min: 0.01, max: 10},
		{key: "stock_allowance", min: 0, max: 5},
	},
}

// Manager validates and defaults operation configurations against a fixed
// machine envelope.
type Manager struct {
	Limits model.MachineLimits
}

func NewManager(limits model.MachineLimits) *Manager {
	return &Manager{Limits: limits}
}

// ValidateOperationParameters checks a configuration against the
// requirement table for the operation type and the fixed safety ceilings.
func (m *Manager) ValidateOperationParameters(op model.OperationType, cfg *Config, mat model.Material, tool model.Tool) ValidationResult {
	res := ValidationResult{Status: StatusValid, Confidence: 1.0}
	if cfg == nil {
		cfg = NewConfig()
	}

	for _, s := range requirements[op] {
		v, ok := cfg.Number(s.key)
		if !ok {
			if s.required {
				res.Missing = append(res.Missing, s.key)
			}
			continue
		}
		if v < s.min || v > s.max {
			res.Invalid = append(res.Invalid,
				fmt.Sprintf("%s=%.4g outside [%.4g, %.4g]", s.key, v, s.min, s.max))
		}
	}

	// Cross-field consistency.
	if sd, ok1 := cfg.Number("start_diameter"); ok1 {
		if ed, ok2 := cfg.Number("end_diameter"); ok2 && sd <= ed && op != model.OpFacing {
			res.Invalid = append(res.Invalid, "start_diameter must exceed end_diameter")
		}
	}
	if sz, ok1 := cfg.Number("start_z"); ok1 {
		if ez, ok2 := cfg.Number("end_z"); ok2 && sz <= ez {
			res.Invalid = append(res.Invalid, "start_z must exceed end_z")
		}
	}
	if pd, ok1 := cfg.Number("parting_diameter"); ok1 {
		if ch, ok2 := cfg.Number("center_hole_diameter"); ok2 && pd <= ch {
			res.Invalid = append(res.Invalid, "parting_diameter must exceed center_hole_diameter")
		}
	}

	safety := m.ValidateSafety(cfg, mat)
	res.SafetyIssues = append(res.SafetyIssues, safety...)

	// Tool suitability is advisory only.
	if want := toolFor(op); tool.Type != want && op != model.OpContouring {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("tool type %s is unusual for a %s operation", tool.Type, op))
	}

	switch {
	case len(res.Invalid) > 0 || len(res.SafetyIssues) > 0:
		res.Status = StatusInvalidConfiguration
		res.Confidence = 0
	case len(res.Missing) > 0:
		res.Status = StatusMissingParameters
		res.Confidence = 0.5
	default:
		res.Confidence = 1.0 - 0.1*float64(len(res.Warnings))
		if res.Confidence < 0.5 {
			res.Confidence = 0.5
		}
	}
	return res
}

// ValidateSafety applies the fixed ceilings. Breaches are reported
// regardless of material.
func (m *Manager) ValidateSafety(cfg *Config, mat model.Material) []string {
	var issues []string
	if cfg == nil {
		return issues
	}
	speed, hasSpeed := cfg.Number("spindle_speed")
	if hasSpeed && speed > MaxSpindleSpeed {
		issues = append(issues, fmt.Sprintf("spindle_speed %.0f RPM exceeds ceiling %.0f", speed, MaxSpindleSpeed))
	}
	feed, hasFeed := cfg.Number("feed_rate")
	if hasFeed && feed > MaxFeedRate {
		issues = append(issues, fmt.Sprintf("feed_rate %.3f mm/rev exceeds ceiling %.1f", feed, MaxFeedRate))
	}
	if depth, ok := cfg.Number("depth_of_cut"); ok && hasFeed {
		// feed [mm/rev] × depth [mm] × Vc [m/min → mm/min] is the
		// material-removal rate in mm³/min
		mrr := feed * depth * mat.SurfaceSpeed * 1000
		if mrr > MaxRemovalRate {
			issues = append(issues, fmt.Sprintf("material removal rate %.0f mm³/min exceeds ceiling %.0f", mrr, MaxRemovalRate))
		}
	}
	return issues
}

// FillMissingParameters merges material-derived defaults into the config
// without overwriting explicitly provided values.
func (m *Manager) FillMissingParameters(op model.OperationType, cfg *Config, mat model.Material, tool model.Tool, diameter float64) {
	if cfg == nil {
		return
	}
	opt := m.CalculateOptimalParameters(op, mat, diameter)
	feed, depth := opt.FeedRate, opt.DepthOfCut
	if v, ok := cfg.Number("feed_rate"); ok && cfg.Provided["feed_rate"] {
		feed = v
	}
	if v, ok := cfg.Number("depth_of_cut"); ok && cfg.Provided["depth_of_cut"] {
		depth = v
	}
	// An explicit feed or depth shrinks the defaulted other side so the
	// combined removal rate still clears the ceiling. Two explicit values
	// past the ceiling stay as given and fail validation.
	if mat.SurfaceSpeed > 0 && feed*depth*mat.SurfaceSpeed*1000 > MaxRemovalRate {
		limit := 0.99 * MaxRemovalRate / (mat.SurfaceSpeed * 1000)
		if !cfg.Provided["depth_of_cut"] && feed > 0 {
			depth = limit / feed
		} else if !cfg.Provided["feed_rate"] && depth > 0 {
			feed = limit / depth
		}
	}
	cfg.fillNumber("feed_rate", feed)
	cfg.fillNumber("spindle_speed", opt.SpindleSpeed)
	cfg.fillNumber("depth_of_cut", depth)
	if op == model.OpRoughing {
		cfg.fillNumber("stock_allowance", 0.5)
	}
	if op == model.OpContouring {
		cfg.fillNumber("profile_tolerance", 0.01)
		cfg.fillNumber("stock_allowance", 0.5)
	}
}

// OptimalParameters is the material- and diameter-derived starting point for
// an operation's cutting values.
type OptimalParameters struct {
	SpindleSpeed float64 // RPM
	FeedRate     float64 // mm/rev
	DepthOfCut   float64 // mm
}

// baseFeed and baseDepth anchor the per-material scaling.
const (
	baseFeed  = 0.2 // mm/rev
	baseDepth = 1.5 // mm
)

// CalculateOptimalParameters derives spindle speed from the material's
// constant surface speed at the given diameter, RPM = 1000·Vc/(π·D), clamped
// to the machine envelope. Depth of cut is scaled per operation: heavier for
// roughing, lighter for finishing. The returned values always pass
// ValidateSafety.
func (m *Manager) CalculateOptimalParameters(op model.OperationType, mat model.Material, diameter float64) OptimalParameters {
	rpm := m.Limits.MaxSpindleSpeed
	if diameter > 0 {
		rpm = 1000 * mat.SurfaceSpeed / (math.Pi * diameter)
	}
	if rpm > m.Limits.MaxSpindleSpeed {
		rpm = m.Limits.MaxSpindleSpeed
	}
	if rpm < m.Limits.MinSpindleSpeed {
		rpm = m.Limits.MinSpindleSpeed
	}

	feed := baseFeed * mat.FeedFactor
	depth := baseDepth * mat.MaxDepthFactor
	switch op {
	case model.OpRoughing:
		depth *= 1.5
	case model.OpFinishing:
		feed *= 0.5
		depth *= 0.2
	case model.OpParting, model.OpGrooving:
		feed *= 0.4
	case model.OpThreading:
		// threading feed equals the pitch; the operation overrides it
		feed = 0
	}
	if feed > m.Limits.MaxFeedRate {
		feed = m.Limits.MaxFeedRate
	}
	// Depth gives way before feed; defaults land 1% under the
	// removal-rate ceiling for fast-cutting materials.
	if feed > 0 && mat.SurfaceSpeed > 0 {
		if maxDepth := 0.99 * MaxRemovalRate / (feed * mat.SurfaceSpeed * 1000); depth > maxDepth {
			depth = maxDepth
		}
	}
	return OptimalParameters{SpindleSpeed: rpm, FeedRate: feed, DepthOfCut: depth}
}

func toolFor(op model.OperationType) model.ToolType {
	switch op {
	case model.OpFacing:
		return model.ToolFacing
	case model.OpParting:
		return model.ToolParting
	case model.OpThreading:
		return model.ToolThreading
	case model.OpGrooving:
		return model.ToolGrooving
	default:
		return model.ToolTurning
	}
}
