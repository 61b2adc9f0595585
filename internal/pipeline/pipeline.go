// Package pipeline orchestrates a full toolpath-generation run: parameter
// validation and defaulting, one shared profile extraction, per-operation
// toolpath generation in canonical order, and statistics aggregation.
package pipeline

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/geom"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/operations"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/params"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Settings holds the global parameters of one pipeline run.
type Settings struct {
	Axis             geom.Axis           `json:"axis"`
	SafetyHeight     float64             `json:"safety_height"`     // mm above stock for rapids
	Clearance        float64             `json:"clearance"`         // mm
	ProfileTolerance float64             `json:"profile_tolerance"` // mm
	Material         string              `json:"material"`
	StockDiameter    float64             `json:"stock_diameter"` // mm
	StockLength      float64             `json:"stock_length"`   // mm
	Limits           model.MachineLimits `json:"limits"`
}

// DefaultSettings returns a run configuration for a mid-size steel part.
func DefaultSettings() Settings {
	return Settings{
		Axis:             geom.ZAxis(),
		SafetyHeight:     5.0,
		Clearance:        2.0,
		ProfileTolerance: 0.01,
		Material:         "Steel",
		StockDiameter:    60.0,
		StockLength:      120.0,
		Limits:           model.DefaultMachineLimits(),
	}
}

// OperationSpec is one enabled operation in the run plan. Exactly one of
// the parameter pointers matching Type must be set.
type OperationSpec struct {
	Type    model.OperationType `json:"type"`
	Enabled bool                `json:"enabled"`
	Tool    model.Tool          `json:"tool"`

	Facing     *model.FacingParameters     `json:"facing,omitempty"`
	Roughing   *model.RoughingParameters   `json:"roughing,omitempty"`
	Finishing  *model.FinishingParameters  `json:"finishing,omitempty"`
	Parting    *model.PartingParameters    `json:"parting,omitempty"`
	Threading  *model.ThreadingParameters  `json:"threading,omitempty"`
	Grooving   *model.GroovingParameters   `json:"grooving,omitempty"`
	Contouring *model.ContouringParameters `json:"contouring,omitempty"`
}

// ProgressFunc reports pipeline progress: percent in 0–100 plus a status
// message. Invoked synchronously from whichever context runs the stage.
type ProgressFunc func(percent float64, status string)

// Pipeline is the single entry point for toolpath generation.
type Pipeline struct {
	Settings Settings
	Plan     []OperationSpec

	manager *params.Manager
	log     *zap.Logger
}

func New(settings Settings, plan []OperationSpec, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		Settings: settings,
		Plan:     plan,
		manager:  params.NewManager(settings.Limits),
		log:      log,
	}
}

// canonicalOrder fixes the generation sequence regardless of plan order.
// Parting runs last so the part stays held as long as possible.
var canonicalOrder = map[model.OperationType]int{
	model.OpFacing:     0,
	model.OpRoughing:   1,
	model.OpFinishing:  2,
	model.OpContouring: 3,
	model.OpGrooving:   4,
	model.OpThreading:  5,
	model.OpParting:    6,
}

// Run executes the pipeline synchronously. Every failure path yields a
// structured result; nothing escapes the pipeline boundary.
func (p *Pipeline) Run(part geom.Solid) *model.GenerationResult {
	return p.run(part, nil, nil)
}

func (p *Pipeline) run(part geom.Solid, progress ProgressFunc, cancelled *atomic.Bool) (result *model.GenerationResult) {
	result = &model.GenerationResult{Success: true}
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("pipeline panic", zap.Any("panic", r))
			result.AddError(fmt.Sprintf("internal failure: %v", r))
		}
	}()
	report := func(pct float64, status string) {
		if progress != nil {
			progress(pct, status)
		}
	}
	isCancelled := func() bool { return cancelled != nil && cancelled.Load() }

	report(0, "analyzing configuration")
	if part == nil {
		result.AddError("no part shape supplied")
		return result
	}

	mat := model.MaterialByName(p.Settings.Material)

	// Stage 1: validate and fill parameters per enabled operation. An
	// invalid operation is skipped with a warning; a missing tool is fatal.
	var specs []OperationSpec
	for _, spec := range p.Plan {
		if !spec.Enabled {
			continue
		}
		if spec.Tool == (model.Tool{}) {
			result.AddError(fmt.Sprintf("%s: no tool assigned", spec.Type))
			return result
		}
		cfg := configFor(spec)
		p.manager.FillMissingParameters(spec.Type, cfg, mat, spec.Tool, p.Settings.StockDiameter)
		vr := p.manager.ValidateOperationParameters(spec.Type, cfg, mat, spec.Tool)
		for _, w := range vr.Warnings {
			result.AddWarning(fmt.Sprintf("%s: %s", spec.Type, w))
		}
		if vr.Status != params.StatusValid {
			for _, m := range vr.Missing {
				result.AddWarning(fmt.Sprintf("%s: missing parameter %s", spec.Type, m))
			}
			for _, inv := range vr.Invalid {
				result.AddWarning(fmt.Sprintf("%s: %s", spec.Type, inv))
			}
			for _, s := range vr.SafetyIssues {
				result.AddWarning(fmt.Sprintf("%s: %s", spec.Type, s))
			}
			result.AddWarning(fmt.Sprintf("%s skipped: configuration is %s", spec.Type, vr.Status))
			p.log.Warn("operation skipped", zap.Stringer("operation", spec.Type), zap.Stringer("status", vr.Status))
			continue
		}
		applyFilled(&spec, cfg)
		specs = append(specs, spec)
	}
	if isCancelled() {
		result.AddError("cancelled")
		return result
	}

	// Stage 2: one shared profile for the whole run.
	report(15, "extracting profile")
	prof, err := profile.Extract(part, p.Settings.Axis, p.Settings.ProfileTolerance)
	if err != nil {
		result.AddError(err.Error())
		return result
	}
	if prof.IsEmpty() {
		result.AddError("profile extraction produced an empty profile")
		return result
	}
	p.log.Info("profile extracted",
		zap.Int("segments", len(prof.Segments)),
		zap.Float64("min_z", prof.MinZ()),
		zap.Float64("max_z", prof.MaxZ()))

	sort.SliceStable(specs, func(i, j int) bool {
		return canonicalOrder[specs[i].Type] < canonicalOrder[specs[j].Type]
	})

	// Stage 3: generate each operation's toolpath.
	for i, spec := range specs {
		if isCancelled() {
			result.AddError("cancelled")
			return result
		}
		pct := 20 + 70*float64(i)/float64(len(specs))
		report(pct, fmt.Sprintf("generating %s", spec.Type))

		op, err := buildOperation(spec)
		pr := model.ProcessingResult{Success: true}
		if err == nil && !op.Validate() {
			err = &model.OperationError{Operation: op.Name(), Reason: "parameters failed validation"}
		}
		var tp *model.Toolpath
		if err == nil {
			tp, err = op.GenerateToolpath(prof)
		}
		if err != nil {
			pr.Success = false
			pr.Error = err.Error()
			result.AddWarning(fmt.Sprintf("%s failed: %v", spec.Type, err))
			p.log.Warn("operation failed", zap.Stringer("operation", spec.Type), zap.Error(err))
			result.Operations = append(result.Operations, pr)
			continue
		}

		pr.Toolpath = tp
		pr.Stats = model.OperationStats{
			Name:            tp.Name,
			Type:            spec.Type.String(),
			MovementCount:   tp.MovementCount(),
			EstimatedTime:   tp.EstimateTime(),
			MaterialRemoved: removedVolume(spec, prof),
			CuttingLength:   tp.CuttingLength(),
		}
		if c, ok := op.(*operations.Contouring); ok {
			pr.Stats = c.Stats()
		}
		result.Operations = append(result.Operations, pr)
		result.Toolpaths = append(result.Toolpaths, tp)
		p.log.Info("toolpath generated",
			zap.Stringer("operation", spec.Type),
			zap.Int("movements", tp.MovementCount()))
	}

	// Stage 4: aggregate statistics.
	report(92, "computing statistics")
	for _, pr := range result.Operations {
		if !pr.Success {
			continue
		}
		result.TotalTime += pr.Stats.EstimatedTime
		result.TotalMaterialRemoved += pr.Stats.MaterialRemoved
		result.TotalMovements += pr.Stats.MovementCount
	}

	report(100, "done")
	return result
}

// buildOperation constructs the concrete operation for a spec.
func buildOperation(spec OperationSpec) (operations.Operation, error) {
	switch spec.Type {
	case model.OpFacing:
		if spec.Facing != nil {
			return operations.NewFacing(spec.Tool, *spec.Facing), nil
		}
	case model.OpRoughing:
		if spec.Roughing != nil {
			return operations.NewRoughing(spec.Tool, *spec.Roughing), nil
		}
	case model.OpFinishing:
		if spec.Finishing != nil {
			return operations.NewFinishing(spec.Tool, *spec.Finishing), nil
		}
	case model.OpParting:
		if spec.Parting != nil {
			return operations.NewParting(spec.Tool, *spec.Parting), nil
		}
	case model.OpThreading:
		if spec.Threading != nil {
			return operations.NewThreading(spec.Tool, *spec.Threading), nil
		}
	case model.OpGrooving:
		if spec.Grooving != nil {
			return operations.NewGrooving(spec.Tool, *spec.Grooving), nil
		}
	case model.OpContouring:
		if spec.Contouring != nil {
			return operations.NewContouring(spec.Tool, *spec.Contouring), nil
		}
	}
	return nil, &model.ParameterError{Operation: spec.Type.String(), Parameter: "parameters",
		Reason: "no parameter block for the operation type"}
}

// configFor flattens an operation spec into the manager's generic bag.
func configFor(spec OperationSpec) *params.Config {
	cfg := params.NewConfig()
	set := func(key string, v float64) {
		cfg.SetNumber(key, v)
	}
	if spec.Tool.FeedRate > 0 {
		set("feed_rate", spec.Tool.FeedRate)
	}
	if spec.Tool.SpindleSpeed > 0 {
		set("spindle_speed", spec.Tool.SpindleSpeed)
	}
	if spec.Tool.DepthOfCut > 0 {
		set("depth_of_cut", spec.Tool.DepthOfCut)
	}
	switch spec.Type {
	case model.OpFacing:
		if f := spec.Facing; f != nil {
			set("start_diameter", f.StartDiameter)
			set("end_diameter", f.EndDiameter)
			set("start_z", f.StartZ)
			set("end_z", f.EndZ)
			if f.DepthOfCut > 0 {
				set("depth_of_cut", f.DepthOfCut)
			}
		}
	case model.OpRoughing:
		if r := spec.Roughing; r != nil {
			set("start_diameter", r.StartDiameter)
			set("end_diameter", r.EndDiameter)
			set("start_z", r.StartZ)
			set("end_z", r.EndZ)
			set("stock_allowance", r.StockAllowance)
			if r.DepthOfCut > 0 {
				set("depth_of_cut", r.DepthOfCut)
			}
		}
	case model.OpParting:
		if pt := spec.Parting; pt != nil {
			set("parting_diameter", pt.PartingDiameter)
			set("center_hole_diameter", pt.CenterHoleDiameter)
		}
	case model.OpThreading:
		if th := spec.Threading; th != nil {
			if th.MajorDiameter > 0 {
				set("major_diameter", th.MajorDiameter)
			}
			if th.Pitch > 0 {
				set("pitch", th.Pitch)
			}
			if th.Designation != "" {
				cfg.SetString("designation", th.Designation)
				// designation supplies diameter and pitch
				if th.MajorDiameter == 0 {
					set("major_diameter", 1)
					set("pitch", 0.5)
				}
			}
			set("length", th.Length)
		}
	case model.OpGrooving:
		if g := spec.Grooving; g != nil {
			set("groove_z", g.GrooveZ)
			set("width", g.Width)
			set("depth", g.Depth)
			set("outer_diameter", g.OuterDiameter)
		}
	case model.OpContouring:
		if ct := spec.Contouring; ct != nil {
			set("profile_tolerance", ct.ProfileTolerance)
			set("stock_allowance", ct.StockAllowance)
			if ct.DepthOfCut > 0 {
				set("depth_of_cut", ct.DepthOfCut)
			}
		}
	}
	return cfg
}

// applyFilled copies defaulted cutting values back into the spec's tool so
// generation uses them. Explicit values are never overwritten because
// FillMissingParameters leaves provided keys alone.
func applyFilled(spec *OperationSpec, cfg *params.Config) {
	if spec.Tool.FeedRate <= 0 {
		if v, ok := cfg.Number("feed_rate"); ok {
			spec.Tool.FeedRate = v
		}
	}
	if spec.Tool.SpindleSpeed <= 0 {
		if v, ok := cfg.Number("spindle_speed"); ok {
			spec.Tool.SpindleSpeed = v
		}
	}
	if spec.Tool.DepthOfCut <= 0 {
		if v, ok := cfg.Number("depth_of_cut"); ok {
			spec.Tool.DepthOfCut = v
		}
	}
}

// removedVolume estimates the material volume an operation removes, in mm³.
// Closed-form approximations per operation type; contouring overrides this
// with its integrated value.
func removedVolume(spec OperationSpec, prof *profile.Profile) float64 {
	switch spec.Type {
	case model.OpFacing:
		if f := spec.Facing; f != nil {
			r := f.StartDiameter / 2
			return math.Pi * r * r * math.Max(0, f.StartZ-f.EndZ-f.StockAllowance)
		}
	case model.OpRoughing:
		if r := spec.Roughing; r != nil {
			ro := r.StartDiameter / 2
			ri := r.EndDiameter/2 + r.StockAllowance
			return math.Pi * (ro*ro - ri*ri) * math.Max(0, r.StartZ-r.EndZ)
		}
	case model.OpFinishing:
		// the finishing skin: a nominal allowance layer over the surface
		if !prof.IsEmpty() {
			const skin = 0.5 // mm, matches the default roughing stock allowance
			return 2 * math.Pi * prof.MaxRadius() * (prof.MaxZ() - prof.MinZ()) * skin
		}
	case model.OpParting:
		if pt := spec.Parting; pt != nil {
			ro := pt.PartingDiameter / 2
			ri := pt.CenterHoleDiameter / 2
			return math.Pi * (ro*ro - ri*ri) * spec.Tool.Diameter
		}
	case model.OpThreading:
		if th := spec.Threading; th != nil {
			op := operations.NewThreading(spec.Tool, *th)
			if geo, err := op.Geometry(); err == nil {
				return 0.5 * geo.Depth * math.Pi * geo.PitchDiameter * th.Length
			}
		}
	case model.OpGrooving:
		if g := spec.Grooving; g != nil {
			ro := g.OuterDiameter / 2
			ri := ro - g.Depth
			return math.Pi * (ro*ro - ri*ri) * g.Width
		}
	}
	return 0
}
