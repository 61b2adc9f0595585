// IntuiCAM - lathe toolpath generator
//
// Generates facing, roughing, finishing, contouring, grooving, threading
// and parting toolpaths for a solid of revolution and writes
// dialect-specific G-code plus optional DXF, PDF and XLSX reports.
//
// Build:
//   go build -o intuicam ./cmd/intuicam
//
// Examples:
//   intuicam -part shaft -material Aluminum -ops facing,roughing,finishing -o shaft.nc
//   intuicam -part cylinder -ops contouring,parting -dialect LinuxCNC -pdf setup.pdf
//   intuicam -job myjob.json -o out.nc -async

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/export"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/gcode"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/geom"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/logger"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/operations"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/pipeline"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/project"
)

func main() {
	var (
		partKind    = flag.String("part", "shaft", "demo part shape: cylinder, shaft or grooved")
		diameter    = flag.Float64("diameter", 60.0, "stock diameter in mm")
		length      = flag.Float64("length", 120.0, "stock length in mm")
		material    = flag.String("material", "", "workpiece material (default from config)")
		ops         = flag.String("ops", "facing,roughing,finishing", "comma-separated operations")
		thread      = flag.String("thread", "M20x1.5", "thread designation for the threading operation")
		dialect     = flag.String("dialect", "", "G-code dialect: Fanuc, Haas, LinuxCNC or Generic")
		lineNumbers = flag.Bool("line-numbers", false, "emit N-numbered lines")
		comments    = flag.Bool("comments", true, "emit operation and tool comments")
		outPath     = flag.String("o", "out.nc", "G-code output path")
		dxfPath     = flag.String("dxf", "", "write the extracted profile as DXF")
		pdfPath     = flag.String("pdf", "", "write a setup sheet PDF")
		xlsxPath    = flag.String("xlsx", "", "write an operation summary XLSX")
		jobPath     = flag.String("job", "", "load settings and plan from a job file")
		saveJob     = flag.String("save-job", "", "save the resolved settings and plan to a job file")
		async       = flag.Bool("async", false, "run the pipeline on a background goroutine")
		logLevel    = flag.String("log", "info", "log level: debug, info, warn or error")
		color       = flag.Bool("color", true, "colorized log output")
	)
	flag.Parse()

	log := logger.New(logger.ParseLevel(*logLevel), *color)
	defer log.Sync()

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn("config unreadable, using defaults", zap.Error(err))
		cfg = project.DefaultAppConfig()
	}

	settings := pipeline.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	settings.Material = cfg.DefaultMaterial
	if *material != "" {
		settings.Material = *material
	}
	settings.StockDiameter = *diameter
	settings.StockLength = *length

	var plan []pipeline.OperationSpec
	if *jobPath != "" {
		job, err := project.LoadJob(*jobPath)
		if err != nil {
			log.Fatal("cannot load job", zap.String("path", *jobPath), zap.Error(err))
		}
		settings = job.Settings
		plan = job.Plan
		log.Info("job loaded", zap.String("name", job.Name), zap.Int("operations", len(plan)))
	} else {
		plan, err = buildPlan(*ops, *thread, settings)
		if err != nil {
			log.Fatal("invalid plan", zap.Error(err))
		}
	}

	if *saveJob != "" {
		job := project.NewJob(strings.TrimSuffix(*saveJob, ".json"), settings)
		job.Plan = plan
		if err := project.SaveJob(*saveJob, job); err != nil {
			log.Fatal("cannot save job", zap.Error(err))
		}
		cfg.AddRecentJob(*saveJob)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
			log.Warn("cannot save config", zap.Error(err))
		}
		log.Info("job saved", zap.String("path", *saveJob))
	}

	part, err := buildPart(*partKind, *diameter/2, *length)
	if err != nil {
		log.Fatal("invalid part", zap.Error(err))
	}

	pl := pipeline.New(settings, plan, log)
	progress := func(percent float64, status string) {
		log.Info("progress", zap.Float64("percent", percent), zap.String("status", status))
	}

	var result *model.GenerationResult
	if *async {
		run := pl.RunAsync(part, progress)
		result = run.Result()
	} else {
		result = pl.Run(part)
	}

	for _, w := range result.Warnings {
		log.Warn(w)
	}
	if !result.Success {
		for _, e := range result.Errors {
			log.Error(e)
		}
		os.Exit(1)
	}

	dialectName := cfg.DefaultDialect
	if *dialect != "" {
		dialectName = *dialect
	}
	program := renderProgram(result, gcode.Options{
		Dialect:     dialectName,
		LineNumbers: *lineNumbers,
		Comments:    *comments,
	})
	if err := os.WriteFile(*outPath, []byte(program), 0644); err != nil {
		log.Fatal("cannot write G-code", zap.Error(err))
	}
	log.Info("G-code written", zap.String("path", *outPath), zap.String("dialect", dialectName))

	for _, tp := range result.Toolpaths {
		for _, w := range gcode.CheckMachineLimits(tp, settings.Limits) {
			log.Warn(w, zap.String("toolpath", tp.Name))
		}
	}
	moves := gcode.Parse(program)
	counts := gcode.CountByType(moves)
	log.Info("program statistics",
		zap.Int("rapids", counts[gcode.ParsedRapid]),
		zap.Int("feeds", counts[gcode.ParsedFeed]),
		zap.Int("arcs", counts[gcode.ParsedArc]),
		zap.Float64("estimated_minutes", result.TotalTime),
		zap.Float64("material_removed_mm3", result.TotalMaterialRemoved))

	if *dxfPath != "" {
		prof, err := profile.Extract(part, settings.Axis, settings.ProfileTolerance)
		if err != nil {
			log.Fatal("profile extraction failed", zap.Error(err))
		}
		if err := export.WriteProfileDXF(*dxfPath, prof); err != nil {
			log.Fatal("cannot write DXF", zap.Error(err))
		}
		log.Info("profile DXF written", zap.String("path", *dxfPath))
	}
	if *pdfPath != "" {
		name := *saveJob
		if name == "" {
			name = *partKind
		}
		if err := export.WriteSetupSheet(*pdfPath, name, result, settings); err != nil {
			log.Fatal("cannot write setup sheet", zap.Error(err))
		}
		log.Info("setup sheet written", zap.String("path", *pdfPath))
	}
	if *xlsxPath != "" {
		if err := export.WriteSummaryXLSX(*xlsxPath, result); err != nil {
			log.Fatal("cannot write summary", zap.Error(err))
		}
		log.Info("summary written", zap.String("path", *xlsxPath))
	}
}

// buildPart constructs one of the built-in demo shapes. The shaft and grooved
// variants give the profile extractor something less trivial than a cylinder.
func buildPart(kind string, radius, length float64) (geom.Solid, error) {
	switch strings.ToLower(kind) {
	case "cylinder":
		return geom.Cylinder(radius, length), nil
	case "shaft":
		return geom.SteppedShaft([]geom.ShaftStep{
			{Radius: radius, Length: length * 0.4},
			{Radius: radius * 0.75, Length: length * 0.35},
			{Radius: radius * 0.5, Length: length * 0.25},
		}), nil
	case "grooved":
		return geom.Grooved(radius, length, length/2, 4.0, 2.0), nil
	default:
		return nil, fmt.Errorf("unknown part shape %q", kind)
	}
}

// buildPlan assembles operation specs from a comma-separated list, deriving
// geometry from the stock dimensions. Cutting values are left to the
// parameter manager's material-based defaults.
func buildPlan(list, thread string, settings pipeline.Settings) ([]pipeline.OperationSpec, error) {
	mat := model.MaterialByName(settings.Material)
	stockD := settings.StockDiameter
	stockL := settings.StockLength

	turningTool := model.Tool{Name: "CNMG turning insert", Type: model.ToolTurning, Diameter: 12.0, TipRadius: 0.8}
	facingTool := model.Tool{Name: "facing insert", Type: model.ToolFacing, Diameter: 12.0, TipRadius: 0.8}
	partingTool := model.Tool{Name: "3mm parting blade", Type: model.ToolParting, Diameter: 3.0}
	threadingTool := model.Tool{Name: "60deg threading insert", Type: model.ToolThreading, Diameter: 16.0, TipRadius: 0.1}
	groovingTool := model.Tool{Name: "3mm grooving insert", Type: model.ToolGrooving, Diameter: 3.0}

	var plan []pipeline.OperationSpec
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		switch name {
		case "facing":
			p := model.DefaultFacingParameters(mat)
			p.StartDiameter = stockD + 2.0
			p.StartZ = stockL + 1.0
			p.EndZ = stockL
			plan = append(plan, pipeline.OperationSpec{
				Type: model.OpFacing, Enabled: true, Tool: facingTool, Facing: &p,
			})
		case "roughing":
			p := model.DefaultRoughingParameters(mat)
			p.StartDiameter = stockD + 2.0
			p.EndDiameter = stockD * 0.7
			p.StartZ = stockL
			p.EndZ = stockL * 0.2
			p.FollowProfile = true
			plan = append(plan, pipeline.OperationSpec{
				Type: model.OpRoughing, Enabled: true, Tool: turningTool, Roughing: &p,
			})
		case "finishing":
			p := model.DefaultFinishingParameters(mat)
			plan = append(plan, pipeline.OperationSpec{
				Type: model.OpFinishing, Enabled: true, Tool: turningTool, Finishing: &p,
			})
		case "contouring":
			p := operations.GetDefaultParameters(settings.Material, "medium")
			plan = append(plan, pipeline.OperationSpec{
				Type: model.OpContouring, Enabled: true, Tool: turningTool, Contouring: &p,
			})
		case "grooving":
			p := model.DefaultGroovingParameters(mat)
			p.GrooveZ = stockL / 2
			p.Width = 4.0
			p.Depth = 2.0
			p.OuterDiameter = stockD
			plan = append(plan, pipeline.OperationSpec{
				Type: model.OpGrooving, Enabled: true, Tool: groovingTool, Grooving: &p,
			})
		case "threading":
			p := model.DefaultThreadingParameters(mat)
			p.Designation = thread
			p.StartZ = stockL
			p.Length = stockL * 0.15
			plan = append(plan, pipeline.OperationSpec{
				Type: model.OpThreading, Enabled: true, Tool: threadingTool, Threading: &p,
			})
		case "parting":
			p := model.DefaultPartingParameters(mat)
			p.PartingDiameter = stockD
			p.AutoPosition = true
			plan = append(plan, pipeline.OperationSpec{
				Type: model.OpParting, Enabled: true, Tool: partingTool, Parting: &p,
			})
		default:
			return nil, fmt.Errorf("unknown operation %q", name)
		}
	}
	if len(plan) == 0 {
		return nil, fmt.Errorf("no operations selected")
	}
	return plan, nil
}

// renderProgram serializes every generated toolpath into one program text.
func renderProgram(result *model.GenerationResult, opts gcode.Options) string {
	var b strings.Builder
	for i, tp := range result.Toolpaths {
		if i > 0 {
			b.WriteString("\n")
		}
		gen := gcode.New(opts)
		b.WriteString(gen.Generate(tp))
	}
	return b.String()
}
