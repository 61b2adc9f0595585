// Package gcode serializes toolpaths into machine code text and provides
// the matching re-parser and machine-limit checks.
package gcode

import (
	"fmt"
	"strings"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

// Options control the textual output. The zero value emits Generic dialect
// code without line numbers or comments.
type Options struct {
	Dialect     string `json:"dialect"`
	LineNumbers bool   `json:"line_numbers"`
	NumberStep  int    `json:"number_step"` // N increment, default 10
	Comments    bool   `json:"comments"`
}

// Generator produces G-code from a toolpath. Serialization is deterministic:
// identical toolpaths and options yield identical text.
type Generator struct {
	opts    Options
	dialect Dialect
	lineNo  int
}

func New(opts Options) *Generator {
	if opts.NumberStep <= 0 {
		opts.NumberStep = 10
	}
	return &Generator{
		opts:    opts,
		dialect: DialectByName(opts.Dialect),
	}
}

// Generate serializes one toolpath with program framing. Coordinates are
// fixed 3-decimal X/Z words; feed words are 1-decimal, converted from
// mm/rev to mm/min at emission only.
func (g *Generator) Generate(tp *model.Toolpath) string {
	var b strings.Builder
	g.lineNo = g.opts.NumberStep

	g.writeHeader(&b, tp)
	for _, m := range tp.Movements {
		g.writeMovement(&b, m)
	}
	g.writeFooter(&b)
	return b.String()
}

func (g *Generator) writeHeader(b *strings.Builder, tp *model.Toolpath) {
	d := g.dialect
	for _, line := range d.ProgramStart {
		g.writeLine(b, line)
	}
	if g.opts.Comments {
		g.writeComment(b, fmt.Sprintf("%s (%s)", tp.Name, tp.Operation))
		g.writeComment(b, fmt.Sprintf("Tool: %s D%.1f, feed %.2f mm/rev, %0.f RPM",
			tp.Tool.Type, tp.Tool.Diameter, tp.Tool.FeedRate, tp.Tool.SpindleSpeed))
	}
	for _, line := range d.StartCode {
		g.writeLine(b, line)
	}
	if d.SpindleStart != "" && tp.Tool.SpindleSpeed > 0 {
		g.writeLine(b, fmt.Sprintf(d.SpindleStart, tp.Tool.SpindleSpeed))
	}
}

func (g *Generator) writeFooter(b *strings.Builder) {
	d := g.dialect
	if d.SpindleStop != "" {
		g.writeLine(b, d.SpindleStop)
	}
	if d.CoolantOff != "" {
		g.writeLine(b, d.CoolantOff)
	}
	if d.ReturnHome != "" {
		g.writeLine(b, d.ReturnHome)
	}
	for _, line := range d.ProgramEnd {
		g.writeLine(b, line)
	}
}

func (g *Generator) writeMovement(b *strings.Builder, m model.Movement) {
	if g.opts.Comments && m.Comment != "" {
		g.writeComment(b, m.Comment)
	}
	switch m.Type {
	case model.MoveRapid:
		g.writeLine(b, fmt.Sprintf("G0 X%.3f Z%.3f", m.End.X, m.End.Z))
	case model.MoveLinear:
		g.writeLine(b, g.feedMove("G1", m))
	case model.MoveCircularCW:
		g.writeLine(b, g.arcMove("G2", m))
	case model.MoveCircularCCW:
		g.writeLine(b, g.arcMove("G3", m))
	case model.MoveDwell:
		g.writeLine(b, fmt.Sprintf("G4 P%.1f", m.DwellSeconds))
	case model.MoveToolChange:
		t := fmt.Sprintf("%02d", m.ToolNumber)
		g.writeLine(b, strings.ReplaceAll(g.dialect.ToolChange, "{t}", t))
	}
}

// feedMove emits a cutting move, appending the feed word only for positive
// feeds. The mm/rev value is converted ×60 to mm/min here and nowhere else.
func (g *Generator) feedMove(cmd string, m model.Movement) string {
	line := fmt.Sprintf("%s X%.3f Z%.3f", cmd, m.End.X, m.End.Z)
	if m.FeedRate > 0 {
		line += fmt.Sprintf(" F%.1f", m.FeedRate*60)
	}
	return line
}

func (g *Generator) arcMove(cmd string, m model.Movement) string {
	line := fmt.Sprintf("%s X%.3f Z%.3f", cmd, m.End.X, m.End.Z)
	if m.Radius > 0 {
		line += fmt.Sprintf(" R%.3f", m.Radius)
	}
	if m.FeedRate > 0 {
		line += fmt.Sprintf(" F%.1f", m.FeedRate*60)
	}
	return line
}

func (g *Generator) writeComment(b *strings.Builder, text string) {
	d := g.dialect
	g.writeLine(b, d.CommentPrefix+" "+text+d.CommentSuffix)
}

func (g *Generator) writeLine(b *strings.Builder, code string) {
	if g.opts.LineNumbers {
		fmt.Fprintf(b, "N%d %s\n", g.lineNo, code)
		g.lineNo += g.opts.NumberStep
		return
	}
	b.WriteString(code + "\n")
}
