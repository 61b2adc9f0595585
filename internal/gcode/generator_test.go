package gcode

import (
	"strings"
	"testing"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

func newTestTool() model.Tool {
	return model.Tool{
		Name:         "test insert",
		Type:         model.ToolTurning,
		Diameter:     12.0,
		FeedRate:     0.2,
		SpindleSpeed: 1200,
	}
}

func newTestToolpath() *model.Toolpath {
	tp := model.NewToolpath("Test path", "Roughing", newTestTool())
	tp.Rapid(model.Point2D{X: 10, Z: 2}, "")
	tp.Linear(model.Point2D{X: 10, Z: -5}, 0.2, "")
	return tp
}

func TestGenerateEmitsFixedFormats(t *testing.T) {
	gen := New(Options{})
	code := gen.Generate(newTestToolpath())

	// coordinates are 3-decimal, feed is 1-decimal mm/min (0.2 mm/rev × 60)
	if !strings.Contains(code, "G0 X10.000 Z2.000") {
		t.Errorf("missing rapid line, got:\n%s", code)
	}
	if !strings.Contains(code, "G1 X10.000 Z-5.000 F12.0") {
		t.Errorf("missing feed line with converted feed word, got:\n%s", code)
	}
}

func TestGenerateHeaderAndFooter(t *testing.T) {
	gen := New(Options{})
	code := gen.Generate(newTestToolpath())
	lines := strings.Split(strings.TrimSpace(code), "\n")

	// modal setup before motion: metric, absolute, compensation off
	if lines[0] != "G21" || lines[1] != "G90" || lines[2] != "G40" {
		t.Errorf("start code = %v, want G21/G90/G40", lines[:3])
	}
	if lines[3] != "M3 S1200" {
		t.Errorf("spindle start = %q, want M3 S1200", lines[3])
	}

	tail := lines[len(lines)-4:]
	want := []string{"M5", "M9", "G28 U0 W0", "M30"}
	for i, w := range want {
		if tail[i] != w {
			t.Errorf("footer line %d = %q, want %q", i, tail[i], w)
		}
	}
}

func TestGenerateNoSpindleWithoutSpeed(t *testing.T) {
	tool := newTestTool()
	tool.SpindleSpeed = 0
	tp := model.NewToolpath("Test", "Facing", tool)
	tp.Rapid(model.Point2D{X: 5, Z: 1}, "")

	code := New(Options{}).Generate(tp)
	if strings.Contains(code, "M3") {
		t.Error("spindle start must be omitted for a zero spindle speed")
	}
}

func TestGenerateLineNumbers(t *testing.T) {
	gen := New(Options{LineNumbers: true, NumberStep: 5})
	code := gen.Generate(newTestToolpath())
	lines := strings.Split(strings.TrimSpace(code), "\n")

	if !strings.HasPrefix(lines[0], "N5 ") {
		t.Errorf("first line = %q, want N5 prefix", lines[0])
	}
	if !strings.HasPrefix(lines[1], "N10 ") {
		t.Errorf("second line = %q, want N10 prefix", lines[1])
	}
}

func TestGenerateComments(t *testing.T) {
	tp := newTestToolpath()
	code := New(Options{Comments: true}).Generate(tp)
	if !strings.Contains(code, "; Test path (Roughing)") {
		t.Errorf("missing toolpath comment, got:\n%s", code)
	}

	// Fanuc wraps comments in parentheses
	code = New(Options{Dialect: "Fanuc", Comments: true}).Generate(tp)
	if !strings.Contains(code, "( Test path (Roughing))") {
		t.Errorf("Fanuc comment missing parentheses, got:\n%s", code)
	}
}

func TestGenerateDwell(t *testing.T) {
	tp := newTestToolpath()
	tp.Dwell(0.5, "")
	code := New(Options{}).Generate(tp)
	if !strings.Contains(code, "G4 P0.5") {
		t.Errorf("missing dwell, got:\n%s", code)
	}
}

func TestGenerateToolChange(t *testing.T) {
	tp := newTestToolpath()
	tp.Append(model.Movement{Type: model.MoveToolChange, ToolNumber: 3})

	code := New(Options{Dialect: "Fanuc"}).Generate(tp)
	if !strings.Contains(code, "T0303") {
		t.Errorf("Fanuc tool change = missing T0303, got:\n%s", code)
	}
	code = New(Options{Dialect: "LinuxCNC"}).Generate(tp)
	if !strings.Contains(code, "T03 M6") {
		t.Errorf("LinuxCNC tool change missing T03 M6, got:\n%s", code)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	tp := newTestToolpath()
	a := New(Options{Dialect: "Haas", LineNumbers: true}).Generate(tp)
	b := New(Options{Dialect: "Haas", LineNumbers: true}).Generate(tp)
	if a != b {
		t.Error("identical toolpath and options must serialize identically")
	}
}

func TestDialectByNameFallback(t *testing.T) {
	if d := DialectByName("Fanuc"); d.Name != "Fanuc" {
		t.Errorf("got %q, want Fanuc", d.Name)
	}
	if d := DialectByName("NoSuchControl"); d.Name != "Generic" {
		t.Errorf("unknown dialect should fall back to Generic, got %q", d.Name)
	}
	if d := DialectByName(""); d.Name != "Generic" {
		t.Errorf("empty dialect should fall back to Generic, got %q", d.Name)
	}
}

func TestFanucProgramFraming(t *testing.T) {
	code := New(Options{Dialect: "Fanuc"}).Generate(newTestToolpath())
	lines := strings.Split(strings.TrimSpace(code), "\n")
	if lines[0] != "%" || lines[1] != "O0001" {
		t.Errorf("Fanuc program start = %v, want %% and O0001", lines[:2])
	}
	if lines[len(lines)-1] != "%" {
		t.Errorf("Fanuc program must end with %%, got %q", lines[len(lines)-1])
	}
}
