package gcode

import (
	"math"
	"testing"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
)

func TestParseTracksAbsolutePosition(t *testing.T) {
	code := `G21
G90
G0 X10.000 Z2.000
G1 X10.000 Z-5.000 F12.0
G1 X0.000 Z-5.000
G0 X20.000 Z2.000
`
	moves := Parse(code)
	if len(moves) != 4 {
		t.Fatalf("move count = %d, want 4", len(moves))
	}
	if moves[0].Type != ParsedRapid || moves[0].ToX != 10 || moves[0].ToZ != 2 {
		t.Errorf("move 0 = %+v", moves[0])
	}
	if moves[1].FromX != 10 || moves[1].FromZ != 2 {
		t.Errorf("move 1 should start where move 0 ended, got %+v", moves[1])
	}
	// F is modal: the second G1 keeps 12 mm/min
	if moves[2].FeedRate != 12 {
		t.Errorf("modal feed = %.1f, want 12", moves[2].FeedRate)
	}
}

func TestParseSkipsCommentsAndLineNumbers(t *testing.T) {
	code := `; program comment
N10 G0 X5.000 Z1.000
N20 G1 X5.000 Z-2.000 F10.0 (inline comment)
(standalone comment)
`
	moves := Parse(code)
	if len(moves) != 2 {
		t.Fatalf("move count = %d, want 2", len(moves))
	}
	if moves[1].Type != ParsedFeed || moves[1].ToZ != -2 {
		t.Errorf("move 1 = %+v", moves[1])
	}
}

func TestParseDwell(t *testing.T) {
	moves := Parse("G4 P0.5\n")
	if len(moves) != 1 || moves[0].Type != ParsedDwell {
		t.Fatalf("moves = %+v", moves)
	}
	if moves[0].DwellSec != 0.5 {
		t.Errorf("dwell = %.2f, want 0.5", moves[0].DwellSec)
	}
}

func TestParseRoundTrip(t *testing.T) {
	tp := model.NewToolpath("Round trip", "Finishing", newTestTool())
	tp.Rapid(model.Point2D{X: 42, Z: 5}, "")
	tp.Linear(model.Point2D{X: 42, Z: -30.5}, 0.15, "")
	tp.Linear(model.Point2D{X: 44, Z: -30.5}, 0.15, "")

	code := New(Options{LineNumbers: true, Comments: true}).Generate(tp)
	moves := Parse(code)

	counts := CountByType(moves)
	if counts[ParsedFeed] != 2 {
		t.Errorf("feed count = %d, want 2", counts[ParsedFeed])
	}
	if counts[ParsedRapid] < 1 {
		t.Errorf("rapid count = %d, want at least the positioning move", counts[ParsedRapid])
	}

	// the parsed end position matches the generated toolpath
	last := moves[len(moves)-1]
	if math.Abs(last.ToX-44) > 1e-9 || math.Abs(last.ToZ+30.5) > 1e-9 {
		t.Errorf("final position = (%.3f, %.3f), want (44, -30.5)", last.ToX, last.ToZ)
	}
	// emitted feed is mm/min
	if math.Abs(moves[len(moves)-1].FeedRate-9) > 1e-9 {
		t.Errorf("feed = %.1f mm/min, want 0.15 mm/rev × 60 = 9", last.FeedRate)
	}
}
