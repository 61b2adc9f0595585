package gcode

import (
	"regexp"
	"strconv"
	"strings"
)

// MoveType classifies a parsed G-code movement.
type MoveType int

const (
	ParsedRapid MoveType = iota // G0
	ParsedFeed                  // G1
	ParsedArc                   // G2/G3
	ParsedDwell                 // G4
)

// Move is a single parsed movement with absolute start and end positions.
type Move struct {
	Type     MoveType
	FromX    float64
	FromZ    float64
	ToX      float64
	ToZ      float64
	FeedRate float64 // mm/min, as written
	DwellSec float64
}

var wordRe = regexp.MustCompile(`([XZFPR])(-?\d+\.?\d*)`)

// Parse reads generated lathe G-code back into structured moves. It tracks
// absolute X/Z state across lines, skipping comments and non-motion words.
// Used by the CLI stats output and by round-trip tests.
func Parse(code string) []Move {
	var moves []Move
	curX, curZ := 0.0, 0.0
	curFeed := 0.0

	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// strip inline comments, semicolon and parenthetical styles
		if idx := strings.Index(line, ";"); idx >= 0 {
			line = line[:idx]
		}
		if idx := strings.Index(line, "("); idx >= 0 {
			if end := strings.Index(line, ")"); end > idx {
				line = line[:idx] + line[end+1:]
			} else {
				line = line[:idx]
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// drop the N word, the command is what follows
		if line[0] == 'N' {
			if sp := strings.IndexByte(line, ' '); sp > 0 {
				line = line[sp+1:]
			} else {
				continue
			}
		}

		var mt MoveType
		switch {
		case strings.HasPrefix(line, "G0 ") || line == "G0":
			mt = ParsedRapid
		case strings.HasPrefix(line, "G1 ") || line == "G1":
			mt = ParsedFeed
		case strings.HasPrefix(line, "G2 ") || strings.HasPrefix(line, "G3 "):
			mt = ParsedArc
		case strings.HasPrefix(line, "G4 ") || line == "G4":
			mt = ParsedDwell
		default:
			continue
		}

		toX, toZ := curX, curZ
		dwell := 0.0
		for _, w := range wordRe.FindAllStringSubmatch(line, -1) {
			v, err := strconv.ParseFloat(w[2], 64)
			if err != nil {
				continue
			}
			switch w[1] {
			case "X":
				toX = v
			case "Z":
				toZ = v
			case "F":
				curFeed = v
			case "P":
				dwell = v
			}
		}

		m := Move{
			Type:  mt,
			FromX: curX, FromZ: curZ,
			ToX: toX, ToZ: toZ,
			DwellSec: dwell,
		}
		if mt == ParsedFeed || mt == ParsedArc {
			m.FeedRate = curFeed
		}
		moves = append(moves, m)
		curX, curZ = toX, toZ
	}
	return moves
}

// CountByType tallies parsed moves per movement type.
func CountByType(moves []Move) map[MoveType]int {
	counts := make(map[MoveType]int)
	for _, m := range moves {
		counts[m.Type]++
	}
	return counts
}
