package gcode

// Dialect defines a post-processor configuration for a machine controller
// family. Dialects override program framing, tool-change, and spindle
// formatting; the Movement→code mapping is shared by all of them.
// The "{t}" placeholder in ToolChange is replaced with the two-digit turret
// position.
type Dialect struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	ProgramStart []string `json:"program_start"` // lines before the header block
	StartCode    []string `json:"start_code"`    // modal setup (units, absolute, comp off)
	SpindleStart string   `json:"spindle_start"` // spindle on, e.g. "M3 S%.0f"
	SpindleStop  string   `json:"spindle_stop"`
	CoolantOff   string   `json:"coolant_off"`
	ToolChange   string   `json:"tool_change"`
	ReturnHome   string   `json:"return_home"`
	ProgramEnd   []string `json:"program_end"`

	CommentPrefix string `json:"comment_prefix"`
	CommentSuffix string `json:"comment_suffix"`
}

// Built-in dialects. The shared StartCode order (metric, absolute, cancel
// cutter compensation) is fixed.
var Dialects = []Dialect{
	{
		Name:          "Fanuc",
		Description:   "Fanuc 0i/30i series lathe controls",
		ProgramStart:  []string{"%", "O0001"},
		StartCode:     []string{"G21", "G90", "G40"},
		SpindleStart:  "M3 S%.0f",
		SpindleStop:   "M5",
		CoolantOff:    "M9",
		ToolChange:    "T{t}{t}",
		ReturnHome:    "G28 U0 W0",
		ProgramEnd:    []string{"M30", "%"},
		CommentPrefix: "(",
		CommentSuffix: ")",
	},
	{
		Name:          "Haas",
		Description:   "Haas ST-series lathe controls",
		ProgramStart:  []string{"%", "O00001"},
		StartCode:     []string{"G21", "G90", "G40"},
		SpindleStart:  "M3 S%.0f",
		SpindleStop:   "M5",
		CoolantOff:    "M9",
		ToolChange:    "T{t}{t}",
		ReturnHome:    "G28 U0 W0",
		ProgramEnd:    []string{"M30", "%"},
		CommentPrefix: "(",
		CommentSuffix: ")",
	},
	{
		Name:          "LinuxCNC",
		Description:   "LinuxCNC lathe configuration",
		StartCode:     []string{"G21", "G90", "G40"},
		SpindleStart:  "M3 S%.0f",
		SpindleStop:   "M5",
		CoolantOff:    "M9",
		ToolChange:    "T{t} M6",
		ReturnHome:    "G28 U0 W0",
		ProgramEnd:    []string{"M30"},
		CommentPrefix: ";",
	},
	{
		Name:          "Generic",
		Description:   "Generic ISO lathe G-code",
		StartCode:     []string{"G21", "G90", "G40"},
		SpindleStart:  "M3 S%.0f",
		SpindleStop:   "M5",
		CoolantOff:    "M9",
		ToolChange:    "T{t}{t}",
		ReturnHome:    "G28 U0 W0",
		ProgramEnd:    []string{"M30"},
		CommentPrefix: ";",
	},
}

// DialectByName returns a dialect by name, or Generic if not found.
func DialectByName(name string) Dialect {
	for _, d := range Dialects {
		if d.Name == name {
			return d
		}
	}
	return Dialects[len(Dialects)-1] // Generic is last
}

// DialectNames returns the names of all built-in dialects.
func DialectNames() []string {
	var names []string
	for _, d := range Dialects {
		names = append(names, d.Name)
	}
	return names
}
