package model

// MachineLimits describes the fixed envelope of the target lathe. Travel
// values use the same diameter-on-X convention as movements.
type MachineLimits struct {
	MaxSpindleSpeed float64 `json:"max_spindle_speed"` // RPM
	MinSpindleSpeed float64 `json:"min_spindle_speed"` // RPM
	MaxFeedRate     float64 `json:"max_feed_rate"`     // mm/rev
	MinX            float64 `json:"min_x"`             // mm, diameter
	MaxX            float64 `json:"max_x"`             // mm, diameter
	MinZ            float64 `json:"min_z"`             // mm
	MaxZ            float64 `json:"max_z"`             // mm
}

// DefaultMachineLimits returns the envelope of a small bench lathe.
func DefaultMachineLimits() MachineLimits {
	return MachineLimits{
		MaxSpindleSpeed: 3000,
		MinSpindleSpeed: 50,
		MaxFeedRate:     1.0,
		MinX:            -2.0,
		MaxX:            320.0,
		MinZ:            -450.0,
		MaxZ:            120.0,
	}
}
