package model

import "strings"

// Material holds the cutting-relevant properties of a workpiece material.
// The table below drives parameter defaulting and optimal-speed calculation.
type Material struct {
	Name           string  `json:"name"`
	SurfaceSpeed   float64 `json:"surface_speed"`    // recommended Vc in m/min
	FeedFactor     float64 `json:"feed_factor"`      // multiplier on base feed
	MaxDepthFactor float64 `json:"max_depth_factor"` // multiplier on base depth of cut
	Hardness       float64 `json:"hardness"`         // Brinell HB, informational
}

// Built-in material table. Immutable; data built once at process start.
var Materials = []Material{
	{
		Name:           "Steel",
		SurfaceSpeed:   180.0,
		FeedFactor:     1.0,
		MaxDepthFactor: 1.0,
		Hardness:       200,
	},
	{
		Name:           "Stainless",
		SurfaceSpeed:   120.0,
		FeedFactor:     0.8,
		MaxDepthFactor: 0.7,
		Hardness:       220,
	},
	{
		Name:           "Aluminum",
		SurfaceSpeed:   400.0,
		FeedFactor:     1.4,
		MaxDepthFactor: 1.5,
		Hardness:       95,
	},
	{
		Name:           "Brass",
		SurfaceSpeed:   300.0,
		FeedFactor:     1.2,
		MaxDepthFactor: 1.2,
		Hardness:       120,
	},
	{
		Name:           "Plastic",
		SurfaceSpeed:   500.0,
		FeedFactor:     1.5,
		MaxDepthFactor: 2.0,
		Hardness:       20,
	},
	{
		Name:           "Generic",
		SurfaceSpeed:   150.0,
		FeedFactor:     1.0,
		MaxDepthFactor: 1.0,
		Hardness:       150,
	},
}

// MaterialByName returns a material by case-insensitive name, or the Generic
// material if not found.
func MaterialByName(name string) Material {
	for _, m := range Materials {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return Materials[len(Materials)-1] // Generic is last
}

// MaterialNames returns the names of all built-in materials.
func MaterialNames() []string {
	var names []string
	for _, m := range Materials {
		names = append(names, m.Name)
	}
	return names
}
