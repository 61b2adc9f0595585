package model

// OperationStats holds the derived statistics of one generated operation.
type OperationStats struct {
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	MovementCount   int     `json:"movement_count"`
	EstimatedTime   float64 `json:"estimated_time"`   // minutes
	MaterialRemoved float64 `json:"material_removed"` // mm³
	CuttingLength   float64 `json:"cutting_length"`   // mm
}

// ProcessingResult reports the outcome of a single operation run under the
// pipeline. Freshly computed per run; consumers must not mutate it.
type ProcessingResult struct {
	Success  bool           `json:"success"`
	Toolpath *Toolpath      `json:"-"`
	Stats    OperationStats `json:"stats"`
	Error    string         `json:"error,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
}

// GenerationResult is the aggregate outcome of a full pipeline run.
type GenerationResult struct {
	Success    bool               `json:"success"`
	Errors     []string           `json:"errors,omitempty"`
	Warnings   []string           `json:"warnings,omitempty"`
	Toolpaths  []*Toolpath        `json:"-"`
	Operations []ProcessingResult `json:"operations"`

	TotalTime            float64 `json:"total_time"`             // minutes
	TotalMaterialRemoved float64 `json:"total_material_removed"` // mm³
	TotalMovements       int     `json:"total_movements"`
}

// AddError records a failure message and marks the result unsuccessful.
func (r *GenerationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Success = false
}

// AddWarning records a non-fatal message. Warnings never block completion.
func (r *GenerationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
