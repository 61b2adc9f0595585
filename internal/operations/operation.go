// Package operations implements the lathe machining operation family:
// facing, roughing, finishing, parting, threading, grooving, and the
// contouring coordinator. Every operation consumes the shared extracted
// profile plus its own typed parameters and produces a fresh toolpath.
package operations

import (
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/profile"
)

// Operation is the common contract of the closed operation set. Validate
// failing blocks GenerateToolpath from being invoked by the pipeline.
type Operation interface {
	Name() string
	Type() model.OperationType
	Validate() bool
	GenerateToolpath(prof *profile.Profile) (*model.Toolpath, error)
}

// notValidated builds the error returned when generation is attempted on an
// operation whose parameters do not validate.
func notValidated(name, reason string) error {
	if reason == "" {
		reason = "parameters failed validation"
	}
	return &model.OperationError{Operation: name, Reason: reason}
}
