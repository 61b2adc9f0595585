// Package project persists jobs and application configuration as JSON.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/pipeline"
)

// Job bundles everything needed to reproduce a generation run: the global
// settings and the operation plan with its tools.
type Job struct {
	ID       string                   `json:"id"`
	Name     string                   `json:"name"`
	Settings pipeline.Settings        `json:"settings"`
	Plan     []pipeline.OperationSpec `json:"plan"`
}

func NewJob(name string, settings pipeline.Settings) *Job {
	return &Job{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Settings: settings,
	}
}

// SaveJob persists a job to the given path as indented JSON, creating
// missing parent directories.
func SaveJob(path string, job *Job) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJob reads a job from the given path.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("invalid job file %s: %w", path, err)
	}
	if job.Plan == nil {
		job.Plan = []pipeline.OperationSpec{}
	}
	return &job, nil
}
