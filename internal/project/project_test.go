package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/model"
	"github.com/chickenmcniggels/IntuiCAM-sub001/internal/pipeline"
)

func TestSaveLoadJobRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "job.json")

	settings := pipeline.DefaultSettings()
	settings.StockDiameter = 42
	job := NewJob("test shaft", settings)
	job.Plan = []pipeline.OperationSpec{
		{
			Type:    model.OpRoughing,
			Enabled: true,
			Tool:    model.Tool{Name: "insert", Type: model.ToolTurning, Diameter: 12},
			Roughing: &model.RoughingParameters{
				StartDiameter: 42, EndDiameter: 30,
				StartZ: 80, EndZ: 5,
				DepthOfCut: 2, Clearance: 2,
			},
		},
	}

	if err := SaveJob(path, job); err != nil {
		t.Fatalf("SaveJob: %v", err)
	}

	loaded, err := LoadJob(path)
	if err != nil {
		t.Fatalf("LoadJob: %v", err)
	}
	if loaded.Name != "test shaft" || loaded.ID != job.ID {
		t.Errorf("identity lost: %+v", loaded)
	}
	if loaded.Settings.StockDiameter != 42 {
		t.Errorf("StockDiameter = %.1f, want 42", loaded.Settings.StockDiameter)
	}
	if len(loaded.Plan) != 1 || loaded.Plan[0].Roughing == nil {
		t.Fatalf("plan lost: %+v", loaded.Plan)
	}
	if loaded.Plan[0].Roughing.EndDiameter != 30 {
		t.Errorf("EndDiameter = %.1f, want 30", loaded.Plan[0].Roughing.EndDiameter)
	}
}

func TestLoadJobMissingFile(t *testing.T) {
	if _, err := LoadJob(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing job file must be an error")
	}
}

func TestLoadJobInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJob(path); err == nil {
		t.Error("invalid JSON must be an error")
	}
}

func TestLoadAppConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	defaults := DefaultAppConfig()
	if cfg.DefaultMaterial != defaults.DefaultMaterial {
		t.Errorf("DefaultMaterial = %q, want %q", cfg.DefaultMaterial, defaults.DefaultMaterial)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should never be nil")
	}
}

func TestLoadAppConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_material": "Brass"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if cfg.DefaultMaterial != "Brass" {
		t.Errorf("DefaultMaterial = %q, want Brass", cfg.DefaultMaterial)
	}
	defaults := DefaultAppConfig()
	if cfg.DefaultDialect != defaults.DefaultDialect {
		t.Errorf("DefaultDialect = %q, want default %q", cfg.DefaultDialect, defaults.DefaultDialect)
	}
	if cfg.DefaultProfileTolerance != defaults.DefaultProfileTolerance {
		t.Errorf("DefaultProfileTolerance = %g, want default %g",
			cfg.DefaultProfileTolerance, defaults.DefaultProfileTolerance)
	}
	if cfg.RecentJobs == nil {
		t.Error("RecentJobs should never be nil")
	}
}

func TestSaveLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.json")
	cfg := DefaultAppConfig()
	cfg.DefaultMaterial = "Brass"
	cfg.AddRecentJob("/tmp/a.json")

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig: %v", err)
	}
	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig: %v", err)
	}
	if loaded.DefaultMaterial != "Brass" {
		t.Errorf("DefaultMaterial = %q, want Brass", loaded.DefaultMaterial)
	}
	if len(loaded.RecentJobs) != 1 || loaded.RecentJobs[0] != "/tmp/a.json" {
		t.Errorf("RecentJobs = %v", loaded.RecentJobs)
	}
}

func TestAddRecentJobDeduplicatesAndCaps(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a")
	cfg.AddRecentJob("b")
	cfg.AddRecentJob("a")
	if len(cfg.RecentJobs) != 2 || cfg.RecentJobs[0] != "a" || cfg.RecentJobs[1] != "b" {
		t.Errorf("RecentJobs = %v, want [a b]", cfg.RecentJobs)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentJob(string(rune('a' + i)))
	}
	if len(cfg.RecentJobs) > maxRecentJobs {
		t.Errorf("recent list length = %d, want capped at %d", len(cfg.RecentJobs), maxRecentJobs)
	}
}

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := pipeline.DefaultSettings()
	if cfg.DefaultProfileTolerance != defaults.ProfileTolerance {
		t.Errorf("ProfileTolerance mismatch: config=%f settings=%f", cfg.DefaultProfileTolerance, defaults.ProfileTolerance)
	}
	if cfg.DefaultClearance != defaults.Clearance {
		t.Errorf("Clearance mismatch: config=%f settings=%f", cfg.DefaultClearance, defaults.Clearance)
	}

	s := pipeline.DefaultSettings()
	cfg.DefaultClearance = 5.0
	cfg.ApplyToSettings(&s)
	if s.Clearance != 5.0 {
		t.Errorf("ApplyToSettings: Clearance = %f, want 5.0", s.Clearance)
	}
}
