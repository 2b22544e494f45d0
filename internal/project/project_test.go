package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crate.boxforge")

	proj := model.NewProject()
	proj.Name = "Crate"
	proj.Params.X = 120
	proj.Params.DividersX = 2
	proj.Laser.FeedRate = 450
	proj.Box = &model.Box{
		Params: proj.Params,
		Panels: []model.Panel{
			model.NewPanel("front", model.Outline{
				{X: 0, Y: 0}, {X: 120, Y: 0}, {X: 120, Y: 100}, {X: 0, Y: 100}, {X: 0, Y: 0},
			}),
		},
	}

	if err := Save(path, proj); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "Crate" {
		t.Errorf("expected name Crate, got %q", loaded.Name)
	}
	if loaded.Params.X != 120 {
		t.Errorf("expected x 120, got %f", loaded.Params.X)
	}
	if loaded.Params.DividersX != 2 {
		t.Errorf("expected 2 x dividers, got %d", loaded.Params.DividersX)
	}
	if loaded.Laser.FeedRate != 450 {
		t.Errorf("expected feed rate 450, got %f", loaded.Laser.FeedRate)
	}
	if loaded.Box == nil {
		t.Fatal("expected generated box to round-trip")
	}
	if len(loaded.Box.Panels) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(loaded.Box.Panels))
	}
	if loaded.Box.Panels[0].Label != "front" {
		t.Errorf("expected panel label front, got %q", loaded.Box.Panels[0].Label)
	}
	if len(loaded.Box.Panels[0].Outline) != 5 {
		t.Errorf("expected 5 outline points, got %d", len(loaded.Box.Panels[0].Outline))
	}
}

func TestSaveProjectCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deep", "nested", "box.boxforge")

	if err := Save(path, model.NewProject()); err != nil {
		t.Fatalf("Save should create parent dirs: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("project file was not created")
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.boxforge"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadProjectInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.boxforge")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadProjectNameFromFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spice-rack.boxforge")
	if err := os.WriteFile(path, []byte(`{"params":{"x":100,"y":100,"h":100}}`), 0644); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "spice-rack" {
		t.Errorf("expected name from filename, got %q", loaded.Name)
	}
}

func TestExportGCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "box.gcode")

	code := "G90\nG21\nM4 S800\nG1 X10 Y0 F600\nM5\n"
	if err := ExportGCode(path, code); err != nil {
		t.Fatalf("ExportGCode failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read exported gcode: %v", err)
	}
	if string(data) != code {
		t.Error("exported gcode does not match input")
	}
	if !strings.Contains(string(data), "M4 S800") {
		t.Error("expected laser-on command in exported gcode")
	}
}

func TestRecordRecentProject(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")

	if err := RecordRecentProject(configPath, "/tmp/a.boxforge"); err != nil {
		t.Fatalf("RecordRecentProject failed: %v", err)
	}
	if err := RecordRecentProject(configPath, "/tmp/b.boxforge"); err != nil {
		t.Fatalf("RecordRecentProject failed: %v", err)
	}
	// Re-opening an existing project moves it to the front
	if err := RecordRecentProject(configPath, "/tmp/a.boxforge"); err != nil {
		t.Fatalf("RecordRecentProject failed: %v", err)
	}

	cfg, err := LoadAppConfig(configPath)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 recent projects, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "/tmp/a.boxforge" {
		t.Errorf("expected most recent first, got %v", cfg.RecentProjects)
	}
}
