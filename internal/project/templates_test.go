package project

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
)

func TestSaveAndLoadTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	store := model.NewTemplateStore()
	params := model.DefaultBoxParameters()
	params.X = 150
	params.DividersX = 3

	tmpl := model.NewBoxTemplate("Spice Rack", "Kitchen drawer insert", params,
		model.DefaultLaserSettings(), model.DefaultLayoutConfig())
	store.Add(tmpl)

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}

	if len(loaded.Templates) != 1 {
		t.Fatalf("expected 1 template, got %d", len(loaded.Templates))
	}
	if loaded.Templates[0].Name != "Spice Rack" {
		t.Errorf("expected 'Spice Rack', got %q", loaded.Templates[0].Name)
	}
	if loaded.Templates[0].Params.X != 150 {
		t.Errorf("expected x 150, got %f", loaded.Templates[0].Params.X)
	}
	if loaded.Templates[0].Params.DividersX != 3 {
		t.Errorf("expected 3 x dividers, got %d", loaded.Templates[0].Params.DividersX)
	}
}

func TestLoadTemplates_NotFound(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.json")

	store, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if len(store.Templates) != 0 {
		t.Errorf("expected empty store, got %d templates", len(store.Templates))
	}
}

func TestSaveAndLoadTemplates_Multiple(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.json")

	params := model.DefaultBoxParameters()
	laser := model.DefaultLaserSettings()
	layout := model.DefaultLayoutConfig()

	store := model.NewTemplateStore()
	store.Add(model.NewBoxTemplate("T1", "First", params, laser, layout))
	store.Add(model.NewBoxTemplate("T2", "Second", params, laser, layout))
	store.Add(model.NewBoxTemplate("T3", "Third", params, laser, layout))

	if err := SaveTemplates(path, store); err != nil {
		t.Fatalf("SaveTemplates error: %v", err)
	}

	loaded, err := LoadTemplates(path)
	if err != nil {
		t.Fatalf("LoadTemplates error: %v", err)
	}
	if len(loaded.Templates) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(loaded.Templates))
	}
}
