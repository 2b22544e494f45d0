package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
)

func TestDefaultMaterialsPath(t *testing.T) {
	path, err := DefaultMaterialsPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == "" {
		t.Fatal("expected non-empty path")
	}
	if filepath.Base(path) != "materials.json" {
		t.Errorf("expected filename materials.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".boxforge" {
		t.Errorf("expected parent dir .boxforge, got %s", dir)
	}
}

func TestSaveAndLoadMaterials(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_materials.json")

	materials := []model.MaterialPreset{
		model.NewMaterialPreset("Test Plywood", 4.0, 0.12, 650, 720, 1),
	}

	// Save
	if err := SaveMaterials(path, materials); err != nil {
		t.Fatalf("SaveMaterials failed: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("materials file was not created")
	}

	// Load
	loaded, err := LoadMaterials(path)
	if err != nil {
		t.Fatalf("LoadMaterials failed: %v", err)
	}

	if len(loaded) != 1 {
		t.Fatalf("expected 1 material, got %d", len(loaded))
	}
	if loaded[0].Name != "Test Plywood" {
		t.Errorf("expected name 'Test Plywood', got %q", loaded[0].Name)
	}
	if loaded[0].Thickness != 4.0 {
		t.Errorf("expected thickness 4.0, got %f", loaded[0].Thickness)
	}
	if loaded[0].FeedRate != 650 {
		t.Errorf("expected feed rate 650, got %f", loaded[0].FeedRate)
	}
}

func TestLoadMaterialsCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent", "materials.json")

	materials, err := LoadMaterials(path)
	if err != nil {
		t.Fatalf("LoadMaterials failed: %v", err)
	}

	// Should have seeded the starter library
	if len(materials) == 0 {
		t.Error("expected default materials, got none")
	}

	// Should have written the file
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default materials file to be created")
	}
}

func TestImportMaterials(t *testing.T) {
	tmpDir := t.TempDir()

	existing := []model.MaterialPreset{
		{ID: "mat-001", Name: "Existing Plywood", Thickness: 3.0},
	}

	imported := []model.MaterialPreset{
		{ID: "mat-001", Name: "Duplicate Plywood", Thickness: 3.0}, // same ID, should be skipped
		{ID: "mat-002", Name: "New Acrylic", Thickness: 5.0},       // new, should be added
	}

	// Write import file
	importPath := filepath.Join(tmpDir, "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportMaterials(importPath, existing)
	if err != nil {
		t.Fatalf("ImportMaterials failed: %v", err)
	}

	if len(merged) != 2 {
		t.Errorf("expected 2 materials after merge, got %d", len(merged))
	}
	if merged[0].Name != "Existing Plywood" {
		t.Errorf("expected first material to be 'Existing Plywood', got %q", merged[0].Name)
	}
	if merged[1].Name != "New Acrylic" {
		t.Errorf("expected second material to be 'New Acrylic', got %q", merged[1].Name)
	}
}

func TestExportMaterials(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "export.json")

	materials := model.DefaultMaterials()
	if err := ExportMaterials(path, materials); err != nil {
		t.Fatalf("ExportMaterials failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read exported file: %v", err)
	}

	var loaded []model.MaterialPreset
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("failed to unmarshal exported materials: %v", err)
	}

	if len(loaded) != len(materials) {
		t.Errorf("expected %d materials, got %d", len(materials), len(loaded))
	}
}

func TestFindMaterialByName(t *testing.T) {
	materials := model.DefaultMaterials()

	m := FindMaterialByName(materials, "Birch Plywood 6mm")
	if m == nil {
		t.Fatal("expected to find 'Birch Plywood 6mm'")
	}
	if m.Thickness != 6.0 {
		t.Errorf("expected thickness 6.0, got %f", m.Thickness)
	}

	missing := FindMaterialByName(materials, "Nonexistent Material")
	if missing != nil {
		t.Error("expected nil for nonexistent material")
	}
}

func TestMaterialNames(t *testing.T) {
	materials := model.DefaultMaterials()

	names := MaterialNames(materials)
	if len(names) != len(materials) {
		t.Errorf("expected %d names, got %d", len(materials), len(names))
	}
	if names[0] != materials[0].Name {
		t.Errorf("expected first name %q, got %q", materials[0].Name, names[0])
	}
}
