package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxForge/internal/model"
)

// DefaultMaterialsPath returns the default file path for the material
// preset library. This is located at ~/.boxforge/materials.json.
func DefaultMaterialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".boxforge", "materials.json"), nil
}

// SaveMaterials writes the material presets to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveMaterials(path string, materials []model.MaterialPreset) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(materials, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadMaterials reads the material presets from the specified JSON file.
// If the file does not exist, it seeds the starter library and saves it.
func LoadMaterials(path string) ([]model.MaterialPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			materials := model.DefaultMaterials()
			if saveErr := SaveMaterials(path, materials); saveErr != nil {
				return materials, saveErr
			}
			return materials, nil
		}
		return nil, err
	}
	var materials []model.MaterialPreset
	if err := json.Unmarshal(data, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

// LoadOrCreateMaterials loads the material presets from the default path.
// If the file does not exist, it creates one with the starter library.
func LoadOrCreateMaterials() ([]model.MaterialPreset, string, error) {
	path, err := DefaultMaterialsPath()
	if err != nil {
		return model.DefaultMaterials(), "", err
	}
	materials, err := LoadMaterials(path)
	return materials, path, err
}

// ExportMaterials exports the material presets to a user-specified JSON file.
func ExportMaterials(path string, materials []model.MaterialPreset) error {
	return SaveMaterials(path, materials)
}

// ImportMaterials imports material presets from a user-specified JSON file,
// merging them with the existing presets. Duplicate IDs are skipped.
func ImportMaterials(path string, existing []model.MaterialPreset) ([]model.MaterialPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported []model.MaterialPreset
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing))
	for _, m := range existing {
		ids[m.ID] = true
	}
	for _, m := range imported {
		if !ids[m.ID] {
			existing = append(existing, m)
			ids[m.ID] = true
		}
	}
	return existing, nil
}

// FindMaterialByName returns the preset with the given name, or nil.
func FindMaterialByName(materials []model.MaterialPreset, name string) *model.MaterialPreset {
	for i := range materials {
		if materials[i].Name == name {
			return &materials[i]
		}
	}
	return nil
}

// MaterialNames returns the preset names in library order.
func MaterialNames(materials []model.MaterialPreset) []string {
	names := make([]string, len(materials))
	for i, m := range materials {
		names[i] = m.Name
	}
	return names
}
