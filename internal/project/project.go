package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoxForge/internal/model"
)

// ProjectExtension is the file extension for saved project files.
const ProjectExtension = ".boxforge"

// Save writes a project to the given path as JSON, creating parent
// directories as needed.
func Save(path string, proj model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project from the given path. A project with an empty name
// takes its name from the file.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var proj model.Project
	if err := json.Unmarshal(data, &proj); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if proj.Name == "" {
		proj.Name = strings.TrimSuffix(filepath.Base(path), ProjectExtension)
	}
	return proj, nil
}

// ExportGCode writes generated GCode text to the given path.
func ExportGCode(path string, code string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(code), 0644)
}

// RecordRecentProject loads the app config at configPath, records
// projectPath at the front of the recent list and saves the config back.
func RecordRecentProject(configPath, projectPath string) error {
	config, err := LoadAppConfig(configPath)
	if err != nil {
		return err
	}
	config.AddRecentProject(projectPath)
	return SaveAppConfig(configPath, config)
}
