package model

import (
	"time"

	"github.com/google/uuid"
)

// BoxTemplate represents a reusable box configuration that captures
// parameters, laser settings, and layout but not generated geometry.
type BoxTemplate struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Params      BoxParameters `json:"params"`
	Laser       LaserSettings `json:"laser"`
	Layout      LayoutConfig  `json:"layout"`
}

// NewBoxTemplate creates a new template from the given project data.
// It copies parameters and settings but intentionally excludes the
// generated box, which is rebuilt on demand.
func NewBoxTemplate(name, description string, params BoxParameters, laser LaserSettings, layout LayoutConfig) BoxTemplate {
	now := time.Now().UTC().Format(time.RFC3339)
	return BoxTemplate{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
		Params:      params,
		Laser:       laser,
		Layout:      layout,
	}
}

// ToProject creates a new Project from this template.
func (t BoxTemplate) ToProject(projectName string) Project {
	return Project{
		Name:   projectName,
		Params: t.Params,
		Laser:  t.Laser,
		Layout: t.Layout,
	}
}

// TemplateStore holds a collection of box templates.
type TemplateStore struct {
	Templates []BoxTemplate `json:"templates"`
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore() TemplateStore {
	return TemplateStore{
		Templates: []BoxTemplate{},
	}
}

// Add adds a template to the store.
func (ts *TemplateStore) Add(t BoxTemplate) {
	ts.Templates = append(ts.Templates, t)
}

// Remove removes a template by ID. Returns true if found and removed.
func (ts *TemplateStore) Remove(id string) bool {
	for i, t := range ts.Templates {
		if t.ID == id {
			ts.Templates = append(ts.Templates[:i], ts.Templates[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the template with the given ID, or nil.
func (ts *TemplateStore) FindByID(id string) *BoxTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].ID == id {
			return &ts.Templates[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first template with the given name, or nil.
func (ts *TemplateStore) FindByName(name string) *BoxTemplate {
	for i := range ts.Templates {
		if ts.Templates[i].Name == name {
			return &ts.Templates[i]
		}
	}
	return nil
}

// Names returns a list of template names for UI dropdowns.
func (ts *TemplateStore) Names() []string {
	names := make([]string, len(ts.Templates))
	for i, t := range ts.Templates {
		names[i] = t.Name
	}
	return names
}

// Upsert replaces the template with the same name or adds a new one.
// The original ID and creation time survive an overwrite.
func (ts *TemplateStore) Upsert(t BoxTemplate) {
	if existing := ts.FindByName(t.Name); existing != nil {
		t.ID = existing.ID
		t.CreatedAt = existing.CreatedAt
		t.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		*existing = t
		return
	}
	ts.Add(t)
}
