package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/panelworks/cutplan/internal/model"
)

// projectFileVersion is written into every saved project file so future
// versions can migrate old files.
const projectFileVersion = "1.0.0"

// projectFile is the on-disk envelope around a Project.
type projectFile struct {
	Version string        `json:"version"`
	Project model.Project `json:"project"`
}

// Save writes a project to the given path as indented JSON, creating any
// missing parent directories.
func Save(path string, p model.Project) error {
	file := projectFile{
		Version: projectFileVersion,
		Project: p,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project from the given path.
func Load(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}

	var file projectFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if file.Version == "" {
		return model.Project{}, fmt.Errorf("invalid project file: missing version field")
	}
	return file.Project, nil
}
