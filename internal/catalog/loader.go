// Package catalog loads per-resource display overrides from a YAML file.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/octofit/dashboard/internal/models"
)

// Loader reads and holds catalog overrides
type Loader struct {
	mu        sync.RWMutex
	overrides map[string]models.ResourceOverride
	order     []string
}

// catalogFile is the YAML file structure
type catalogFile struct {
	Resources []resourceEntry `yaml:"resources"`
}

type resourceEntry struct {
	Resource    string `yaml:"resource"`
	DisplayName string `yaml:"display_name"`
	Tagline     string `yaml:"tagline"`
	EmptyNotice string `yaml:"empty_notice"`
	TotalLabel  string `yaml:"total_label"`
	Endpoint    string `yaml:"endpoint"`
}

// NewLoader creates an empty catalog loader
func NewLoader() *Loader {
	return &Loader{
		overrides: make(map[string]models.ResourceOverride),
	}
}

// LoadFromFile parses path and merges its entries; later entries for the
// same resource replace earlier ones. A missing file is not an error.
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Info("catalog file not found, using builtin descriptors", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	return l.Load(data)
}

// Load parses YAML catalog data
func (l *Loader) Load(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, entry := range file.Resources {
		name := strings.TrimSpace(entry.Resource)
		if name == "" {
			return fmt.Errorf("resource entry %d: resource is required", i)
		}
		if entry.Endpoint != "" && !strings.HasPrefix(entry.Endpoint, "/") {
			return fmt.Errorf("resource %s: endpoint must start with /", name)
		}

		if _, seen := l.overrides[name]; !seen {
			l.order = append(l.order, name)
		}
		l.overrides[name] = models.ResourceOverride{
			Resource:    name,
			DisplayName: entry.DisplayName,
			Tagline:     entry.Tagline,
			EmptyNotice: entry.EmptyNotice,
			TotalLabel:  entry.TotalLabel,
			Endpoint:    entry.Endpoint,
		}

		slog.Info("catalog override loaded", "resource", name)
	}

	return nil
}

// Overrides returns all loaded overrides in file order
func (l *Loader) Overrides() []models.ResourceOverride {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.ResourceOverride, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.overrides[name])
	}
	return out
}
