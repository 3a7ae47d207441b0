package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/octofit/dashboard/internal/models"
)

func find(overrides []models.ResourceOverride, resource string) *models.ResourceOverride {
	for i := range overrides {
		if overrides[i].Resource == resource {
			return &overrides[i]
		}
	}
	return nil
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
resources:
  - resource: leaderboard
    display_name: Standings
    tagline: Who is on top this week
  - resource: workouts
    endpoint: /api/v2/workouts/
  - resource: leaderboard
    display_name: Rankings
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	loader := NewLoader()
	if err := loader.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	overrides := loader.Overrides()
	if len(overrides) != 2 {
		t.Fatalf("expected 2 overrides, got %d", len(overrides))
	}
	if overrides[0].Resource != "leaderboard" || overrides[1].Resource != "workouts" {
		t.Errorf("unexpected order: %s, %s", overrides[0].Resource, overrides[1].Resource)
	}

	lb := find(overrides, "leaderboard")
	if lb == nil {
		t.Fatal("leaderboard override not found")
	}
	if lb.DisplayName != "Rankings" {
		t.Errorf("expected later entry to win, got '%s'", lb.DisplayName)
	}
	if lb.Tagline != "" {
		t.Errorf("expected tagline replaced by later entry, got '%s'", lb.Tagline)
	}

	if w := find(overrides, "workouts"); w == nil || w.Endpoint != "/api/v2/workouts/" {
		t.Error("expected workouts endpoint override")
	}
	if find(overrides, "teams") != nil {
		t.Error("expected no override for teams")
	}
}

func TestLoadMissingFile(t *testing.T) {
	loader := NewLoader()
	if err := loader.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing file should not fail: %v", err)
	}
	if len(loader.Overrides()) != 0 {
		t.Error("expected no overrides")
	}
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	cases := map[string]string{
		"missing resource": "resources:\n  - display_name: X\n",
		"relative endpoint": "resources:\n  - resource: users\n    endpoint: api/users/\n",
		"bad yaml":          "resources: [\n",
	}
	for name, data := range cases {
		if err := NewLoader().Load([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
