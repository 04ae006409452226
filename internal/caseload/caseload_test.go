package caseload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var now = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const yamlCase = `problem:
  title: Rechazos en empaque
  description: Aumento de rechazos por sellado
  area: Calidad
`

func TestLoad_YAML(t *testing.T) {
	path := writeTemp(t, "case.yaml", yamlCase)

	f, err := Load(path, now)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Case.Problem.Title != "Rechazos en empaque" {
		t.Errorf("title = %q", f.Case.Problem.Title)
	}
	if f.Case.Problem.Date != "2024-05-01" {
		t.Errorf("date = %q, want 2024-05-01", f.Case.Problem.Date)
	}
}

func TestLoad_HashStable(t *testing.T) {
	path := writeTemp(t, "case.json", `{"problem":{"title":"t","description":"d"}}`)

	f1, err := Load(path, now)
	if err != nil {
		t.Fatalf("Load (first): %v", err)
	}
	f2, err := Load(path, now)
	if err != nil {
		t.Fatalf("Load (second): %v", err)
	}
	if f1.Hash != f2.Hash {
		t.Errorf("hash not stable: %q vs %q", f1.Hash, f2.Hash)
	}
	if !strings.HasPrefix(f1.Hash, "sha256:") {
		t.Errorf("hash missing sha256 prefix: %q", f1.Hash)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), now); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeTemp(t, "bad.yaml", "problem:\n  title: sólo título\n")
	_, err := Load(path, now)
	if err == nil || !strings.Contains(err.Error(), "description") {
		t.Errorf("expected description error, got %v", err)
	}
}

func TestLoadText(t *testing.T) {
	path := writeTemp(t, "prev.md", "anterior")
	got, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText: %v", err)
	}
	if got != "anterior" {
		t.Errorf("LoadText = %q", got)
	}
}
