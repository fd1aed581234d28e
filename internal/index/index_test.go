package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iotsystems/hdlbot/internal/models"
)

func TestLoadArrayLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	content := `[
		{"name":"a.pdf","path":"/docs/a.pdf","norm_name":"a"},
		{"name":"b.pdf","path":"/docs/b.pdf"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[0].NormName != "a" {
		t.Errorf("norm name = %q", records[0].NormName)
	}
	if records[1].NormName != "" {
		t.Errorf("missing norm name should stay empty, got %q", records[1].NormName)
	}
}

func TestLoadKeyedLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	content := `{
		"/docs/a.pdf": {"name":"a.pdf","norm_name":"a"},
		"/docs/b.pdf": {"name":"b.pdf","path":"/docs/custom/b.pdf"}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	paths := map[string]bool{}
	for _, r := range records {
		paths[r.Path] = true
	}
	// The map key fills in a missing path; an explicit path wins.
	if !paths["/docs/a.pdf"] || !paths["/docs/custom/b.pdf"] {
		t.Errorf("paths = %v", paths)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed index")
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "index.json")
	records := []models.DocumentRecord{
		{Name: "a.pdf", Path: "/docs/a.pdf", NormName: "a"},
	}
	if err := Save(path, records); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Name != "a.pdf" {
		t.Errorf("loaded = %+v", loaded)
	}
}
