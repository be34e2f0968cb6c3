package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/piwi3910/SheetPack/internal/export"
	"github.com/piwi3910/SheetPack/internal/model"
)

func testReport() export.Report {
	settings := model.DefaultSettings()
	settings.Trim = true
	return export.Report{
		Sheets: []model.SpriteSheet{
			{
				Bytes: make([]byte, 4*2*4), Stride: 4, Width: 4, Height: 2,
				Anchors: []model.SpriteAnchor{{ID: 0, Width: 2, Height: 2}, {ID: 1, X: 2, Width: 2, Height: 1}},
			},
		},
		Files:    []string{"atlas.png"},
		Settings: settings,
	}
}

func TestWriteAndReadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atlas.manifest.json")

	m := NewManifest(testReport(), []string{"atlas.json"})
	if err := WriteManifest(path, m); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	loaded, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}

	if loaded.Version != ManifestVersion {
		t.Errorf("expected version %s, got %s", ManifestVersion, loaded.Version)
	}
	if loaded.BuildID != m.BuildID {
		t.Errorf("expected build id %s, got %s", m.BuildID, loaded.BuildID)
	}
	if loaded.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if !loaded.Settings.Trim {
		t.Error("expected settings to round-trip")
	}
	if len(loaded.Sheets) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(loaded.Sheets))
	}
	sheet := loaded.Sheets[0]
	if sheet.File != "atlas.png" || sheet.Sprites != 2 || sheet.Efficiency != 75 {
		t.Errorf("unexpected sheet summary %+v", sheet)
	}
	if len(loaded.Metadata) != 1 || loaded.Metadata[0] != "atlas.json" {
		t.Errorf("unexpected metadata %v", loaded.Metadata)
	}
}

func TestNewManifestUniqueBuildIDs(t *testing.T) {
	a := NewManifest(testReport(), nil)
	b := NewManifest(testReport(), nil)

	if a.BuildID == b.BuildID {
		t.Error("expected distinct build ids")
	}
	if _, err := uuid.Parse(a.BuildID); err != nil {
		t.Errorf("build id is not a uuid: %v", err)
	}
}

func TestManifestPath(t *testing.T) {
	if got := ManifestPath("out/atlas"); got != "out/atlas.manifest.json" {
		t.Errorf("ManifestPath() = %s", got)
	}
}

func TestReadManifestMissingFile(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadManifestInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadManifest(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestReadManifestMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"build_id": "`+uuid.NewString()+`"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadManifest(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestReadManifestBadBuildID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "badid.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0", "build_id": "abc"}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadManifest(path); err == nil {
		t.Fatal("expected error for malformed build id")
	}
}

func TestReadManifestNilSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nosheets.json")
	data := `{"version": "1.0.0", "build_id": "` + uuid.NewString() + `"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := ReadManifest(path)
	if err != nil {
		t.Fatalf("ReadManifest failed: %v", err)
	}
	if m.Sheets == nil {
		t.Error("Sheets should never be nil")
	}
}

func TestWriteManifestCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "m.json")

	if err := WriteManifest(path, NewManifest(testReport(), nil)); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("manifest was not created")
	}
}
