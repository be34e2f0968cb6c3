package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/SheetPack/internal/export"
	"github.com/piwi3910/SheetPack/internal/model"
)

// ManifestVersion is written into every manifest.
const ManifestVersion = "1.0.0"

// Manifest records what one pack run produced, written next to the sheets so
// build pipelines can pick up the outputs without globbing.
type Manifest struct {
	Version   string                `json:"version"`
	BuildID   string                `json:"build_id"`
	CreatedAt string                `json:"created_at"`
	Settings  model.PackSettings    `json:"settings"`
	Metadata  []string              `json:"metadata,omitempty"` // Format output files, parallel to Sheets
	Sheets    []export.SheetSummary `json:"sheets"`
}

// NewManifest builds a manifest for a pack run with a fresh build id.
func NewManifest(report export.Report, metadata []string) Manifest {
	return Manifest{
		Version:   ManifestVersion,
		BuildID:   uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  report.Settings,
		Metadata:  metadata,
		Sheets:    export.Summarize(report).Sheets,
	}
}

// ManifestPath returns the manifest location for an output base.
func ManifestPath(base string) string {
	return base + ".manifest.json"
}

// WriteManifest writes the manifest as indented JSON, creating parent
// directories as needed.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if m.Version == "" {
		return Manifest{}, fmt.Errorf("invalid manifest: missing version field")
	}
	if _, err := uuid.Parse(m.BuildID); err != nil {
		return Manifest{}, fmt.Errorf("invalid manifest build id %q: %w", m.BuildID, err)
	}
	// Ensure Sheets is never nil
	if m.Sheets == nil {
		m.Sheets = []export.SheetSummary{}
	}
	return m, nil
}
