package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverDatasets(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []string{
		"alpha.toml",
		"beta.toml",
		".hidden.toml", // Should be skipped
		"notes.txt",    // Should be skipped
	}
	for _, name := range testFiles {
		path := filepath.Join(tempDir, name)
		if err := os.WriteFile(path, []byte("# dataset"), 0644); err != nil {
			t.Fatalf("Failed to create test file %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(tempDir, "nested.toml"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	files, err := DiscoverDatasets(tempDir)
	if err != nil {
		t.Fatalf("DiscoverDatasets failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 datasets, got %d: %v", len(files), files)
	}
	for _, file := range files {
		if filepath.Ext(file) != DatasetExt {
			t.Errorf("Non-dataset file discovered: %s", file)
		}
	}
}

func TestDiscoverDatasets_MissingDirectory(t *testing.T) {
	files, err := DiscoverDatasets(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Errorf("Expected no error for missing directory, got: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expected 0 files, got %d", len(files))
	}
}

func TestLoadFile_NonExistent(t *testing.T) {
	if _, err := LoadFile("/nonexistent/file.toml"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestManagerLoadDefault(t *testing.T) {
	m := NewManager("")
	ds, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ds.Source != DefaultSource {
		t.Errorf("Expected source %q, got %q", DefaultSource, ds.Source)
	}
	if m.Current() != ds {
		t.Error("Current should return the loaded dataset")
	}
}

func TestManagerReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.toml")
	ds, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}
	if err := WriteFile(path, ds); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	m := NewManager(path)
	first, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("[[entity]]\nid = \n"), 0644); err != nil {
		t.Fatalf("Failed to corrupt file: %v", err)
	}
	if _, err := m.Reload(); err == nil {
		t.Fatal("Expected reload of corrupt file to fail")
	}
	if m.Current() != first {
		t.Error("Failed reload must keep the previous dataset current")
	}
}
