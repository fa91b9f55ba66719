package content

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// DatasetExt is the file extension recognized by discovery
const DatasetExt = ".toml"

// Manager handles discovery and loading of dataset files
type Manager struct {
	path    string
	current *Dataset
}

// NewManager creates a manager for the dataset at path; empty path selects the embedded default
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Path returns the dataset file path, empty for the embedded default
func (m *Manager) Path() string {
	return m.path
}

// Load reads the dataset and makes it current
func (m *Manager) Load() (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)
	if m.path == "" {
		ds, err = Default()
	} else {
		ds, err = LoadFile(m.path)
	}
	if err != nil {
		return nil, err
	}

	m.current = ds
	log.Printf("Loaded dataset %s: %d entities, %d periods, %d bodies",
		ds.Source, len(ds.Entities), len(ds.Periods), len(ds.Bodies))
	return ds, nil
}

// Current returns the last successfully loaded dataset
func (m *Manager) Current() *Dataset {
	return m.current
}

// Reload re-reads the file; on failure the previous dataset stays current
func (m *Manager) Reload() (*Dataset, error) {
	ds, err := m.Load()
	if err != nil {
		log.Printf("Dataset reload failed, keeping previous: %v", err)
		return nil, err
	}
	return ds, nil
}

// LoadFile reads and decodes a dataset file
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Decode(data, path)
}

// WriteFile encodes a dataset to path
func WriteFile(path string, ds *Dataset) error {
	data, err := Encode(ds)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// DiscoverDatasets lists dataset files in dir, skipping hidden files
// A missing directory is not an error
func DiscoverDatasets(dir string) ([]string, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		log.Printf("Dataset directory '%s' does not exist, no datasets discovered", dir)
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasSuffix(name, DatasetExt) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}
