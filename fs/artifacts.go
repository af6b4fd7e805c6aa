// Package fs provides file-based persistence for the index artifacts with
// atomic update semantics.
package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docsearch"
	"github.com/fwojciec/docsearch/trie"
)

// Artifact file names inside an artifact directory.
const (
	IndexFileName    = "index.trie"
	RegistryFileName = "registry.json"
)

// ArtifactStore persists the index store and content registry as a pair.
// A build saves both files to a temporary directory, then Commit moves the
// directory into place atomically; a failed build aborts and leaves any
// previously committed pair untouched. A half-written pair is therefore
// never observable at the final location.
type ArtifactStore struct {
	baseDir string
	name    string
}

// NewArtifactStore creates a new ArtifactStore.
// baseDir is the parent directory, name is the artifact directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewArtifactStore(baseDir, name string) *ArtifactStore {
	return &ArtifactStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ArtifactStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ArtifactStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the index and registry to the temporary directory.
func (s *ArtifactStore) Save(idx *trie.Trie, reg *docsearch.Registry) error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	if err := idx.Save(filepath.Join(s.tempDir(), IndexFileName)); err != nil {
		return err
	}

	data, err := json.MarshalIndent(reg.Records(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	return os.WriteFile(filepath.Join(s.tempDir(), RegistryFileName), data, 0644)
}

// Commit atomically replaces the committed artifact pair with the saved one.
func (s *ArtifactStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the pending artifact pair.
func (s *ArtifactStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// Load reads the committed artifact pair. Both artifacts are required; a
// serving process must not start from a partial pair.
func (s *ArtifactStore) Load() (*trie.Trie, *docsearch.Registry, error) {
	idx, err := trie.Load(filepath.Join(s.finalDir(), IndexFileName))
	if err != nil {
		return nil, nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.finalDir(), RegistryFileName))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read registry file: %w", err)
	}

	var records map[string]*docsearch.ContentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode registry: %w", err)
	}

	return idx, docsearch.NewRegistryFromRecords(records), nil
}

// SavePaths writes an ordered list of page-relative paths as a JSON array.
func SavePaths(path string, paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode page list: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPaths reads an ordered list of page-relative paths.
func LoadPaths(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read page list: %w", err)
	}
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return nil, fmt.Errorf("failed to decode page list: %w", err)
	}
	return paths, nil
}
