package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDatasetTree is a temporary datasets directory laid out as
// <root>/<team>/<dataset>/ for testing the local cache and transfers.
type TempDatasetTree struct {
	Root string
	T    *testing.T
}

// NewTempDatasetTree creates an empty datasets root that is removed when
// the test finishes.
func NewTempDatasetTree(t *testing.T) *TempDatasetTree {
	t.Helper()
	return &TempDatasetTree{Root: t.TempDir(), T: t}
}

// AddDataset materializes a dataset directory with the given files.
// Keys are paths relative to the dataset root, values the file contents.
func (tr *TempDatasetTree) AddDataset(team, slug string, files map[string]string) string {
	tr.T.Helper()
	root := filepath.Join(tr.Root, team, slug)
	if err := os.MkdirAll(root, 0o755); err != nil {
		tr.T.Fatalf("failed to create dataset dir: %v", err)
	}
	for rel, content := range files {
		tr.WriteFile(filepath.Join(team, slug, rel), content)
	}
	return root
}

// WriteFile writes a file at the given path relative to the tree root,
// creating parent directories as needed. Returns the absolute path.
func (tr *TempDatasetTree) WriteFile(rel, content string) string {
	tr.T.Helper()
	path := filepath.Join(tr.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tr.T.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tr.T.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// ReadTree returns the relative path and content of every regular file
// under dir, for comparing directory states across operations.
func ReadTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[rel] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", dir, err)
	}
	return files
}
