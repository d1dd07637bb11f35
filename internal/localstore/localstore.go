// Package localstore indexes datasets materialized on local storage.
// The layout is <datasetsRoot>/<team>/<dataset>/; this package only
// reads the tree, pulls are the single writer.
package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelicanml/pelican/internal/identifier"
)

// ErrNotFoundLocally is returned when an identifier does not match any
// dataset under the local datasets root.
var ErrNotFoundLocally = errors.New("dataset not found locally")

// Dataset is a dataset directory on local storage.
type Dataset struct {
	Root string // <datasetsRoot>/<team>/<dataset>
	Team string
	Slug string
}

// Identifier returns the team/dataset coordinates of the local copy.
func (d Dataset) Identifier() identifier.Identifier {
	return identifier.Identifier{Team: d.Team, Dataset: d.Slug}
}

// SyncDate returns the modification time of the dataset root, i.e. when
// content was last pulled into it.
func (d Dataset) SyncDate() (time.Time, error) {
	info, err := os.Stat(d.Root)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// ListDatasets enumerates datasets exactly two directory levels below
// datasetsRoot (team, then dataset). Entries that do not conform to the
// two-level shape are skipped. A missing root yields an empty list.
// Each call re-walks the tree; order is filesystem enumeration order.
func ListDatasets(datasetsRoot, teamFilter string) ([]Dataset, error) {
	teams, err := os.ReadDir(datasetsRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read datasets root %s: %w", datasetsRoot, err)
	}

	var datasets []Dataset
	for _, team := range teams {
		if !team.IsDir() {
			continue
		}
		if teamFilter != "" && team.Name() != teamFilter {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(datasetsRoot, team.Name()))
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			datasets = append(datasets, Dataset{
				Root: filepath.Join(datasetsRoot, team.Name(), entry.Name()),
				Team: team.Name(),
				Slug: entry.Name(),
			})
		}
	}
	return datasets, nil
}

// Size sums all regular files under the dataset root. Symbolic links are
// not followed, so cycles and double-counting cannot occur.
func Size(d Dataset) (fileCount int, totalBytes int64, err error) {
	err = filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		fileCount++
		totalBytes += info.Size()
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("size of %s/%s: %w", d.Team, d.Slug, err)
	}
	return fileCount, totalBytes, nil
}

// Locate finds the local copy of the identified dataset. The team part
// of the identifier narrows the search when present.
func Locate(datasetsRoot string, id identifier.Identifier) (*Dataset, error) {
	datasets, err := ListDatasets(datasetsRoot, id.Team)
	if err != nil {
		return nil, err
	}
	for _, d := range datasets {
		if d.Slug == id.Dataset {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("dataset %s: %w", id, ErrNotFoundLocally)
}
