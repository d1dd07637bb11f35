package transfer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pelicanml/pelican/internal/api"
)

// Request describes one push operation. When Files is set explicitly the
// filesystem scan is skipped entirely, so Exclude only applies to the
// scanning mode. FrameRate governs server-side frame extraction for
// inputs classified as video; static items ignore it.
type Request struct {
	// SourceRoot is scanned recursively when Files is empty.
	SourceRoot string
	Files      []string
	Exclude    []string
	FrameRate  float64
}

// Push uploads the request's candidate files into the remote dataset.
// An empty candidate set aborts with ErrEmptyFileSet before any network
// call. Per-task failures never abort sibling tasks; the caller inspects
// the returned summary for partial success.
func (e *Engine) Push(ctx context.Context, remote api.RemoteDataset, req Request) (*Summary, error) {
	if req.FrameRate <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFrameRate, req.FrameRate)
	}

	paths, err := candidateFiles(req)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("dataset %s/%s: %w", remote.Team, remote.Slug, ErrEmptyFileSet)
	}

	var tasks []task
	for _, path := range paths {
		for _, item := range Classify(path).Items(req.FrameRate) {
			item := item
			tasks = append(tasks, task{
				name: item.Path,
				run: func(ctx context.Context) error {
					return e.remote.UploadFile(ctx, remote.Team, remote.Slug, item)
				},
			})
		}
	}
	return e.runTasks(ctx, tasks), nil
}

// candidateFiles determines the files a push will upload: the explicit
// list when given, otherwise a recursive scan of SourceRoot minus the
// exclusions. Paths are compared in normalized absolute form.
func candidateFiles(req Request) ([]string, error) {
	if len(req.Files) > 0 {
		paths := make([]string, 0, len(req.Files))
		for _, f := range req.Files {
			abs, err := normalize(f)
			if err != nil {
				return nil, err
			}
			paths = append(paths, abs)
		}
		return paths, nil
	}

	if req.SourceRoot == "" {
		return nil, nil
	}

	excluded := make(map[string]bool, len(req.Exclude))
	for _, f := range req.Exclude {
		abs, err := normalize(f)
		if err != nil {
			return nil, err
		}
		excluded[abs] = true
	}

	var paths []string
	err := filepath.WalkDir(req.SourceRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		abs, err := normalize(path)
		if err != nil {
			return err
		}
		if excluded[abs] {
			return nil
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", req.SourceRoot, err)
	}
	return paths, nil
}

func normalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("normalize %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}
