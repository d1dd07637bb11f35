package transfer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/localstore"
	"github.com/pelicanml/pelican/internal/release"
)

// Pull materializes a release into <datasetsRoot>/<team>/<dataset>/.
// Pre-existing content that does not belong to the release is left
// alone; files belonging to the release are overwritten, so retrying an
// interrupted pull converges on the same final state. Concurrent pulls
// into the same dataset directory must be serialized by the caller.
func (e *Engine) Pull(ctx context.Context, rel release.Release, datasetsRoot string) (*localstore.Dataset, error) {
	id := rel.Identifier
	if !rel.Available {
		return nil, fmt.Errorf("%s: %w", id, ErrReleaseUnavailable)
	}

	// Fetch the manifest before touching the filesystem so a failed or
	// unauthorized request leaves no empty directories behind.
	assets, err := e.remote.ReleaseAssets(ctx, id.Team, id.Dataset, id.Version)
	if err != nil {
		return nil, err
	}

	dest := filepath.Join(datasetsRoot, id.Team, id.Dataset)
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("create dataset directory: %w", err)
	}

	tasks := make([]task, 0, len(assets))
	for _, asset := range assets {
		asset := asset
		target, err := assetPath(dest, asset)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task{
			name: asset.Name,
			run: func(ctx context.Context) error {
				return e.downloadAsset(ctx, asset, target)
			},
		})
	}

	summary := e.runTasks(ctx, tasks)
	if !summary.OK() {
		f := summary.Failed[0]
		return nil, fmt.Errorf("pull %s: %d of %d files failed, first: %s: %w",
			id, len(summary.Failed), len(tasks), f.Path, f.Err)
	}

	return &localstore.Dataset{Root: dest, Team: id.Team, Slug: id.Dataset}, nil
}

// downloadAsset writes the asset next to its final path and renames it
// into place, so an interrupted download never leaves a truncated file
// under the asset's name.
func (e *Engine) downloadAsset(ctx context.Context, asset api.Asset, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	tmp := target + ".partial"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := e.remote.DownloadAsset(ctx, asset, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, target)
}

// assetPath resolves an asset name below the dataset directory,
// rejecting names that would escape it.
func assetPath(dest string, asset api.Asset) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(asset.Name))
	if !strings.HasPrefix(target, dest+string(filepath.Separator)) {
		return "", fmt.Errorf("asset %q escapes the dataset directory", asset.Name)
	}
	return target, nil
}
