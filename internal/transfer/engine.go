// Package transfer moves dataset content between local storage and the
// remote service: push uploads files (expanding videos into server-side
// frame extraction), pull materializes a release into the local cache.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/pelicanml/pelican/internal/api"
)

var (
	// ErrEmptyFileSet means push found nothing to upload. Raised before
	// any network call.
	ErrEmptyFileSet = errors.New("no files to upload")

	// ErrReleaseUnavailable means the export job behind the release has
	// not finished yet. Transient: the caller may re-poll.
	ErrReleaseUnavailable = errors.New("release not yet available")

	// ErrInvalidFrameRate means the requested video frame rate is not a
	// positive number.
	ErrInvalidFrameRate = errors.New("frame rate must be positive")
)

// DefaultWorkers bounds transfer parallelism when no explicit worker
// count is configured.
const DefaultWorkers = 4

// Remote is the slice of the transport client the engine drives.
type Remote interface {
	UploadFile(ctx context.Context, team, slug string, item api.UploadItem) error
	ReleaseAssets(ctx context.Context, team, slug, version string) ([]api.Asset, error)
	DownloadAsset(ctx context.Context, asset api.Asset, dst io.Writer) error
}

// Engine executes push and pull operations with bounded parallelism.
// Everything else in the sync core is synchronous; only the engine's
// task execution fans out.
type Engine struct {
	remote  Remote
	workers int64
}

// NewEngine returns an engine running at most workers concurrent
// transfer tasks. Non-positive counts fall back to DefaultWorkers.
func NewEngine(remote Remote, workers int) *Engine {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Engine{remote: remote, workers: int64(workers)}
}

// TaskFailure records one failed transfer task.
type TaskFailure struct {
	Path string
	Err  error
}

// Summary aggregates the outcome of one push or pull operation. Partial
// success is a normal outcome: the operation returns a summary rather
// than failing, and the caller inspects Failed explicitly.
type Summary struct {
	Succeeded int
	Failed    []TaskFailure
}

// OK reports whether every task succeeded.
func (s *Summary) OK() bool { return len(s.Failed) == 0 }

// task is one independent unit of transfer work. Tasks within an
// operation carry no ordering guarantee relative to each other.
type task struct {
	name string
	run  func(ctx context.Context) error
}

// runTasks executes tasks on the worker pool and joins on all of them
// before returning (full-barrier join). Failures are isolated per task.
//
// Cancelling ctx stops tasks that have not started yet; tasks already
// in flight run on a detached context so a partially written transfer
// is never killed mid-stream.
func (e *Engine) runTasks(ctx context.Context, tasks []task) *Summary {
	type indexed struct {
		idx     int
		failure TaskFailure
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		succeeded int
		failures  []indexed
	)

	sem := semaphore.NewWeighted(e.workers)
	inflight := context.WithoutCancel(ctx)

	for i, t := range tasks {
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			failures = append(failures, indexed{i, TaskFailure{
				Path: t.name,
				Err:  fmt.Errorf("cancelled before start: %w", err),
			}})
			mu.Unlock()
			continue
		}
		wg.Add(1)
		go func(i int, t task) {
			defer wg.Done()
			defer sem.Release(1)
			if err := t.run(inflight); err != nil {
				mu.Lock()
				failures = append(failures, indexed{i, TaskFailure{Path: t.name, Err: err}})
				mu.Unlock()
				return
			}
			mu.Lock()
			succeeded++
			mu.Unlock()
		}(i, t)
	}
	wg.Wait()

	sort.Slice(failures, func(a, b int) bool { return failures[a].idx < failures[b].idx })
	summary := &Summary{Succeeded: succeeded}
	for _, f := range failures {
		summary.Failed = append(summary.Failed, f.failure)
	}
	return summary
}
