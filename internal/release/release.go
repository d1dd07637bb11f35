// Package release tracks the versioned exports of a remote dataset.
// The ledger holds no local state: every call is a read-through view of
// the remote service.
package release

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/identifier"
)

// ErrReleaseNotFound is returned when a requested version does not match
// any release. This is an expected outcome (e.g. no export has been run
// yet), not a defect; callers surface it and move on.
var ErrReleaseNotFound = errors.New("release not found")

// ErrInvalidReleaseName is returned when a requested release name does
// not follow the release-naming grammar. Rejected client-side, before
// any network call.
var ErrInvalidReleaseName = errors.New("release name must be alphanumeric plus '-' and '_'")

// Latest selects the available release with the most recent export date.
const Latest = "latest"

// Release is one versioned export of a dataset. Available is false while
// the server-side export job is still running; such releases show up in
// listings but can never be pulled.
type Release struct {
	Identifier identifier.Identifier
	ImageCount int
	ClassCount int
	ExportDate time.Time
	Available  bool
}

// API is the slice of the transport client the ledger needs.
type API interface {
	CreateRelease(ctx context.Context, team, slug string, req api.CreateReleaseRequest) (*api.Release, error)
	ListReleases(ctx context.Context, team, slug string) ([]api.Release, error)
}

// Ledger enumerates and resolves releases of remote datasets.
type Ledger struct {
	api API
}

// NewLedger returns a ledger backed by the given transport client.
func NewLedger(api API) *Ledger {
	return &Ledger{api: api}
}

// Create requests a new export of the dataset's current annotation
// state, optionally restricted to the given annotation classes. The
// request is fire-and-forget: it returns once the server accepts the
// job, and availability is observed later through List or ResolveVersion.
func (l *Ledger) Create(ctx context.Context, remote api.RemoteDataset, classIDs []int, name string) (*Release, error) {
	if name != "" && !identifier.ValidVersion(name) {
		return nil, fmt.Errorf("release name %q: %w", name, ErrInvalidReleaseName)
	}
	rel, err := l.api.CreateRelease(ctx, remote.Team, remote.Slug, api.CreateReleaseRequest{
		Name:     name,
		ClassIDs: classIDs,
	})
	if err != nil {
		return nil, err
	}
	return fromWire(remote, *rel), nil
}

// List returns all releases of the dataset sorted by export date
// descending. Unavailable releases are retained so callers can report
// export progress; anything selecting a release to pull must go through
// ResolveVersion instead.
func (l *Ledger) List(ctx context.Context, remote api.RemoteDataset) ([]Release, error) {
	wire, err := l.api.ListReleases(ctx, remote.Team, remote.Slug)
	if err != nil {
		return nil, err
	}
	releases := make([]Release, 0, len(wire))
	for _, w := range wire {
		releases = append(releases, *fromWire(remote, w))
	}
	// The server guarantees no order.
	sort.Slice(releases, func(i, j int) bool {
		return releases[i].ExportDate.After(releases[j].ExportDate)
	})
	return releases, nil
}

// ResolveVersion matches version against the dataset's releases.
// "latest" resolves to the available release with the maximum export
// date; any other value is matched exactly by name, regardless of
// availability state (the caller decides whether unavailable is fatal).
func (l *Ledger) ResolveVersion(ctx context.Context, remote api.RemoteDataset, version string) (*Release, error) {
	releases, err := l.List(ctx, remote)
	if err != nil {
		return nil, err
	}

	if version == Latest {
		for _, rel := range releases {
			if rel.Available {
				return &rel, nil
			}
		}
		return nil, notFound(remote, version)
	}

	for _, rel := range releases {
		if rel.Identifier.Version == version {
			return &rel, nil
		}
	}
	return nil, notFound(remote, version)
}

func notFound(remote api.RemoteDataset, version string) error {
	id := identifier.Identifier{Team: remote.Team, Dataset: remote.Slug, Version: version}
	return fmt.Errorf("%s: %w", id, ErrReleaseNotFound)
}

func fromWire(remote api.RemoteDataset, w api.Release) *Release {
	return &Release{
		Identifier: identifier.Identifier{
			Team:    remote.Team,
			Dataset: remote.Slug,
			Version: w.Name,
		},
		ImageCount: w.ImageCount,
		ClassCount: w.ClassCount,
		ExportDate: w.ExportDate,
		Available:  w.Available,
	}
}
