package release

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pelicanml/pelican/internal/api"
)

type fakeAPI struct {
	releases []api.Release
	created  []api.CreateReleaseRequest
	err      error
}

func (f *fakeAPI) CreateRelease(ctx context.Context, team, slug string, req api.CreateReleaseRequest) (*api.Release, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &api.Release{Name: req.Name, Available: false}, nil
}

func (f *fakeAPI) ListReleases(ctx context.Context, team, slug string) ([]api.Release, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.releases, nil
}

var cams = api.RemoteDataset{Team: "acme", Slug: "cams"}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestResolveLatestSkipsUnavailable(t *testing.T) {
	ledger := NewLedger(&fakeAPI{releases: []api.Release{
		{Name: "v1", ExportDate: date("2023-01-01"), Available: true},
		{Name: "v2", ExportDate: date("2023-02-01"), Available: false},
		{Name: "v3", ExportDate: date("2022-01-01"), Available: true},
	}})

	rel, err := ledger.ResolveVersion(context.Background(), cams, Latest)
	if err != nil {
		t.Fatalf("ResolveVersion failed: %v", err)
	}
	if rel.Identifier.Version != "v1" {
		t.Errorf("latest = %q, want v1 (newest available)", rel.Identifier.Version)
	}
}

func TestResolveExactVersion(t *testing.T) {
	ledger := NewLedger(&fakeAPI{releases: []api.Release{
		{Name: "v1", ExportDate: date("2023-01-01"), Available: true},
		{Name: "v2", ExportDate: date("2023-02-01"), Available: false},
	}})

	rel, err := ledger.ResolveVersion(context.Background(), cams, "v2")
	if err != nil {
		t.Fatalf("ResolveVersion failed: %v", err)
	}
	if rel.Identifier.Version != "v2" || rel.Available {
		t.Errorf("unexpected release: %+v", rel)
	}
}

func TestResolveVersionNotFound(t *testing.T) {
	ledger := NewLedger(&fakeAPI{})

	_, err := ledger.ResolveVersion(context.Background(), cams, "v9")
	if !errors.Is(err, ErrReleaseNotFound) {
		t.Fatalf("expected ErrReleaseNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "acme/cams:v9") {
		t.Errorf("error should carry the full identifier: %v", err)
	}
}

func TestResolveLatestAllUnavailable(t *testing.T) {
	ledger := NewLedger(&fakeAPI{releases: []api.Release{
		{Name: "v1", ExportDate: date("2023-01-01"), Available: false},
	}})

	_, err := ledger.ResolveVersion(context.Background(), cams, Latest)
	if !errors.Is(err, ErrReleaseNotFound) {
		t.Fatalf("expected ErrReleaseNotFound, got %v", err)
	}
}

func TestListSortsByExportDateDescending(t *testing.T) {
	ledger := NewLedger(&fakeAPI{releases: []api.Release{
		{Name: "old", ExportDate: date("2022-01-01"), Available: true},
		{Name: "new", ExportDate: date("2023-06-01"), Available: false},
		{Name: "mid", ExportDate: date("2023-01-01"), Available: true},
	}})

	releases, err := ledger.List(context.Background(), cams)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	got := make([]string, len(releases))
	for i, rel := range releases {
		got[i] = rel.Identifier.Version
	}
	want := []string{"new", "mid", "old"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	// Unavailable releases stay in the listing.
	if releases[0].Available {
		t.Error("expected 'new' to be unavailable")
	}
}

func TestCreateRejectsBadName(t *testing.T) {
	fake := &fakeAPI{}
	ledger := NewLedger(fake)

	_, err := ledger.Create(context.Background(), cams, nil, "bad/name")
	if !errors.Is(err, ErrInvalidReleaseName) {
		t.Fatalf("expected ErrInvalidReleaseName for a name with a path separator, got %v", err)
	}
	if len(fake.created) != 0 {
		t.Error("invalid name must be rejected before any network call")
	}
}

func TestCreatePassesThrough(t *testing.T) {
	fake := &fakeAPI{}
	ledger := NewLedger(fake)

	rel, err := ledger.Create(context.Background(), cams, []int{1, 2}, "v1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rel.Identifier.String() != "acme/cams:v1" {
		t.Errorf("unexpected identifier: %s", rel.Identifier)
	}
	if rel.Available {
		t.Error("a freshly requested export must start unavailable")
	}
	if len(fake.created) != 1 || len(fake.created[0].ClassIDs) != 2 {
		t.Errorf("unexpected request: %+v", fake.created)
	}
}
