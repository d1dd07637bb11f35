package transfer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/identifier"
	"github.com/pelicanml/pelican/internal/release"
	"github.com/pelicanml/pelican/internal/testutil"
)

func availableRelease() release.Release {
	return release.Release{
		Identifier: identifier.Identifier{Team: "acme", Dataset: "cams", Version: "v1"},
		ExportDate: time.Now(),
		Available:  true,
	}
}

func TestPullUnavailableRelease(t *testing.T) {
	remote := &fakeRemote{}
	engine := NewEngine(remote, 2)
	root := t.TempDir()

	rel := availableRelease()
	rel.Available = false
	_, err := engine.Pull(context.Background(), rel, root)
	if !errors.Is(err, ErrReleaseUnavailable) {
		t.Fatalf("expected ErrReleaseUnavailable, got %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(root, "acme")); !os.IsNotExist(statErr) {
		t.Error("unavailable release must not create local directories")
	}
	if remote.calls.Load() != 0 {
		t.Error("unavailable release must not hit the network")
	}
}

func TestPullMaterializesRelease(t *testing.T) {
	remote := &fakeRemote{
		assets: []api.Asset{
			{Name: "images/a.jpg", URL: "/a"},
			{Name: "annotations/a.json", URL: "/a.json"},
		},
		content: map[string]string{
			"images/a.jpg":       "jpeg",
			"annotations/a.json": "{}",
		},
	}
	engine := NewEngine(remote, 2)
	root := t.TempDir()

	ds, err := engine.Pull(context.Background(), availableRelease(), root)
	if err != nil {
		t.Fatalf("Pull failed: %v", err)
	}
	want := filepath.Join(root, "acme", "cams")
	if ds.Root != want || ds.Team != "acme" || ds.Slug != "cams" {
		t.Errorf("unexpected local dataset: %+v", ds)
	}

	files := testutil.ReadTree(t, ds.Root)
	if files[filepath.Join("images", "a.jpg")] != "jpeg" {
		t.Errorf("image not materialized: %v", files)
	}
	if files[filepath.Join("annotations", "a.json")] != "{}" {
		t.Errorf("annotation not materialized: %v", files)
	}
}

func TestPullIsIdempotent(t *testing.T) {
	remote := &fakeRemote{
		assets:  []api.Asset{{Name: "images/a.jpg", URL: "/a"}},
		content: map[string]string{"images/a.jpg": "jpeg"},
	}
	engine := NewEngine(remote, 2)
	root := t.TempDir()

	ds, err := engine.Pull(context.Background(), availableRelease(), root)
	if err != nil {
		t.Fatalf("first pull failed: %v", err)
	}

	// Unrelated pre-existing content must survive the second pull.
	extra := filepath.Join(ds.Root, "notes.txt")
	if err := os.WriteFile(extra, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	first := testutil.ReadTree(t, ds.Root)

	if _, err := engine.Pull(context.Background(), availableRelease(), root); err != nil {
		t.Fatalf("second pull failed: %v", err)
	}
	second := testutil.ReadTree(t, ds.Root)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("pull is not idempotent:\nfirst:  %v\nsecond: %v", first, second)
	}
	if second["notes.txt"] != "mine" {
		t.Error("pull deleted unrelated pre-existing content")
	}
}

func TestPullRetryConvergesAfterFailure(t *testing.T) {
	remote := &fakeRemote{
		assets: []api.Asset{
			{Name: "a.jpg", URL: "/a"},
			{Name: "b.jpg", URL: "/b"},
		},
		content: map[string]string{"a.jpg": "A", "b.jpg": "B"},
		failOn:  map[string]error{"b.jpg": errors.New("connection reset")},
	}
	engine := NewEngine(remote, 1)
	root := t.TempDir()

	if _, err := engine.Pull(context.Background(), availableRelease(), root); err == nil {
		t.Fatal("expected first pull to report the failed download")
	}

	dest := filepath.Join(root, "acme", "cams")
	if _, err := os.Stat(filepath.Join(dest, "b.jpg.partial")); !os.IsNotExist(err) {
		t.Error("failed download left a partial file behind")
	}

	remote.failOn = nil
	ds, err := engine.Pull(context.Background(), availableRelease(), root)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	files := testutil.ReadTree(t, ds.Root)
	if files["a.jpg"] != "A" || files["b.jpg"] != "B" {
		t.Errorf("retry did not converge: %v", files)
	}
}

func TestPullRejectsEscapingAssetNames(t *testing.T) {
	remote := &fakeRemote{
		assets:  []api.Asset{{Name: "../../evil.sh", URL: "/e"}},
		content: map[string]string{"../../evil.sh": "#!"},
	}
	engine := NewEngine(remote, 1)
	root := t.TempDir()

	if _, err := engine.Pull(context.Background(), availableRelease(), root); err == nil {
		t.Fatal("expected pull to reject an asset escaping the dataset directory")
	}
	if _, err := os.Stat(filepath.Join(root, "evil.sh")); !os.IsNotExist(err) {
		t.Error("escaping asset was written outside the dataset directory")
	}
}
