package cmd

import (
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/pelicanml/pelican/internal/testutil"
)

func TestDatasetPathFound(t *testing.T) {
	tree := testutil.NewTempDatasetTree(t)
	tree.AddDataset("acme", "cams", nil)

	viper.Reset()
	viper.Set("datasets.dir", tree.Root)
	viper.Set("team.default", "acme")

	if err := runDatasetPath(nil, []string{"cams"}); err != nil {
		t.Fatalf("path command failed: %v", err)
	}
}

func TestDatasetPathMissing(t *testing.T) {
	tree := testutil.NewTempDatasetTree(t)

	viper.Reset()
	viper.Set("datasets.dir", tree.Root)
	viper.Set("team.default", "acme")

	err := runDatasetPath(nil, []string{"missing"})
	if err == nil {
		t.Fatal("expected an error for a missing dataset")
	}
	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error should name the dataset: %v", err)
	}
}

func TestResolveIdentifierUsesDefaultTeam(t *testing.T) {
	viper.Reset()
	viper.Set("team.default", "acme")

	id, err := resolveIdentifier("cams:v1")
	if err != nil {
		t.Fatalf("resolveIdentifier failed: %v", err)
	}
	if id.Team != "acme" || id.Dataset != "cams" || id.Version != "v1" {
		t.Errorf("unexpected identifier: %+v", id)
	}
}

func TestResolveIdentifierExplicitTeamWins(t *testing.T) {
	viper.Reset()
	viper.Set("team.default", "acme")

	id, err := resolveIdentifier("other/cams")
	if err != nil {
		t.Fatalf("resolveIdentifier failed: %v", err)
	}
	if id.Team != "other" {
		t.Errorf("explicit team was overridden: %+v", id)
	}
}

func TestResolveIdentifierNoTeamAnywhere(t *testing.T) {
	viper.Reset()

	if _, err := resolveIdentifier("cams"); err == nil {
		t.Fatal("expected an error when no team is available")
	}
}
