package cmd

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/pelicanml/pelican/internal/testutil"
)

func TestDatasetLocalEmptyCache(t *testing.T) {
	viper.Reset()
	viper.Set("datasets.dir", t.TempDir())

	localTeam = ""
	if err := runDatasetLocal(nil, nil); err != nil {
		t.Fatalf("local command failed: %v", err)
	}
}

func TestDatasetLocalListsDatasets(t *testing.T) {
	tree := testutil.NewTempDatasetTree(t)
	tree.AddDataset("acme", "cams", map[string]string{"a.jpg": "x"})
	tree.AddDataset("acme", "birds", map[string]string{"b.jpg": "y"})

	viper.Reset()
	viper.Set("datasets.dir", tree.Root)

	localTeam = ""
	if err := runDatasetLocal(nil, nil); err != nil {
		t.Fatalf("local command failed: %v", err)
	}

	localTeam = "other"
	if err := runDatasetLocal(nil, nil); err != nil {
		t.Fatalf("local command with team filter failed: %v", err)
	}
}
