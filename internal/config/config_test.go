package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestPersistCredentialsAndReload(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()

	datasetsDir := filepath.Join(home, "data")
	err := PersistCredentials("key-123", "acme", []string{"acme", "other"}, datasetsDir)
	if err != nil {
		t.Fatalf("PersistCredentials failed: %v", err)
	}

	if _, err := os.Stat(datasetsDir); err != nil {
		t.Errorf("datasets directory was not created: %v", err)
	}
	cfgPath := filepath.Join(home, ".pelican", "config.yaml")
	if _, err := os.Stat(cfgPath); err != nil {
		t.Fatalf("config file was not written: %v", err)
	}

	// A fresh viper instance must read back the same values.
	viper.Reset()
	viper.SetConfigFile(cfgPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if APIKey() != "key-123" {
		t.Errorf("APIKey = %q", APIKey())
	}
	if DefaultTeam() != "acme" {
		t.Errorf("DefaultTeam = %q", DefaultTeam())
	}
	if got := Teams(); len(got) != 2 {
		t.Errorf("Teams = %v", got)
	}
	if DatasetsDir() != datasetsDir {
		t.Errorf("DatasetsDir = %q", DatasetsDir())
	}
}

func TestSetDefaultTeamRejectsUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	viper.Set("team.all", []string{"acme"})

	if err := SetDefaultTeam("stranger"); err == nil {
		t.Fatal("expected an error for an unknown team")
	}
	if err := SetDefaultTeam("acme"); err != nil {
		t.Fatalf("SetDefaultTeam failed: %v", err)
	}
	if DefaultTeam() != "acme" {
		t.Errorf("DefaultTeam = %q", DefaultTeam())
	}
}
