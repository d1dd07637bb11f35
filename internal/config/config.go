// Package config reads and persists the client configuration: API
// credentials, the active team, and the local datasets directory. The
// sync core treats these as read-only input resolved once per command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Dir returns the configuration directory, ~/.pelican.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".pelican"), nil
}

// APIKey returns the stored API key.
func APIKey() string {
	return viper.GetString("api.key")
}

// BaseURL returns the remote service endpoint.
func BaseURL() string {
	return viper.GetString("api.base_url")
}

// DefaultTeam returns the active team slug.
func DefaultTeam() string {
	return viper.GetString("team.default")
}

// Teams returns the slugs of all teams the account belongs to.
func Teams() []string {
	return viper.GetStringSlice("team.all")
}

// DatasetsDir returns the local datasets root.
func DatasetsDir() string {
	return viper.GetString("datasets.dir")
}

// ConcurrentTransfers returns the transfer worker pool size.
func ConcurrentTransfers() int {
	return viper.GetInt("transfer.workers")
}

// Authenticated reports whether credentials have been stored.
func Authenticated() bool {
	return APIKey() != ""
}

// SetDefaultTeam switches the active team and persists the change.
func SetDefaultTeam(slug string) error {
	known := false
	for _, team := range Teams() {
		if team == slug {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown team %q (known teams: %v)", slug, Teams())
	}
	viper.Set("team.default", slug)
	return write()
}

// PersistCredentials stores the API key, team membership and datasets
// directory after a successful authentication.
func PersistCredentials(apiKey, defaultTeam string, teams []string, datasetsDir string) error {
	if err := os.MkdirAll(datasetsDir, 0o755); err != nil {
		return fmt.Errorf("create datasets directory: %w", err)
	}
	viper.Set("api.key", apiKey)
	viper.Set("team.default", defaultTeam)
	viper.Set("team.all", teams)
	viper.Set("datasets.dir", datasetsDir)
	return write()
}

func write() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
