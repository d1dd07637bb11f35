package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/config"
	"github.com/pelicanml/pelican/internal/identifier"
	"github.com/pelicanml/pelican/internal/transfer"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "pelican",
	Short: "Sync annotated datasets between local storage and the remote service",
	Long: `pelican manages versioned image and video datasets:
  - authenticate against the remote service and switch teams
  - create and list remote datasets
  - export releases (versioned snapshots of annotation state)
  - push local files (videos are split into frames server-side)
  - pull releases into the local dataset cache`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.pelican/config.yaml)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := config.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("pelican")
	viper.AutomaticEnv()

	home, _ := os.UserHomeDir()

	// Set defaults
	viper.SetDefault("api.base_url", "https://api.pelicanml.com")
	viper.SetDefault("datasets.dir", filepath.Join(home, ".pelican", "datasets"))
	viper.SetDefault("transfer.workers", transfer.DefaultWorkers)

	viper.ReadInConfig()
}

// newClient builds the transport client from the stored credentials.
func newClient() (*api.Client, error) {
	if !config.Authenticated() {
		return nil, fmt.Errorf("not authenticated, run 'pelican authenticate' first")
	}
	return api.New(config.BaseURL(), config.APIKey()), nil
}

// resolveIdentifier parses a dataset reference and fills in the active
// team when the reference leaves it out.
func resolveIdentifier(reference string) (identifier.Identifier, error) {
	id, err := identifier.Parse(reference)
	if err != nil {
		return id, err
	}
	if id.Team == "" {
		id.Team = config.DefaultTeam()
	}
	if id.Team == "" {
		return id, fmt.Errorf("dataset %q: no team in the reference and no default team configured", reference)
	}
	return id, nil
}
