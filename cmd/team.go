package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/config"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show the active team",
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.DefaultTeam() == "" {
			return fmt.Errorf("no team configured, run 'pelican authenticate' first")
		}
		fmt.Println(config.DefaultTeam())
		return nil
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the teams the account belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		def := config.DefaultTeam()
		for _, slug := range config.Teams() {
			if slug == def {
				fmt.Printf("%s (default)\n", slug)
			} else {
				fmt.Println(slug)
			}
		}
		return nil
	},
}

var teamSetCmd = &cobra.Command{
	Use:   "set <team-slug>",
	Short: "Switch the active team and persist the change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetDefaultTeam(args[0]); err != nil {
			return err
		}
		fmt.Printf("Default team set to %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)
	teamCmd.AddCommand(teamListCmd)
	teamCmd.AddCommand(teamSetCmd)
}
