package cli

import (
	"github.com/spf13/cobra"

	"echopaint/internal/config"
	"echopaint/internal/settings"
)

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Edit the settings file in a form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.SettingsPath()
			if err != nil {
				return err
			}
			return settings.Run(p)
		},
	}
}
