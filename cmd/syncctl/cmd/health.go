package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Проверить состояние сервера и хранилища",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		resp, err := api.Health(ctx)
		if resp != nil {
			if perr := printHealth(cmd.OutOrStdout(), resp, jsonOutput); perr != nil {
				return perr
			}
		}
		return err
	},
}
