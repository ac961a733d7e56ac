// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"
)

// newDependenciesCommand creates the `curseupload dependencies` command,
// which dumps the remote dependency-type catalog as JSON. The payload is
// passed through untyped; its shape belongs to the API.
func newDependenciesCommand() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "dependencies",
		Short: "Print the dependency-type catalog as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			client, err := newAPIClient(apiKey)
			if err != nil {
				reportError(err)
				return &ExitError{Code: 1, Err: err}
			}

			raw, err := client.GameDependencies(cmd.Context())
			if err != nil {
				reportError(err)
				return &ExitError{Code: 1, Err: err}
			}

			printJSON(cmd.OutOrStdout(), raw)
			return nil
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "CurseForge API token (overrides config and environment)")

	return cmd
}
