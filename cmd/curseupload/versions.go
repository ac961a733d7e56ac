// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"curseupload-cli/internal/curseforge"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// versionsParams bundles the dependencies for the versions command.
type versionsParams struct {
	stdout io.Writer
	client *curseforge.Client
	logger *log.Logger
	labels []string // labels to resolve; empty = list the whole catalog
}

// newVersionsCommand creates the `curseupload versions` command, which lists
// the remote game version catalog or previews how labels would resolve.
func newVersionsCommand() *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "versions [label...]",
		Short: "List the game version catalog or resolve version labels",
		Long: `List the game version catalog or resolve version labels.

Without arguments, prints every catalog entry (name, slug and numeric ID).
With arguments, resolves each label the same way the upload command would
and prints the resulting IDs.`,
		Example: `  # Print the full catalog
  curseupload versions

  # Preview how two labels resolve
  curseupload versions 1.20.1 1-19`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			client, err := newAPIClient(apiKey)
			if err != nil {
				reportError(err)
				return &ExitError{Code: 1, Err: err}
			}

			p := versionsParams{
				stdout: cmd.OutOrStdout(),
				client: client,
				logger: logger,
				labels: args,
			}

			if err := runVersions(cmd.Context(), p); err != nil {
				reportError(err)
				return &ExitError{Code: 1, Err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "CurseForge API token (overrides config and environment)")

	return cmd
}

// runVersions is the core versions logic, separated from Cobra for testability.
func runVersions(ctx context.Context, p versionsParams) error {
	catalog, err := p.client.GameVersions(ctx)
	if err != nil {
		return err
	}

	if len(p.labels) == 0 {
		fmt.Fprintln(p.stdout, TitleStyle.Render("Game versions"))
		for _, v := range catalog {
			fmt.Fprintf(p.stdout, "  %-16s %-16s %d\n", v.Name, v.Slug, v.ID)
		}
		return nil
	}

	ids, err := curseforge.ResolveVersions(catalog, p.labels, p.logger)
	if err != nil {
		return err
	}

	for i, label := range p.labels {
		fmt.Fprintf(p.stdout, "  %s %s %d\n", LabelStyle.Render(label), SubtitleStyle.Render("->"), ids[i])
	}
	return nil
}
