// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"curseupload-cli/internal/changelog"
	"curseupload-cli/internal/curseforge"
	"curseupload-cli/internal/issue"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// uploadParams bundles the dependencies and flags for the upload command,
// enabling the core logic in runUpload to be tested without a real Cobra
// command or a live Upload API.
type uploadParams struct {
	stdout io.Writer
	stderr io.Writer
	client *curseforge.Client
	logger *log.Logger

	projectID     int
	filePath      string
	changelogPath string
	changelogType string // empty = auto-detect from extension
	releaseType   string
	parentFileID  int
	versions      []string
	displayName   string

	embeddedDeps     []string
	incompatibleDeps []string
	optionalDeps     []string
	requiredDeps     []string
	toolDeps         []string

	dryRun bool
}

// newUploadCommand creates the `curseupload upload` command, which uploads
// a file and its changelog to a project.
func newUploadCommand() *cobra.Command {
	var p uploadParams
	var apiKey string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a file to a CurseForge project",
		Long: `Upload a file to a CurseForge project.

The file is attached either to specific game versions (--version, repeatable;
labels are resolved against the remote version catalog by name or slug) or to
an existing parent file (--parent-file-id). Exactly one of the two must be
given.

The changelog format is auto-detected from the changelog file extension
(.html, .md) unless --changelog-type is passed explicitly.`,
		Example: `  # Upload a beta file for two game versions
  curseupload upload -p 1234 -f dist/mymod.jar -c CHANGELOG.md -r beta \
      --version 1.20.1 --version 1.19

  # Attach a child file to an existing upload
  curseupload upload -p 1234 -f dist/mymod-sources.jar -c CHANGELOG.md -r beta \
      --parent-file-id 555

  # Declare dependencies
  curseupload upload -p 1234 -f dist/mymod.jar -c CHANGELOG.md -r release \
      --version 1.20.1 --required-dep libfoo --optional-dep barlib

  # See what would be sent without uploading
  curseupload upload -p 1234 -f dist/mymod.jar -c CHANGELOG.md -r alpha \
      --version 1.20.1 --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			client, err := newAPIClient(apiKey)
			if err != nil {
				reportError(err)
				return &ExitError{Code: 1, Err: err}
			}

			p.stdout = cmd.OutOrStdout()
			p.stderr = cmd.ErrOrStderr()
			p.client = client
			p.logger = logger

			if err := runUpload(cmd.Context(), p); err != nil {
				reportError(err)
				return &ExitError{Code: 1, Err: err}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "CurseForge API token (overrides config and environment)")
	cmd.Flags().IntVarP(&p.projectID, "project-id", "p", 0, "project ID to upload the file to")
	cmd.Flags().StringVarP(&p.filePath, "file-path", "f", "", "path to the file to upload")
	cmd.Flags().StringVarP(&p.changelogPath, "changelog-path", "c", "", "path to the changelog file")
	cmd.Flags().StringVar(&p.changelogType, "changelog-type", "", "changelog format: text, html or markdown (default: auto-detect from extension)")
	cmd.Flags().StringVarP(&p.releaseType, "release-type", "r", "", "release type: alpha, beta or release")
	cmd.Flags().IntVar(&p.parentFileID, "parent-file-id", 0, "parent file ID to append this file to (cannot be used with --version)")
	cmd.Flags().StringArrayVar(&p.versions, "version", nil, "game version this file is compatible with; repeatable (cannot be used with --parent-file-id)")
	cmd.Flags().StringVar(&p.displayName, "display-name", "", "friendly display name for this file")
	cmd.Flags().StringArrayVar(&p.embeddedDeps, "embedded-lib-dep", nil, "slug of an embedded library dependency; repeatable")
	cmd.Flags().StringArrayVar(&p.incompatibleDeps, "incompatible-dep", nil, "slug of an incompatible project; repeatable")
	cmd.Flags().StringArrayVar(&p.optionalDeps, "optional-dep", nil, "slug of an optional dependency; repeatable")
	cmd.Flags().StringArrayVar(&p.requiredDeps, "required-dep", nil, "slug of a required dependency; repeatable")
	cmd.Flags().StringArrayVar(&p.toolDeps, "tool-dep", nil, "slug of a tool dependency; repeatable")
	cmd.Flags().BoolVar(&p.dryRun, "dry-run", false, "print the upload details without uploading")

	for _, required := range []string{"project-id", "file-path", "changelog-path", "release-type"} {
		_ = cmd.MarkFlagRequired(required)
	}

	return cmd
}

// runUpload is the core upload logic, separated from Cobra for testability.
// All user-facing output goes through p.stdout and p.stderr.
//
// Flow:
//  1. Validate inputs: release type, target exclusivity, file existence.
//  2. Read the changelog, detecting its format from the extension if needed.
//  3. Resolve game version labels against the remote catalog (if any given).
//  4. Assemble the upload spec, dependencies in kind order.
//  5. On --dry-run, print the details and stop; otherwise upload and print
//     the raw API response.
func runUpload(ctx context.Context, p uploadParams) error {
	releaseType := curseforge.ReleaseType(p.releaseType)
	if valid, errs := releaseType.IsValid(); !valid {
		return errs[0]
	}

	// Target exclusivity is checked before anything touches the network.
	if p.parentFileID != 0 && len(p.versions) > 0 {
		return curseforge.ErrConflictingTarget
	}
	if p.parentFileID == 0 && len(p.versions) == 0 {
		return curseforge.ErrMissingTarget
	}

	for _, path := range []string{p.filePath, p.changelogPath} {
		if _, err := os.Stat(path); err != nil {
			return issue.WrapWithContext(err, "find file", path)
		}
	}

	format := changelog.DetectFormat(p.changelogPath)
	if p.changelogType != "" {
		var err error
		if format, err = changelog.ParseFormat(p.changelogType); err != nil {
			return err
		}
	}

	notes, err := changelog.Read(p.changelogPath)
	if err != nil {
		return issue.WrapWithContext(err, "read changelog", p.changelogPath)
	}

	var versionIDs []int
	if len(p.versions) > 0 {
		catalog, err := p.client.GameVersions(ctx)
		if err != nil {
			return issue.WrapWithOperation(err, "fetch game version catalog")
		}
		versionIDs, err = curseforge.ResolveVersions(catalog, p.versions, p.logger)
		if err != nil {
			return err
		}
	}

	deps := collectDependencies(p)

	spec := curseforge.UploadSpec{
		Changelog:      notes,
		ChangelogType:  curseforge.ChangelogType(format),
		ReleaseType:    releaseType,
		ParentFileID:   p.parentFileID,
		GameVersionIDs: versionIDs,
		DisplayName:    p.displayName,
		Dependencies:   deps,
	}

	p.logger.Info("upload details",
		"project", p.projectID,
		"file", p.filePath,
		"changelog", p.changelogPath,
		"changelogType", format,
		"releaseType", releaseType,
		"parentFileID", p.parentFileID,
		"versionIDs", versionIDs,
		"deps", len(deps))

	if p.dryRun {
		renderDryRun(p.stdout, p, spec)
		return nil
	}

	resp, err := p.client.UploadFile(ctx, p.projectID, p.filePath, spec)
	if err != nil {
		return issue.WrapWithContext(err, "upload file", p.filePath)
	}

	fmt.Fprintln(p.stdout, SuccessStyle.Render("Upload accepted."))
	printJSON(p.stdout, resp)
	return nil
}

// collectDependencies flattens the per-kind dependency flags, keeping the
// fixed kind order and the per-flag input order.
func collectDependencies(p uploadParams) []curseforge.Dependency {
	var deps []curseforge.Dependency
	appendKind := func(slugs []string, kind curseforge.DependencyKind) {
		for _, slug := range slugs {
			deps = append(deps, curseforge.Dependency{Slug: slug, Kind: kind})
		}
	}
	appendKind(p.embeddedDeps, curseforge.DependencyEmbeddedLibrary)
	appendKind(p.incompatibleDeps, curseforge.DependencyIncompatible)
	appendKind(p.optionalDeps, curseforge.DependencyOptional)
	appendKind(p.requiredDeps, curseforge.DependencyRequired)
	appendKind(p.toolDeps, curseforge.DependencyTool)
	return deps
}

// renderDryRun prints the fully-validated upload without sending it:
// the target, the changelog format, and each dependency relation —
// everything a user needs to understand what curseupload would do.
func renderDryRun(w io.Writer, p uploadParams, spec curseforge.UploadSpec) {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %d\n", LabelStyle.Render("Project:"), p.projectID)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("File:"), p.filePath)
	fmt.Fprintf(w, "  %s %s (%s)\n", LabelStyle.Render("Changelog:"), p.changelogPath, spec.ChangelogType)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Release type:"), spec.ReleaseType)
	if spec.DisplayName != "" {
		fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Display name:"), spec.DisplayName)
	}
	if spec.ParentFileID != 0 {
		fmt.Fprintf(w, "  %s %d\n", LabelStyle.Render("Parent file:"), spec.ParentFileID)
	} else {
		fmt.Fprintf(w, "  %s %v (from %v)\n", LabelStyle.Render("Game versions:"), spec.GameVersionIDs, p.versions)
	}

	if len(spec.Dependencies) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, LabelStyle.Render("  Dependencies:"))
		for _, dep := range spec.Dependencies {
			fmt.Fprintf(w, "    %s (%s)\n", dep.Slug, dep.Kind)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, SubtitleStyle.Render("Nothing was uploaded."))
}

// printJSON pretty-prints a raw JSON payload, falling back to the raw bytes
// if indentation fails.
func printJSON(w io.Writer, raw json.RawMessage) {
	var buf []byte
	if indented, err := json.MarshalIndent(json.RawMessage(raw), "", "  "); err == nil {
		buf = indented
	} else {
		buf = raw
	}
	fmt.Fprintln(w, string(buf))
}
