// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"curseupload-cli/internal/config"
	"curseupload-cli/internal/curseforge"
	"curseupload-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// endpoint overrides the Upload API base URL
	endpoint string

	// logger is the process logger, injected into the client and the
	// version resolver for diagnostic traces.
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	// loadedCfg is the configuration loaded during initialization.
	loadedCfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "curseupload",
		Short: "Upload files to CurseForge",
		Long: TitleStyle.Render("curseupload") + SubtitleStyle.Render(" - CurseForge file uploader") + `

curseupload uploads build artifacts and their changelogs to the CurseForge
Upload API, resolving human-readable game version labels (like "1.20.1") to
the numeric IDs the API expects, and packaging dependency relations.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create an API token under your account's API Tokens page
  2. Put it in ~/.config/curseupload/config.cue, or export CURSEUPLOAD_API_KEY
  3. Upload with: curseupload upload -p <project-id> -f <file> ...

` + SubtitleStyle.Render("Examples:") + `
  curseupload versions                      List the game version catalog
  curseupload upload -p 1234 -f mod.jar \
      -c CHANGELOG.md -r beta \
      --version 1.20.1                      Upload a file for 1.20.1
  curseupload upload -p 1234 -f mod.jar \
      -c CHANGELOG.md -r release \
      --parent-file-id 555                  Attach a child file to file 555`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/curseupload/config.cue)")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Upload API base URL (default is the Minecraft deployment)")

	// Add subcommands
	rootCmd.AddCommand(newUploadCommand())
	rootCmd.AddCommand(newVersionsCommand())
	rootCmd.AddCommand(newDependenciesCommand())
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in the config file and env variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	cfg, err := config.Load()
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		cfg = config.DefaultConfig()
	}
	loadedCfg = cfg

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// resolveAPIKey picks the API key with flag > config (the config layer
// already folds in the CURSEUPLOAD_API_KEY environment variable).
func resolveAPIKey(flagKey string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if loadedCfg != nil && loadedCfg.APIKey != "" {
		return loadedCfg.APIKey, nil
	}
	return "", issue.NewErrorContext().
		WithOperation("authenticate").
		WithSuggestion("Pass --api-key on the command line").
		WithSuggestion("Or set CURSEUPLOAD_API_KEY in the environment").
		WithSuggestion("Or put api_key in your config file").
		Wrap(errors.New("no API key configured")).
		BuildError()
}

// resolveEndpoint picks the endpoint with flag > config > client default.
func resolveEndpoint() string {
	if endpoint != "" {
		return endpoint
	}
	if loadedCfg != nil && loadedCfg.Endpoint != "" {
		return loadedCfg.Endpoint.String()
	}
	return curseforge.DefaultEndpoint
}

// newAPIClient builds a client authenticated with the resolved API key.
func newAPIClient(flagKey string) (*curseforge.Client, error) {
	apiKey, err := resolveAPIKey(flagKey)
	if err != nil {
		return nil, err
	}
	return curseforge.NewClient(apiKey,
		curseforge.WithEndpoint(resolveEndpoint()),
		curseforge.WithUserAgent("curseupload/"+Version),
		curseforge.WithLogger(logger),
	), nil
}

// formatErrorForDisplay renders an error for terminal display, expanding
// ActionableError suggestions (and the error chain in verbose mode).
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// issueForError maps well-known failure modes to their markdown guidance.
// Returns nil when no guidance exists for the error.
func issueForError(err error) *issue.Issue {
	var unresolved *curseforge.UnresolvedVersionsError
	switch {
	case errors.As(err, &unresolved):
		return issue.Get(issue.UnresolvedVersionId)
	case errors.Is(err, curseforge.ErrConflictingTarget):
		return issue.Get(issue.ConflictingTargetId)
	case errors.Is(err, curseforge.ErrMissingTarget):
		return issue.Get(issue.MissingTargetId)
	case errors.Is(err, os.ErrNotExist):
		return issue.Get(issue.FileNotFoundId)
	default:
		return nil
	}
}

// reportError prints the error and, when guidance exists for it, the
// rendered remediation markdown.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if is := issueForError(err); is != nil {
		if rendered, renderErr := is.Render("auto"); renderErr == nil {
			fmt.Fprintln(os.Stderr, rendered)
		}
	}
}
