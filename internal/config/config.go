// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"curseupload-cli/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the config directory name.
	AppName = "curseupload"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. CURSEUPLOAD_API_KEY.
	EnvPrefix = "CURSEUPLOAD"

	// maxConfigFileBytes caps the config file size (1 MB). Anything larger
	// is not a config file.
	maxConfigFileBytes = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the per-user curseupload configuration directory:
// %APPDATA%\curseupload on Windows, ~/Library/Application Support/curseupload
// on macOS, and $XDG_CONFIG_HOME/curseupload (default ~/.config/curseupload)
// elsewhere.
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolving home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// Load assembles the configuration: defaults first, then the config file
// (the --config override exclusively if set, otherwise config.cue in the
// config directory if present), then CURSEUPLOAD_* environment variables on
// top. A missing default config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("api_key", defaults.APIKey)
	v.SetDefault("endpoint", string(defaults.Endpoint))
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, required, err := configFilePath()
	if err != nil {
		return nil, err
	}
	switch {
	case path != "" && !fileExists(path):
		if required {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Check that the file exists and is readable").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		// Default location, nothing there: run on defaults.
	case path != "":
		if err := mergeCUEFile(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Endpoint must be an absolute http(s) URL").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, nil
}

// configFilePath picks the config file to read. The --config override is
// required to exist; the default location is optional.
func configFilePath() (path string, required bool, err error) {
	if configFilePathOverride != "" {
		return configFilePathOverride, true, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", false, err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), false, nil
}

// mergeCUEFile compiles a CUE config file, checks it against the embedded
// #Config schema, and merges the result into v. Defaults survive the merge
// and environment variables still win over file values.
func mergeCUEFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if len(data) > maxConfigFileBytes {
		return fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileBytes)
	}

	cuectx := cuecontext.New()

	schema := cuectx.CompileString(configSchema).LookupPath(cue.ParsePath("#Config"))
	if schema.Err() != nil {
		return fmt.Errorf("internal error: config schema does not compile: %w", schema.Err())
	}

	user := cuectx.CompileBytes(data, cue.Filename(path))
	if user.Err() != nil {
		return fmt.Errorf("parsing %s: %w", path, user.Err())
	}

	// Optional fields stay open, hence Concrete(false); the unification
	// still rejects wrong types and unknown structure.
	unified := schema.Unify(user)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	var values map[string]any
	if err := unified.Decode(&values); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	if err := v.MergeConfigMap(values); err != nil {
		return fmt.Errorf("merging configuration: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
