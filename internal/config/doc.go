// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/curseupload/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/curseupload/config.cue on macOS,
// %APPDATA%\curseupload\config.cue on Windows). It carries the API key, the
// Upload API endpoint, and UI settings; environment variables with the
// CURSEUPLOAD_ prefix override file values.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
