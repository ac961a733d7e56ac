// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for curseupload.
//
// This package implements the Cobra command hierarchy for the curseupload CLI:
// the root command, the upload command itself, and the read-only catalog
// commands (versions, dependencies).
package cmd
