// SPDX-License-Identifier: MPL-2.0

// Package curseforge implements a client for the CurseForge Upload API.
// It covers the two read-only catalog endpoints (game versions and
// dependency types), resolution of human-readable version labels to
// API-internal numeric IDs, and the multipart file upload itself.
//
// The package is organized into three concerns:
//   - client.go: HTTP client for the Upload API (catalog fetches, request plumbing)
//   - versions.go: version catalog model and label-to-ID resolution
//   - upload.go: upload metadata assembly, target validation, and the multipart POST
package curseforge
