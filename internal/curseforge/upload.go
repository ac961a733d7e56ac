// SPDX-License-Identifier: MPL-2.0

package curseforge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
)

const (
	// ChangelogText is a plain-text changelog.
	ChangelogText ChangelogType = "text"
	// ChangelogHTML is an HTML changelog.
	ChangelogHTML ChangelogType = "html"
	// ChangelogMarkdown is a Markdown changelog.
	ChangelogMarkdown ChangelogType = "markdown"

	// ReleaseAlpha marks an alpha-quality file.
	ReleaseAlpha ReleaseType = "alpha"
	// ReleaseBeta marks a beta-quality file.
	ReleaseBeta ReleaseType = "beta"
	// ReleaseStable marks a stable release file.
	ReleaseStable ReleaseType = "release"

	// DependencyEmbeddedLibrary marks a library shipped inside the file.
	DependencyEmbeddedLibrary DependencyKind = "embeddedLibrary"
	// DependencyIncompatible marks a project the file conflicts with.
	DependencyIncompatible DependencyKind = "incompatible"
	// DependencyOptional marks a project the file can use but does not need.
	DependencyOptional DependencyKind = "optionalDependency"
	// DependencyRequired marks a project the file cannot run without.
	DependencyRequired DependencyKind = "requiredDependency"
	// DependencyTool marks a companion tool.
	DependencyTool DependencyKind = "tool"
)

var (
	// ErrConflictingTarget is returned when both a parent file ID and game
	// version IDs are supplied. Exactly one must be present.
	ErrConflictingTarget = errors.New("provide either a parent file ID or game versions, not both")

	// ErrMissingTarget is returned when neither a parent file ID nor game
	// version IDs are supplied. Exactly one must be present.
	ErrMissingTarget = errors.New("provide either a parent file ID or game versions")

	// ErrInvalidChangelogType is the sentinel wrapped by InvalidChangelogTypeError.
	ErrInvalidChangelogType = errors.New("invalid changelog type")

	// ErrInvalidReleaseType is the sentinel wrapped by InvalidReleaseTypeError.
	ErrInvalidReleaseType = errors.New("invalid release type")

	// ErrInvalidDependencyKind is the sentinel wrapped by InvalidDependencyKindError.
	ErrInvalidDependencyKind = errors.New("invalid dependency kind")
)

type (
	// ChangelogType is the format of the changelog string.
	ChangelogType string

	// InvalidChangelogTypeError is returned when a ChangelogType value is not recognized.
	// It wraps ErrInvalidChangelogType for errors.Is() compatibility.
	InvalidChangelogTypeError struct {
		Value ChangelogType
	}

	// ReleaseType is the maturity classification of an uploaded file.
	ReleaseType string

	// InvalidReleaseTypeError is returned when a ReleaseType value is not recognized.
	// It wraps ErrInvalidReleaseType for errors.Is() compatibility.
	InvalidReleaseTypeError struct {
		Value ReleaseType
	}

	// DependencyKind classifies the relationship between the uploaded file
	// and another project. The values are the API's literal strings.
	DependencyKind string

	// InvalidDependencyKindError is returned when a DependencyKind value is not recognized.
	// It wraps ErrInvalidDependencyKind for errors.Is() compatibility.
	InvalidDependencyKindError struct {
		Value DependencyKind
	}

	// Dependency is one relation between the uploaded file and another
	// project, identified by the project's slug.
	Dependency struct {
		Slug string
		Kind DependencyKind
	}

	// UploadSpec describes one file upload. Exactly one of ParentFileID
	// (non-zero) and GameVersionIDs (non-empty) must be set; the file is
	// attached either as a child revision of an existing file or as a
	// standalone file compatible with the given game versions.
	UploadSpec struct {
		Changelog      string
		ChangelogType  ChangelogType
		ReleaseType    ReleaseType
		ParentFileID   int    // 0 means unset
		GameVersionIDs []int  // nil/empty means unset
		DisplayName    string // optional friendly name
		// Dependencies are sent in the given order, duplicates included.
		Dependencies []Dependency
	}

	// uploadMetadata is the JSON wire format of the metadata multipart part.
	// The key spelling (parentFile, gameVersions, relations.projects) is the
	// API contract and must not change.
	uploadMetadata struct {
		Changelog     string        `json:"changelog"`
		ChangelogType ChangelogType `json:"changelogType"`
		ReleaseType   ReleaseType   `json:"releaseType"`
		ParentFileID  int           `json:"parentFile,omitempty"`
		GameVersions  []int         `json:"gameVersions,omitempty"`
		DisplayName   string        `json:"displayName,omitempty"`
		Relations     *relations    `json:"relations,omitempty"`
	}

	relations struct {
		Projects []projectRelation `json:"projects"`
	}

	projectRelation struct {
		Slug string         `json:"slug"`
		Type DependencyKind `json:"type"`
	}
)

// Error implements the error interface for InvalidChangelogTypeError.
func (e *InvalidChangelogTypeError) Error() string {
	return fmt.Sprintf("invalid changelog type %q (valid: text, html, markdown)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidChangelogTypeError) Unwrap() error { return ErrInvalidChangelogType }

// String returns the string representation of the ChangelogType.
func (t ChangelogType) String() string { return string(t) }

// IsValid returns whether the ChangelogType is one of the defined formats,
// and a list of validation errors if it is not.
func (t ChangelogType) IsValid() (bool, []error) {
	switch t {
	case ChangelogText, ChangelogHTML, ChangelogMarkdown:
		return true, nil
	default:
		return false, []error{&InvalidChangelogTypeError{Value: t}}
	}
}

// Error implements the error interface for InvalidReleaseTypeError.
func (e *InvalidReleaseTypeError) Error() string {
	return fmt.Sprintf("invalid release type %q (valid: alpha, beta, release)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidReleaseTypeError) Unwrap() error { return ErrInvalidReleaseType }

// String returns the string representation of the ReleaseType.
func (t ReleaseType) String() string { return string(t) }

// IsValid returns whether the ReleaseType is one of the defined release types,
// and a list of validation errors if it is not.
func (t ReleaseType) IsValid() (bool, []error) {
	switch t {
	case ReleaseAlpha, ReleaseBeta, ReleaseStable:
		return true, nil
	default:
		return false, []error{&InvalidReleaseTypeError{Value: t}}
	}
}

// Error implements the error interface for InvalidDependencyKindError.
func (e *InvalidDependencyKindError) Error() string {
	return fmt.Sprintf("invalid dependency kind %q (valid: embeddedLibrary, incompatible, optionalDependency, requiredDependency, tool)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidDependencyKindError) Unwrap() error { return ErrInvalidDependencyKind }

// String returns the string representation of the DependencyKind.
func (k DependencyKind) String() string { return string(k) }

// IsValid returns whether the DependencyKind is one of the defined kinds,
// and a list of validation errors if it is not.
func (k DependencyKind) IsValid() (bool, []error) {
	switch k {
	case DependencyEmbeddedLibrary, DependencyIncompatible, DependencyOptional, DependencyRequired, DependencyTool:
		return true, nil
	default:
		return false, []error{&InvalidDependencyKindError{Value: k}}
	}
}

// ValidateTarget checks the parent-file XOR game-versions invariant.
// Conflicting targets are reported before missing targets.
func (s UploadSpec) ValidateTarget() error {
	hasParent := s.ParentFileID != 0
	hasVersions := len(s.GameVersionIDs) > 0

	switch {
	case hasParent && hasVersions:
		return ErrConflictingTarget
	case !hasParent && !hasVersions:
		return ErrMissingTarget
	default:
		return nil
	}
}

// metadata validates the spec and assembles the wire-format metadata object.
func (s UploadSpec) metadata() (*uploadMetadata, error) {
	if err := s.ValidateTarget(); err != nil {
		return nil, err
	}

	md := &uploadMetadata{
		Changelog:     s.Changelog,
		ChangelogType: s.ChangelogType,
		ReleaseType:   s.ReleaseType,
	}

	if s.ParentFileID != 0 {
		md.ParentFileID = s.ParentFileID
	} else {
		md.GameVersions = s.GameVersionIDs
	}

	if s.DisplayName != "" {
		md.DisplayName = s.DisplayName
	}

	if len(s.Dependencies) > 0 {
		projects := make([]projectRelation, 0, len(s.Dependencies))
		for _, dep := range s.Dependencies {
			projects = append(projects, projectRelation{Slug: dep.Slug, Type: dep.Kind})
		}
		md.Relations = &relations{Projects: projects}
	}

	return md, nil
}

// UploadFile uploads the file at filePath to the given project via
// POST /api/projects/{projectId}/upload-file. The body is a two-part
// multipart form: "file" carries the binary content and "metadata" carries
// the JSON metadata with Content-Type application/json.
//
// The raw parsed JSON response is returned verbatim; the client does not
// interpret HTTP status codes or response shape.
func (c *Client) UploadFile(ctx context.Context, projectID int, filePath string, spec UploadSpec) (json.RawMessage, error) {
	md, err := spec.metadata()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	filePart, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(filePart, f); err != nil {
		return nil, fmt.Errorf("reading file %s: %w", filePath, err)
	}

	metadataJSON, err := json.Marshal(md)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Disposition", `form-data; name="metadata"`)
	metaHeader.Set("Content-Type", "application/json")
	metaPart, err := mw.CreatePart(metaHeader)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := metaPart.Write(metadataJSON); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	c.logger.Debug("uploading file", "project", projectID, "file", filePath, "bytes", body.Len())

	path := fmt.Sprintf("/api/projects/%d/upload-file", projectID)
	resp, err := c.doRequest(ctx, http.MethodPost, path, mw.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	raw, err := readJSON(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}
	return raw, nil
}
