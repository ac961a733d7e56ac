// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curseupload-cli/internal/curseforge"

	"github.com/charmbracelet/log"
)

// newUploadFixture stands up a fake Upload API and returns ready-to-use
// params plus a counter of upload POSTs received.
func newUploadFixture(t *testing.T) (uploadParams, *int) {
	t.Helper()

	dir := t.TempDir()
	artifact := filepath.Join(dir, "mymod.jar")
	if err := os.WriteFile(artifact, []byte("jar"), 0o644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	notes := filepath.Join(dir, "CHANGELOG.md")
	if err := os.WriteFile(notes, []byte("## notes\n"), 0o644); err != nil {
		t.Fatalf("writing changelog: %v", err)
	}

	uploads := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/game/versions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		catalog := []curseforge.GameVersion{
			{Name: "1.20.1", Slug: "1-20-1", ID: 100},
			{Name: "1.19", Slug: "1-19", ID: 90},
		}
		if err := json.NewEncoder(w).Encode(catalog); err != nil {
			t.Errorf("encoding catalog: %v", err)
		}
	})
	mux.HandleFunc("/api/projects/", func(w http.ResponseWriter, r *http.Request) {
		uploads++
		w.Header().Set("Content-Type", "application/json")
		if _, err := io.WriteString(w, `{"id": 999}`); err != nil {
			t.Errorf("writing response: %v", err)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return uploadParams{
		stdout:        &bytes.Buffer{},
		stderr:        &bytes.Buffer{},
		client:        curseforge.NewClient("key", curseforge.WithEndpoint(srv.URL)),
		logger:        log.New(io.Discard),
		projectID:     1234,
		filePath:      artifact,
		changelogPath: notes,
		releaseType:   "beta",
	}, &uploads
}

func TestRunUpload_HappyPath(t *testing.T) {
	p, uploads := newUploadFixture(t)
	p.versions = []string{"1.20.1", "1-19"}

	out := &bytes.Buffer{}
	p.stdout = out

	if err := runUpload(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *uploads != 1 {
		t.Errorf("expected 1 upload POST, got %d", *uploads)
	}
	if !strings.Contains(out.String(), "999") {
		t.Errorf("raw response not printed: %q", out.String())
	}
}

func TestRunUpload_DryRunSendsNothing(t *testing.T) {
	p, uploads := newUploadFixture(t)
	p.versions = []string{"1.20.1"}
	p.requiredDeps = []string{"libfoo"}
	p.dryRun = true

	out := &bytes.Buffer{}
	p.stdout = out

	if err := runUpload(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *uploads != 0 {
		t.Errorf("dry run must not upload, got %d POSTs", *uploads)
	}
	if !strings.Contains(out.String(), "Dry Run") {
		t.Errorf("dry run banner missing: %q", out.String())
	}
	if !strings.Contains(out.String(), "libfoo") {
		t.Errorf("dependencies missing from dry run output: %q", out.String())
	}
}

func TestRunUpload_ConflictingTarget(t *testing.T) {
	p, uploads := newUploadFixture(t)
	p.versions = []string{"1.20.1"}
	p.parentFileID = 555

	err := runUpload(context.Background(), p)
	if !errors.Is(err, curseforge.ErrConflictingTarget) {
		t.Fatalf("got %v, want ErrConflictingTarget", err)
	}
	if *uploads != 0 {
		t.Errorf("expected no upload POSTs, got %d", *uploads)
	}
}

func TestRunUpload_MissingTarget(t *testing.T) {
	p, uploads := newUploadFixture(t)

	err := runUpload(context.Background(), p)
	if !errors.Is(err, curseforge.ErrMissingTarget) {
		t.Fatalf("got %v, want ErrMissingTarget", err)
	}
	if *uploads != 0 {
		t.Errorf("expected no upload POSTs, got %d", *uploads)
	}
}

func TestRunUpload_UnresolvedVersionAbortsBeforeUpload(t *testing.T) {
	p, uploads := newUploadFixture(t)
	p.versions = []string{"1.20.1", "9.99"}

	err := runUpload(context.Background(), p)
	var unresolved *curseforge.UnresolvedVersionsError
	if !errors.As(err, &unresolved) {
		t.Fatalf("got %v, want UnresolvedVersionsError", err)
	}
	if unresolved.Labels[0] != "9.99" {
		t.Errorf("unresolved labels: got %v", unresolved.Labels)
	}
	if *uploads != 0 {
		t.Errorf("expected no upload POSTs, got %d", *uploads)
	}
}

func TestRunUpload_InvalidReleaseType(t *testing.T) {
	p, _ := newUploadFixture(t)
	p.parentFileID = 555
	p.releaseType = "nightly"

	err := runUpload(context.Background(), p)
	if !errors.Is(err, curseforge.ErrInvalidReleaseType) {
		t.Fatalf("got %v, want ErrInvalidReleaseType", err)
	}
}

func TestRunUpload_MissingArtifact(t *testing.T) {
	p, uploads := newUploadFixture(t)
	p.parentFileID = 555
	p.filePath = filepath.Join(t.TempDir(), "absent.jar")

	err := runUpload(context.Background(), p)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v, want wrapped os.ErrNotExist", err)
	}
	if *uploads != 0 {
		t.Errorf("expected no upload POSTs, got %d", *uploads)
	}
}

func TestCollectDependencies_KindOrder(t *testing.T) {
	t.Parallel()

	p := uploadParams{
		embeddedDeps:     []string{"emb"},
		incompatibleDeps: []string{"inc"},
		optionalDeps:     []string{"opt1", "opt2"},
		requiredDeps:     []string{"req"},
		toolDeps:         []string{"tool"},
	}

	deps := collectDependencies(p)
	want := []curseforge.Dependency{
		{Slug: "emb", Kind: curseforge.DependencyEmbeddedLibrary},
		{Slug: "inc", Kind: curseforge.DependencyIncompatible},
		{Slug: "opt1", Kind: curseforge.DependencyOptional},
		{Slug: "opt2", Kind: curseforge.DependencyOptional},
		{Slug: "req", Kind: curseforge.DependencyRequired},
		{Slug: "tool", Kind: curseforge.DependencyTool},
	}

	if len(deps) != len(want) {
		t.Fatalf("expected %d deps, got %d", len(want), len(deps))
	}
	for i := range want {
		if deps[i] != want[i] {
			t.Errorf("deps[%d]: got %v, want %v", i, deps[i], want[i])
		}
	}
}

func TestCollectDependencies_Empty(t *testing.T) {
	t.Parallel()

	if deps := collectDependencies(uploadParams{}); len(deps) != 0 {
		t.Errorf("expected no deps, got %v", deps)
	}
}
