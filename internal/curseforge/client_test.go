// SPDX-License-Identifier: MPL-2.0

package curseforge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGameVersions_FetchesCatalog(t *testing.T) {
	t.Parallel()

	catalog := []GameVersion{
		{Name: "1.20.1", Slug: "1-20-1", ID: 100},
		{Name: "1.19", Slug: "1-19", ID: 90},
	}

	var gotPath, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Api-Token")
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(catalog); err != nil {
			t.Errorf("encoding catalog: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient("token123", WithEndpoint(srv.URL))
	got, err := client.GameVersions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/game/versions" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotToken != "token123" {
		t.Errorf("X-Api-Token: got %q", gotToken)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(got))
	}
	// Catalog order must survive decoding; resolution depends on it.
	if got[0].ID != 100 || got[1].ID != 90 {
		t.Errorf("catalog order: got %v", got)
	}
	if got[0].Name != "1.20.1" || got[0].Slug != "1-20-1" {
		t.Errorf("catalog entry fields: got %+v", got[0])
	}
}

func TestGameVersions_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient("bad-token", WithEndpoint(srv.URL))
	if _, err := client.GameVersions(context.Background()); err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestGameDependencies_Passthrough(t *testing.T) {
	t.Parallel()

	payload := `[{"id":1,"name":"Embedded Library","slug":"embeddedLibrary"},{"id":4,"name":"Tool","slug":"tool"}]`

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		if _, err := io.WriteString(w, payload); err != nil {
			t.Errorf("writing payload: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient("token", WithEndpoint(srv.URL))
	got, err := client.GameDependencies(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/api/game/dependencies" {
		t.Errorf("path: got %q", gotPath)
	}
	// Untyped passthrough: the body comes back byte for byte.
	if string(got) != payload {
		t.Errorf("payload: got %q, want %q", got, payload)
	}
}

func TestGameDependencies_NonJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.WriteString(w, "not json"); err != nil {
			t.Errorf("writing payload: %v", err)
		}
	}))
	defer srv.Close()

	client := NewClient("token", WithEndpoint(srv.URL))
	if _, err := client.GameDependencies(context.Background()); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestWithEndpoint_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	client := NewClient("token", WithEndpoint("https://wow.curseforge.com/"))
	if client.Endpoint() != "https://wow.curseforge.com" {
		t.Errorf("endpoint: got %q", client.Endpoint())
	}
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()

	client := NewClient("token")
	if client.Endpoint() != DefaultEndpoint {
		t.Errorf("endpoint: got %q, want %q", client.Endpoint(), DefaultEndpoint)
	}
}
