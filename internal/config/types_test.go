// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestEndpoint_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		endpoint Endpoint
		valid    bool
	}{
		{"empty means default", "", true},
		{"https URL", "https://minecraft.curseforge.com", true},
		{"http URL", "http://localhost:8080", true},
		{"missing scheme", "minecraft.curseforge.com", false},
		{"wrong scheme", "ftp://minecraft.curseforge.com", false},
		{"not a URL", "not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.endpoint.IsValid()
			if valid != tt.valid {
				t.Errorf("IsValid(%q) = %v, want %v", tt.endpoint, valid, tt.valid)
			}
			if !tt.valid {
				if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidEndpoint) {
					t.Errorf("expected InvalidEndpointError, got %v", errs)
				}
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := Config{APIKey: "tok", Endpoint: "https://minecraft.curseforge.com"}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("expected valid config, got %v", errs)
	}

	bad := Config{Endpoint: "::::"}
	valid, errs := bad.IsValid()
	if valid {
		t.Fatal("expected invalid config")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidConfig) {
		t.Errorf("expected InvalidConfigError, got %v", errs)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config must be valid, got %v", errs)
	}
}
