// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package authz

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

func setupEnforcer(t *testing.T, cfg EnforcerConfig) *Enforcer {
	t.Helper()
	e, err := NewEnforcer(cfg)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestEnforcer_EmbeddedPolicy(t *testing.T) {
	e := setupEnforcer(t, EnforcerConfig{})

	tests := []struct {
		name    string
		subject string
		roles   []string
		object  string
		action  string
		want    bool
	}{
		{"admin rebuild", "ops", []string{"admin"}, "/api/v1/index/rebuild", ActionWrite, true},
		{"admin history", "ops", []string{"admin"}, "/api/v1/index/history", ActionRead, true},
		{"admin delete", "ops", []string{"admin"}, "/api/v1/index/rebuild", ActionDelete, false},
		{"reader rebuild", "alice", []string{"reader"}, "/api/v1/index/rebuild", ActionWrite, false},
		{"no roles", "alice", nil, "/api/v1/index/rebuild", ActionWrite, false},
		{"admin outside index", "ops", []string{"admin"}, "/api/v1/recommendations", ActionWrite, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.EnforceWithRoles(tt.subject, tt.roles, tt.object, tt.action)
			if err != nil {
				t.Fatalf("EnforceWithRoles() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("EnforceWithRoles(%s, %v, %s, %s) = %v, want %v", tt.subject, tt.roles, tt.object, tt.action, got, tt.want)
			}
		})
	}
}

func TestEnforcer_PolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.csv")
	policy := "p, operator, /api/v1/index/*, write\ng, alice, operator\n"
	if err := os.WriteFile(path, []byte(policy), 0o600); err != nil {
		t.Fatal(err)
	}
	e := setupEnforcer(t, EnforcerConfig{PolicyPath: path})

	allowed, err := e.EnforceWithRoles("alice", nil, "/api/v1/index/rebuild", ActionWrite)
	if err != nil || !allowed {
		t.Errorf("alice via grouping = %v, %v, want allowed", allowed, err)
	}
	allowed, err = e.EnforceWithRoles("ops", []string{"admin"}, "/api/v1/index/rebuild", ActionWrite)
	if err != nil || allowed {
		t.Errorf("admin without file policy = %v, %v, want denied", allowed, err)
	}
}

func TestNewEnforcer_MissingPolicyFile(t *testing.T) {
	if _, err := NewEnforcer(EnforcerConfig{PolicyPath: filepath.Join(t.TempDir(), "absent.csv")}); err == nil {
		t.Error("expected error for missing policy file")
	}
}

func TestActionForMethod(t *testing.T) {
	tests := map[string]string{
		http.MethodGet:    ActionRead,
		http.MethodHead:   ActionRead,
		http.MethodPost:   ActionWrite,
		http.MethodPut:    ActionWrite,
		http.MethodPatch:  ActionWrite,
		http.MethodDelete: ActionDelete,
	}
	for method, want := range tests {
		if got := ActionForMethod(method); got != want {
			t.Errorf("ActionForMethod(%s) = %s, want %s", method, got, want)
		}
	}
}
