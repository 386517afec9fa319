package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfiles(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write profiles file: %v", err)
	}
	return file
}

func TestLoadProfilesYAML(t *testing.T) {
	file := writeProfiles(t, "profiles.yaml", `
profiles:
  - name: blog
    base_url: https://api.example.com/v1/
    timeout_seconds: 10
    headers:
      Authorization: Bearer token
`)

	profiles, err := LoadProfiles(file)
	if err != nil {
		t.Fatalf("LoadProfiles returned error: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}

	p, ok := ProfileByName(profiles, "blog")
	if !ok {
		t.Fatalf("expected profile blog to be loaded")
	}
	if p.BaseURL != "https://api.example.com/v1" {
		t.Fatalf("unexpected base_url: %s (trailing slash must be trimmed)", p.BaseURL)
	}
	if p.Headers["Authorization"] != "Bearer token" {
		t.Fatalf("unexpected headers: %v", p.Headers)
	}
	if p.TimeoutSeconds != 10 {
		t.Fatalf("unexpected timeout_seconds: %d", p.TimeoutSeconds)
	}
}

func TestLoadProfilesJSON(t *testing.T) {
	file := writeProfiles(t, "profiles.json",
		`{"profiles":[{"name":"blog","base_url":"https://api.example.com"}]}`)

	profiles, err := LoadProfiles(file)
	if err != nil {
		t.Fatalf("LoadProfiles returned error: %v", err)
	}
	if _, ok := ProfileByName(profiles, "blog"); !ok {
		t.Fatalf("expected profile blog to be loaded")
	}
}

func TestLoadProfilesRejectsDuplicates(t *testing.T) {
	file := writeProfiles(t, "profiles.yaml", `
profiles:
  - name: blog
    base_url: https://one.example.com
  - name: blog
    base_url: https://two.example.com
`)

	if _, err := LoadProfiles(file); err == nil {
		t.Fatal("expected error for duplicate profile names")
	}
}

func TestLoadProfilesRequiresBaseURL(t *testing.T) {
	file := writeProfiles(t, "profiles.yaml", `
profiles:
  - name: blog
`)

	if _, err := LoadProfiles(file); err == nil {
		t.Fatal("expected error for missing base_url")
	}
}

func TestProfileByNameMiss(t *testing.T) {
	if _, ok := ProfileByName(nil, "missing"); ok {
		t.Fatal("expected miss on empty profile set")
	}
}
