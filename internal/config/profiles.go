package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes one target API: where it lives and how to talk to it.
type Profile struct {
	Name           string            `json:"name" yaml:"name"`
	BaseURL        string            `json:"base_url" yaml:"base_url"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int64             `json:"timeout_seconds" yaml:"timeout_seconds"`
}

type profilesFile struct {
	Profiles []Profile `json:"profiles" yaml:"profiles"`
}

// LoadProfiles loads the API profiles registry from a YAML or JSON file.
func LoadProfiles(path string) ([]Profile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("profiles file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles file: %w", err)
	}

	reg, err := parseProfiles(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(reg.Profiles))
	for i := range reg.Profiles {
		p := sanitizeProfile(reg.Profiles[i])
		if err := validateProfile(p); err != nil {
			return nil, fmt.Errorf("profile[%d]: %w", i, err)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate profile name %q", p.Name)
		}
		seen[p.Name] = true
		reg.Profiles[i] = p
	}

	return reg.Profiles, nil
}

// ProfileByName returns the named profile from the loaded set.
func ProfileByName(profiles []Profile, name string) (Profile, bool) {
	name = strings.TrimSpace(name)
	for _, p := range profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

func parseProfiles(data []byte, ext string) (profilesFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg profilesFile
		if err := d.fn(data, &reg); err != nil {
			return profilesFile{}, fmt.Errorf("decode %s profiles: %w", d.name, err)
		}
		return reg, nil
	}

	return profilesFile{}, errors.New("profiles file format not recognized (expected YAML or JSON)")
}

func sanitizeProfile(p Profile) Profile {
	p.Name = strings.TrimSpace(p.Name)
	p.BaseURL = strings.TrimSpace(strings.TrimRight(p.BaseURL, "/"))
	if p.Headers == nil {
		p.Headers = map[string]string{}
	}
	return p
}

func validateProfile(p Profile) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.BaseURL == "" {
		return fmt.Errorf("base_url is required for profile %q", p.Name)
	}
	return nil
}
