package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveDir is the root directory for saved profiles.
var SaveDir = ".saves"

var (
	// ErrNoProfile is returned when no saved profile exists under a name.
	ErrNoProfile = errors.New("no saved profile")
	// ErrInvalidProfileName is returned for names that would not map to a
	// single directory inside SaveDir.
	ErrInvalidProfileName = errors.New("invalid profile name")
)

// ValidProfileName reports whether name can be used as a profile directory:
// non-empty, no path separators and no "." or ".." components.
func ValidProfileName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && filepath.IsLocal(name) && name != "."
}

func profileDir(name string) (string, error) {
	if !ValidProfileName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidProfileName, name)
	}
	return filepath.Join(SaveDir, name), nil
}

// SaveProfile writes the profile and its game history under SaveDir/name.
func SaveProfile(name string, p *Profile, h *ProfileHistory) error {
	dir, err := profileDir(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	profileData, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "profile.yaml"), profileData, 0644); err != nil {
		return err
	}

	if h == nil {
		h = &ProfileHistory{}
	}
	historyData, err := yaml.Marshal(h)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "history.yaml"), historyData, 0644)
}

// LoadProfile reads a profile saved with SaveProfile.
// A missing history file yields an empty history.
func LoadProfile(name string) (*Profile, *ProfileHistory, error) {
	dir, err := profileDir(name)
	if err != nil {
		return nil, nil, err
	}

	profileData, err := os.ReadFile(filepath.Join(dir, "profile.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoProfile, name)
	}
	if err != nil {
		return nil, nil, err
	}
	var profile Profile
	if err := yaml.Unmarshal(profileData, &profile); err != nil {
		return nil, nil, fmt.Errorf("parse profile %s: %w", name, err)
	}

	history := &ProfileHistory{}
	historyData, err := os.ReadFile(filepath.Join(dir, "history.yaml"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, nil, err
	default:
		if err := yaml.Unmarshal(historyData, history); err != nil {
			return nil, nil, fmt.Errorf("parse history %s: %w", name, err)
		}
	}

	return &profile, history, nil
}

// ListProfiles returns the names of every saved profile.
func ListProfiles() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			// profile.yaml marks a valid save
			p := filepath.Join(SaveDir, entry.Name(), "profile.yaml")
			if _, err := os.Stat(p); err == nil {
				names = append(names, entry.Name())
			}
		}
	}
	return names, nil
}
