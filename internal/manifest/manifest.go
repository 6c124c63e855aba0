// Package manifest loads and validates flux.json project manifests.
//
// A manifest names the project, pins its own version, and may carry a
// language constraint that gates which toolchain revisions can build it.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	semver "github.com/Masterminds/semver/v3"
)

const (
	// Filename is the manifest file looked up at the project root.
	Filename = "flux.json"

	// LanguageVersion is the language revision this toolchain implements,
	// matched against manifest `language` constraints.
	LanguageVersion = "0.4.0"
)

// ErrNotFound reports that no manifest exists between a directory and the
// filesystem root.
var ErrNotFound = errors.New("no " + Filename + " manifest found")

// Manifest is the parsed contents of a flux.json file.
type Manifest struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Language string `json:"language,omitempty"`
	Entry    string `json:"entry,omitempty"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &m, nil
}

// Find walks from dir toward the filesystem root and returns the path of
// the first manifest it sees. ErrNotFound is wrapped when none exists.
func Find(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(abs, Filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("searched upward from %s: %w", dir, ErrNotFound)
		}
		abs = parent
	}
}

// Validate checks structural requirements: a non-empty name, a semver
// project version, and a parseable language constraint when present.
func (m *Manifest) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("manifest name is required")
	}
	if m.Version == "" {
		return errors.New("manifest version is required")
	}
	if _, err := semver.NewVersion(m.Version); err != nil {
		return fmt.Errorf("version %q: %w", m.Version, err)
	}
	if m.Language != "" {
		if _, err := semver.NewConstraint(m.Language); err != nil {
			return fmt.Errorf("language constraint %q: %w", m.Language, err)
		}
	}
	return nil
}

// Check gates the manifest against a toolchain language version. A
// manifest without a language constraint accepts every toolchain.
func (m *Manifest) Check(toolchain string) error {
	if m.Language == "" {
		return nil
	}
	c, err := semver.NewConstraint(m.Language)
	if err != nil {
		return fmt.Errorf("language constraint %q: %w", m.Language, err)
	}
	v, err := semver.NewVersion(toolchain)
	if err != nil {
		return fmt.Errorf("toolchain version %q: %w", toolchain, err)
	}
	if ok, errs := c.Validate(v); !ok {
		parts := make([]string, len(errs))
		for i, e := range errs {
			parts[i] = e.Error()
		}
		return fmt.Errorf("language %s does not satisfy %q: %s", toolchain, m.Language, strings.Join(parts, "; "))
	}
	return nil
}

// Save writes the manifest as indented JSON.
func (m *Manifest) Save(path string) error {
	if err := m.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
