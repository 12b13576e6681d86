package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const (
	// ResearcherNameKey is the only key the name store persists.
	ResearcherNameKey = "researcherName"
	MaxNameLength     = 20

	profileFile = "profile.yaml"
)

var ErrInvalidName = errors.New("name must be 1 to 20 characters")

// NormalizeName trims a submitted name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// NameStore keeps the researcher name in a small YAML file under Dir.
type NameStore struct {
	Dir string
}

func NewNameStore(dir string) *NameStore {
	return &NameStore{Dir: dir}
}

func (s *NameStore) path() string {
	return filepath.Join(s.Dir, profileFile)
}

// Load returns the stored name; ok is false when none has been saved.
func (s *NameStore) Load() (name string, ok bool, err error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	var profile map[string]string
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return "", false, fmt.Errorf("parse %s: %w", profileFile, err)
	}
	name = strings.TrimSpace(profile[ResearcherNameKey])
	return name, name != "", nil
}

// Save normalizes and writes the name, returning the stored value.
func (s *NameStore) Save(name string) (string, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(map[string]string{ResearcherNameKey: name})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return "", err
	}
	return name, nil
}

// Clear forgets the stored name.
func (s *NameStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
