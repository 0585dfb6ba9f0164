// Package rules persists the free-text commit policies injected into prompts.
package rules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyRule    = errors.New("rule is empty")
	ErrRuleNotFound = errors.New("rule not found")
)

// Store is an ordered list of rules.
type Store interface {
	List() ([]string, error)
	Add(rule string) error
	Remove(index int) (string, error)
	Clear() error
}

// FileStore keeps the rules in a YAML file. A missing file is an empty list.
type FileStore struct {
	Path string
}

type document struct {
	Rules []string `yaml:"rules"`
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// DefaultPath is $HOME/.config/go-commitsuggest/rules.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "go-commitsuggest", "rules.yaml")
}

func (s *FileStore) List() ([]string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", s.Path, err)
	}

	out := doc.Rules[:0]
	for _, r := range doc.Rules {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// Add appends rule. Adding a rule already present, ignoring case, is a no-op.
func (s *FileStore) Add(rule string) error {
	rule = strings.TrimSpace(rule)
	if rule == "" {
		return ErrEmptyRule
	}
	current, err := s.List()
	if err != nil {
		return err
	}
	for _, r := range current {
		if strings.EqualFold(r, rule) {
			return nil
		}
	}
	return s.write(append(current, rule))
}

// Remove deletes the rule at the zero-based index and returns it.
func (s *FileStore) Remove(index int) (string, error) {
	current, err := s.List()
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(current) {
		return "", fmt.Errorf("%w: index %d of %d", ErrRuleNotFound, index+1, len(current))
	}
	removed := current[index]
	return removed, s.write(append(current[:index], current[index+1:]...))
}

func (s *FileStore) Clear() error {
	return s.write(nil)
}

func (s *FileStore) write(list []string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("create rules dir: %w", err)
	}
	data, err := yaml.Marshal(document{Rules: list})
	if err != nil {
		return fmt.Errorf("encode rules: %w", err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write rules: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace rules: %w", err)
	}
	return nil
}
