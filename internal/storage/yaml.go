package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Veraticus/suitwatch/internal/common"
	"github.com/Veraticus/suitwatch/internal/model"
	"gopkg.in/yaml.v3"
)

// yamlDocument is the on-disk layout of the flat-file store.
type yamlDocument struct {
	Settings map[string]string    `yaml:"settings,omitempty"`
	Results  []model.ResultRecord `yaml:"results"`
}

// YAMLStorage implements service.Storage on a single YAML file.
// Every operation loads the file, mutates it and writes it back.
type YAMLStorage struct {
	path string
	mu   sync.Mutex
}

// NewYAMLStorage creates a flat-file store at path. The file is created on Migrate.
func NewYAMLStorage(path string) (*YAMLStorage, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &YAMLStorage{path: path}, nil
}

// Path returns the backing file path.
func (s *YAMLStorage) Path() string {
	return s.path
}

// Migrate creates the backing file when it does not exist yet.
func (s *YAMLStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		_, loadErr := s.load()
		return loadErr
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", s.path, err)
	}
	return s.save(&yamlDocument{Results: []model.ResultRecord{}})
}

// Close is a no-op; the file is not held open between operations.
func (s *YAMLStorage) Close() error {
	return nil
}

// ListAll returns every stored round in insertion order.
func (s *YAMLStorage) ListAll(ctx context.Context) ([]model.ResultRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]model.ResultRecord, len(doc.Results))
	copy(out, doc.Results)
	return out, nil
}

// Append stores a new round, rejecting a round number that is already present.
func (s *YAMLStorage) Append(ctx context.Context, record model.ResultRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	for _, existing := range doc.Results {
		if existing.RoundNumber == record.RoundNumber {
			return fmt.Errorf("%w: round %d", common.ErrDuplicateEntry, record.RoundNumber)
		}
	}
	doc.Results = append(doc.Results, record)
	return s.save(doc)
}

// Clear removes every stored round. Settings are kept.
func (s *YAMLStorage) Clear(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Results = []model.ResultRecord{}
	return s.save(doc)
}

// GetSetting returns a runtime setting.
func (s *YAMLStorage) GetSetting(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	if err := validateString(key, "key"); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := doc.Settings[key]
	return value, ok, nil
}

// SetSetting stores or replaces a runtime setting.
func (s *YAMLStorage) SetSetting(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if doc.Settings == nil {
		doc.Settings = make(map[string]string)
	}
	doc.Settings[key] = value
	return s.save(doc)
}

func (s *YAMLStorage) load() (*yamlDocument, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return &yamlDocument{Results: []model.ResultRecord{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", common.ErrDatabaseCorrupted, s.path, err)
	}
	if doc.Results == nil {
		doc.Results = []model.ResultRecord{}
	}
	return &doc, nil
}

// save writes to a sibling temp file and renames it over the original.
func (s *YAMLStorage) save(doc *yamlDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".results-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
