package settings

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileStore serves settings from a flat YAML file of key: value pairs,
// e.g. `anomaly.hard_search.burst_threshold: "4"`. Intended for local
// development where no redis is running.
type fileStore struct {
	values map[string]string
}

// NewFileStore loads a YAML settings file once at startup.
func NewFileStore(path string) (Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}
	var values map[string]string
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parse settings file %s: %w", path, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return &fileStore{values: values}, nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}
