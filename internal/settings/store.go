// Package settings provides the key-value settings collaborator. Anomaly
// thresholds are keyed "anomaly.<rule>.<param>"; missing or non-numeric
// values fall back to hard-coded defaults at resolution time.
package settings

import "context"

// Store reads raw setting values. Implementations return ok=false for keys
// they do not hold; the caller applies defaults.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
}

// StaticStore is a fixed in-memory store, used in tests and as the empty
// default when no backend is configured.
type StaticStore map[string]string

func (s StaticStore) Get(_ context.Context, key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}
