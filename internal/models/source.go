package models

import "strings"

// SourceRecord is one exported row keyed by column name.
type SourceRecord map[string]string

// Get returns the trimmed value of key, or "" when absent.
func (r SourceRecord) Get(key string) string {
	return strings.TrimSpace(r[key])
}

func (r SourceRecord) GetOr(key, def string) string {
	if v := r.Get(key); v != "" {
		return v
	}
	return def
}

func (r SourceRecord) Has(key string) bool {
	return r.Get(key) != ""
}

// Bool reads common truthy spellings; anything else is false.
func (r SourceRecord) Bool(key string) bool {
	switch strings.ToLower(r.Get(key)) {
	case "true", "t", "1", "y", "yes":
		return true
	default:
		return false
	}
}

// Merge returns a new record with other's non-empty values layered over r.
func (r SourceRecord) Merge(other SourceRecord) SourceRecord {
	merged := make(SourceRecord, len(r)+len(other))
	for k, v := range r {
		merged[k] = v
	}
	for k, v := range other {
		if strings.TrimSpace(v) != "" {
			merged[k] = v
		}
	}
	return merged
}
