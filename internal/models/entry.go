package models

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// TTLClass names a duration bucket controlling how long an entry is fresh.
type TTLClass string

const (
	TTLClassShort     TTLClass = "short"     // volatile lists: issues, pull requests
	TTLClassLong      TTLClass = "long"      // repository and user metadata
	TTLClassPermanent TTLClass = "permanent" // effectively immutable: org membership
	TTLClassNone      TTLClass = "none"      // never cached
)

// UnmarshalYAML implements custom YAML unmarshaling for TTLClass
func (c *TTLClass) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	switch str {
	case "short", "long", "permanent", "none":
		*c = TTLClass(str)
		return nil
	default:
		return fmt.Errorf("invalid ttl class '%s': must be one of 'short', 'long', 'permanent', 'none'", str)
	}
}

// FreshnessLevel is the caller-specified tolerance for staleness.
type FreshnessLevel string

const (
	FreshnessCachedOK     FreshnessLevel = "cached-ok"     // any entry not past hard expiry
	FreshnessFresh        FreshnessLevel = "fresh"         // entry age within its class window
	FreshnessForceRefresh FreshnessLevel = "force-refresh" // always refetch
)

// ParseFreshnessLevel validates a wire-level freshness string. An empty string
// defaults to "fresh".
func ParseFreshnessLevel(s string) (FreshnessLevel, error) {
	switch s {
	case "":
		return FreshnessFresh, nil
	case string(FreshnessCachedOK), string(FreshnessFresh), string(FreshnessForceRefresh):
		return FreshnessLevel(s), nil
	default:
		return "", fmt.Errorf("invalid freshness level '%s': must be one of 'cached-ok', 'fresh', 'force-refresh'", s)
	}
}

// CacheEntry is the stored record for a cache key. Entries are replaced
// wholesale on refresh, never partially updated.
type CacheEntry struct {
	Data      []byte   `json:"data,omitempty"`
	Class     TTLClass `json:"class"`
	Negative  bool     `json:"negative,omitempty"` // records "not found" rather than a value
	CreatedAt int64    `json:"created_at"`         // unix seconds
	ExpiresAt int64    `json:"expires_at"`         // hard expiry, unix seconds
}

// Age returns how long ago the entry was stored.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(e.CreatedAt, 0))
}

// IsExpired reports whether the entry is past its hard expiry and must be
// treated as absent.
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return now.Unix() >= e.ExpiresAt
}
