package interfaces

import (
	"time"

	"gh-repo-cache/internal/models"
)

// FreshnessPolicy decides whether a cached entry satisfies a requested
// freshness level. A pure function of entry age, TTL class, and level.
type FreshnessPolicy interface {
	IsFresh(entry *models.CacheEntry, level models.FreshnessLevel, now time.Time) bool

	// ClassFor maps an endpoint to its TTL class.
	ClassFor(endpoint models.Endpoint) models.TTLClass

	// HardExpiry returns how long entries of the class may be kept at all,
	// bounding storage growth well past the freshness window.
	HardExpiry(class models.TTLClass) time.Duration

	// NegativeHardExpiry returns how long negative entries of the class may be
	// kept. Scaled from the negative window rather than the class window, so a
	// cached "not found" cannot outlive the miss it records by hours.
	NegativeHardExpiry(class models.TTLClass) time.Duration
}
