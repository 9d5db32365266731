package policy

import (
	"time"

	"go.uber.org/zap"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/models"
)

// Ensure Policy implements interfaces.FreshnessPolicy
var _ interfaces.FreshnessPolicy = (*Policy)(nil)

// Defaults applied when the configuration leaves a value unset.
const (
	DefaultShortTTL       = 5 * time.Minute
	DefaultLongTTL        = 6 * time.Hour
	DefaultPermanentTTL   = 7 * 24 * time.Hour
	DefaultNegativeTTL    = 60 * time.Second
	DefaultHardMultiplier = 10
)

// Config carries the TTL tables the policy evaluates against.
type Config struct {
	// ClassTTL maps each TTL class to its freshness window.
	ClassTTL map[models.TTLClass]time.Duration

	// NegativeTTL is the freshness window for negative entries. It is clamped
	// to half the positive window of the entry's class, so "not found" results
	// always age out strictly faster than real data.
	NegativeTTL time.Duration

	// HardMultiplier scales the freshness window into the hard expiry that
	// bounds storage growth.
	HardMultiplier int

	// Rules maps endpoints to TTL classes. Endpoints not listed fall back to
	// the short class.
	Rules map[models.Endpoint]models.TTLClass
}

// Policy decides whether cached entries satisfy a requested freshness level.
// Evaluation is a pure function of entry age, TTL class, and level; all state
// is fixed at construction.
type Policy struct {
	classTTL       map[models.TTLClass]time.Duration
	negativeTTL    time.Duration
	hardMultiplier int
	rules          map[models.Endpoint]models.TTLClass
	logger         *zap.Logger
}

// New creates a Policy, filling unset config values with defaults.
func New(cfg Config, logger *zap.Logger) *Policy {
	classTTL := map[models.TTLClass]time.Duration{
		models.TTLClassShort:     DefaultShortTTL,
		models.TTLClassLong:      DefaultLongTTL,
		models.TTLClassPermanent: DefaultPermanentTTL,
	}
	for class, ttl := range cfg.ClassTTL {
		if ttl > 0 {
			classTTL[class] = ttl
		}
	}

	negativeTTL := cfg.NegativeTTL
	if negativeTTL <= 0 {
		negativeTTL = DefaultNegativeTTL
	}

	hardMultiplier := cfg.HardMultiplier
	if hardMultiplier <= 0 {
		hardMultiplier = DefaultHardMultiplier
	}

	rules := make(map[models.Endpoint]models.TTLClass, len(cfg.Rules))
	for endpoint, class := range cfg.Rules {
		rules[endpoint] = class
	}

	return &Policy{
		classTTL:       classTTL,
		negativeTTL:    negativeTTL,
		hardMultiplier: hardMultiplier,
		rules:          rules,
		logger:         logger,
	}
}

// DefaultRules maps the known endpoints to their TTL classes: volatile lists
// are short, repository and user metadata long, org membership permanent.
func DefaultRules() map[models.Endpoint]models.TTLClass {
	return map[models.Endpoint]models.TTLClass{
		models.EndpointIssuesList: models.TTLClassShort,
		models.EndpointPullsList:  models.TTLClassShort,
		models.EndpointRepoGet:    models.TTLClassLong,
		models.EndpointRepoList:   models.TTLClassLong,
		models.EndpointUserGet:    models.TTLClassLong,
		models.EndpointOrgsList:   models.TTLClassPermanent,
	}
}

// IsFresh reports whether entry satisfies the requested freshness level at
// time now. force-refresh never accepts a cached entry; cached-ok accepts any
// positive entry not past hard expiry; fresh requires the entry's age to be
// within its class window. Negative entries must be within their (shorter)
// negative window at every level, so a cached "not found" never outlives the
// window no matter how tolerant the caller is.
func (p *Policy) IsFresh(entry *models.CacheEntry, level models.FreshnessLevel, now time.Time) bool {
	if entry == nil {
		return false
	}

	switch level {
	case models.FreshnessForceRefresh:
		return false
	case models.FreshnessCachedOK:
		if entry.Negative {
			return entry.Age(now) < p.window(entry)
		}
		return !entry.IsExpired(now)
	default:
		return entry.Age(now) < p.window(entry)
	}
}

// ClassFor maps an endpoint to its TTL class, defaulting to short for
// endpoints without an explicit rule.
func (p *Policy) ClassFor(endpoint models.Endpoint) models.TTLClass {
	if class, ok := p.rules[endpoint]; ok {
		return class
	}
	p.logger.Debug("No TTL rule for endpoint, defaulting to short", zap.String("endpoint", string(endpoint)))
	return models.TTLClassShort
}

// HardExpiry returns how long entries of the class may be kept at all.
func (p *Policy) HardExpiry(class models.TTLClass) time.Duration {
	return p.classWindow(class) * time.Duration(p.hardMultiplier)
}

// NegativeHardExpiry returns how long negative entries of the class may be
// kept. It scales the (clamped) negative window, not the class window, so a
// stale "not found" under cached-ok ages out on the order of minutes instead
// of masking a newly created resource for hours.
func (p *Policy) NegativeHardExpiry(class models.TTLClass) time.Duration {
	negative := p.negativeTTL
	if half := p.classWindow(class) / 2; negative > half {
		negative = half
	}
	return negative * time.Duration(p.hardMultiplier)
}

// window returns the freshness window for an entry, shortened for negative
// entries.
func (p *Policy) window(entry *models.CacheEntry) time.Duration {
	positive := p.classWindow(entry.Class)
	if !entry.Negative {
		return positive
	}

	negative := p.negativeTTL
	if half := positive / 2; negative > half {
		negative = half
	}
	return negative
}

func (p *Policy) classWindow(class models.TTLClass) time.Duration {
	if ttl, ok := p.classTTL[class]; ok {
		return ttl
	}
	return p.classTTL[models.TTLClassShort]
}
