package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"gh-repo-cache/internal/models"
)

func newTestPolicy() *Policy {
	return New(Config{
		ClassTTL: map[models.TTLClass]time.Duration{
			models.TTLClassShort:     time.Hour,
			models.TTLClassLong:      24 * time.Hour,
			models.TTLClassPermanent: 30 * 24 * time.Hour,
		},
		NegativeTTL:    60 * time.Second,
		HardMultiplier: 10,
		Rules:          DefaultRules(),
	}, zap.NewNop())
}

func entryAged(age time.Duration, class models.TTLClass, negative bool, now time.Time) *models.CacheEntry {
	created := now.Add(-age)
	return &models.CacheEntry{
		Data:      []byte("payload"),
		Class:     class,
		Negative:  negative,
		CreatedAt: created.Unix(),
		ExpiresAt: created.Add(10 * 365 * 24 * time.Hour).Unix(),
	}
}

func TestPolicy_IsFresh_ForceRefreshNeverFresh(t *testing.T) {
	p := newTestPolicy()
	now := time.Now()

	ages := []time.Duration{0, time.Second, time.Hour, 100 * 24 * time.Hour}
	for _, age := range ages {
		entry := entryAged(age, models.TTLClassPermanent, false, now)
		assert.False(t, p.IsFresh(entry, models.FreshnessForceRefresh, now), "age %v", age)
	}
}

func TestPolicy_IsFresh_FreshLevel(t *testing.T) {
	p := newTestPolicy()
	now := time.Now()

	tests := []struct {
		name  string
		age   time.Duration
		class models.TTLClass
		want  bool
	}{
		{"short within window", 30 * time.Minute, models.TTLClassShort, true},
		{"short past window", 2 * time.Hour, models.TTLClassShort, false},
		{"long within window", 12 * time.Hour, models.TTLClassLong, true},
		{"long past window", 25 * time.Hour, models.TTLClassLong, false},
		{"permanent within window", 20 * 24 * time.Hour, models.TTLClassPermanent, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := entryAged(tt.age, tt.class, false, now)
			assert.Equal(t, tt.want, p.IsFresh(entry, models.FreshnessFresh, now))
		})
	}
}

func TestPolicy_IsFresh_NegativeWindowShorter(t *testing.T) {
	p := newTestPolicy()
	now := time.Now()

	// 30s old negative entry is inside the 60s negative window.
	fresh := entryAged(30*time.Second, models.TTLClassShort, true, now)
	assert.True(t, p.IsFresh(fresh, models.FreshnessFresh, now))

	// 2m old negative entry is past the negative window even though a
	// positive short entry of the same age would still be fresh.
	staleNegative := entryAged(2*time.Minute, models.TTLClassShort, true, now)
	assert.False(t, p.IsFresh(staleNegative, models.FreshnessFresh, now))

	samePositive := entryAged(2*time.Minute, models.TTLClassShort, false, now)
	assert.True(t, p.IsFresh(samePositive, models.FreshnessFresh, now))
}

func TestPolicy_IsFresh_NegativeWindowClampedToHalfClassWindow(t *testing.T) {
	p := New(Config{
		ClassTTL: map[models.TTLClass]time.Duration{
			models.TTLClassShort: 40 * time.Second,
		},
		NegativeTTL: 60 * time.Second,
	}, zap.NewNop())
	now := time.Now()

	// Configured negative TTL (60s) exceeds half the class window (20s), so
	// the clamp applies.
	entry := entryAged(30*time.Second, models.TTLClassShort, true, now)
	assert.False(t, p.IsFresh(entry, models.FreshnessFresh, now))

	young := entryAged(10*time.Second, models.TTLClassShort, true, now)
	assert.True(t, p.IsFresh(young, models.FreshnessFresh, now))
}

func TestPolicy_IsFresh_CachedOK(t *testing.T) {
	p := newTestPolicy()
	now := time.Now()

	// Far past the freshness window but not past hard expiry.
	stale := entryAged(9*time.Hour, models.TTLClassShort, false, now)
	assert.True(t, p.IsFresh(stale, models.FreshnessCachedOK, now))

	expired := entryAged(time.Hour, models.TTLClassShort, false, now)
	expired.ExpiresAt = now.Add(-time.Second).Unix()
	assert.False(t, p.IsFresh(expired, models.FreshnessCachedOK, now))
}

func TestPolicy_IsFresh_CachedOKNegativeBoundByWindow(t *testing.T) {
	p := newTestPolicy()
	now := time.Now()

	// Inside the 60s negative window: served even under cached-ok.
	young := entryAged(30*time.Second, models.TTLClassShort, true, now)
	assert.True(t, p.IsFresh(young, models.FreshnessCachedOK, now))

	// Past the negative window: cached-ok must not keep reporting "not found"
	// for a resource that may exist by now, hard expiry notwithstanding.
	aged := entryAged(10*time.Minute, models.TTLClassShort, true, now)
	assert.False(t, p.IsFresh(aged, models.FreshnessCachedOK, now))
}

func TestPolicy_IsFresh_NilEntry(t *testing.T) {
	p := newTestPolicy()
	assert.False(t, p.IsFresh(nil, models.FreshnessCachedOK, time.Now()))
}

func TestPolicy_ClassFor(t *testing.T) {
	p := newTestPolicy()

	assert.Equal(t, models.TTLClassShort, p.ClassFor(models.EndpointIssuesList))
	assert.Equal(t, models.TTLClassShort, p.ClassFor(models.EndpointPullsList))
	assert.Equal(t, models.TTLClassLong, p.ClassFor(models.EndpointRepoGet))
	assert.Equal(t, models.TTLClassPermanent, p.ClassFor(models.EndpointOrgsList))

	// Unknown endpoints fall back to short.
	assert.Equal(t, models.TTLClassShort, p.ClassFor(models.Endpoint("gists.list")))
}

func TestPolicy_HardExpiry(t *testing.T) {
	p := newTestPolicy()

	assert.Equal(t, 10*time.Hour, p.HardExpiry(models.TTLClassShort))
	assert.Equal(t, 240*time.Hour, p.HardExpiry(models.TTLClassLong))
}

func TestPolicy_NegativeHardExpiry(t *testing.T) {
	p := newTestPolicy()

	// Scaled from the 60s negative window, not the class window.
	assert.Equal(t, 10*time.Minute, p.NegativeHardExpiry(models.TTLClassShort))
	assert.Equal(t, 10*time.Minute, p.NegativeHardExpiry(models.TTLClassLong))

	// The half-class-window clamp carries over.
	clamped := New(Config{
		ClassTTL: map[models.TTLClass]time.Duration{
			models.TTLClassShort: 40 * time.Second,
		},
		NegativeTTL:    60 * time.Second,
		HardMultiplier: 10,
	}, zap.NewNop())
	assert.Equal(t, 200*time.Second, clamped.NegativeHardExpiry(models.TTLClassShort))
}

func TestPolicy_Defaults(t *testing.T) {
	p := New(Config{}, zap.NewNop())
	now := time.Now()

	entry := entryAged(time.Minute, models.TTLClassShort, false, now)
	assert.True(t, p.IsFresh(entry, models.FreshnessFresh, now))
	assert.Equal(t, DefaultShortTTL*DefaultHardMultiplier, p.HardExpiry(models.TTLClassShort))
}
