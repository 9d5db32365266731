package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/metrics"
	"gh-repo-cache/internal/models"
)

// Result is the outcome of a cache request.
type Result struct {
	Value   []byte `json:"value,omitempty"`
	Key     string `json:"key"`
	Stale   bool   `json:"stale,omitempty"`   // served past its freshness window
	Fetched bool   `json:"fetched,omitempty"` // value came from the network this call
}

// Orchestrator is the sole entry point for data reads. It resolves a logical
// request to a key, consults the freshness policy and the offline gate, and
// either serves from the store or refreshes through the fetcher with
// at-most-one-in-flight-refresh-per-key semantics.
type Orchestrator struct {
	store   interfaces.Store
	codec   interfaces.KeyCodec
	policy  interfaces.FreshnessPolicy
	gate    OfflineGate
	fetcher interfaces.Fetcher
	flight  singleflight.Group
	logger  *zap.Logger
	now     func() time.Time
}

// OfflineGate is the orchestrator's view of the process-wide offline toggle.
type OfflineGate interface {
	IsOffline() bool
	SetOffline(bool)
}

// New wires an Orchestrator from its collaborators.
func New(store interfaces.Store, codec interfaces.KeyCodec, policy interfaces.FreshnessPolicy, gate OfflineGate, fetcher interfaces.Fetcher, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		store:   store,
		codec:   codec,
		policy:  policy,
		gate:    gate,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Request serves a logical request at the requested freshness level.
//
// Offline mode serves the best available entry, flagged stale when past its
// window, and never touches the network. Online, a fresh entry is returned
// directly; otherwise a refresh runs, deduplicated per key so concurrent
// callers share one fetch. A transient fetch failure never overwrites a
// present entry: the stale value is served flagged instead. Not-found results
// are cached negatively; unexpected failures propagate uncached.
func (o *Orchestrator) Request(ctx context.Context, req models.LogicalRequest, level models.FreshnessLevel) (*Result, error) {
	key := o.codec.Encode(req)
	class := o.policy.ClassFor(req.Endpoint)
	metrics.RecordCacheRequest(string(class))

	entry, found := o.store.Get(key)

	if o.gate.IsOffline() {
		if !found {
			return nil, models.NewFailure(models.FailureUnavailable,
				fmt.Errorf("offline and no cached entry for %s", req.Endpoint))
		}
		metrics.RecordOfflineServed()
		if entry.Negative {
			return nil, models.NotFoundFailure(string(req.Endpoint))
		}
		return &Result{
			Value: entry.Data,
			Key:   key,
			Stale: !o.policy.IsFresh(entry, models.FreshnessFresh, o.now()),
		}, nil
	}

	if found && o.policy.IsFresh(entry, level, o.now()) {
		metrics.RecordCacheHit(string(class), "store")
		if entry.Negative {
			return nil, models.NotFoundFailure(string(req.Endpoint))
		}
		return &Result{Value: entry.Data, Key: key}, nil
	}
	metrics.RecordCacheMiss(string(class))

	// Uncached endpoints still share one in-flight fetch per key; the result
	// just never reaches the store.
	if class == models.TTLClassNone {
		fetchCtx := context.WithoutCancel(ctx)
		val, err, shared := o.flight.Do(key, func() (interface{}, error) {
			metrics.RecordFetch(string(req.Endpoint))
			data, fetchErr := o.fetcher.Fetch(fetchCtx, req)
			if fetchErr != nil {
				ferr := classified(fetchErr)
				metrics.RecordFetchFailure(string(req.Endpoint), string(models.KindOf(ferr)))
				return nil, ferr
			}
			return data, nil
		})
		if shared {
			metrics.RecordRefreshDeduplicated()
		}
		if err != nil {
			return nil, err
		}
		return &Result{Value: val.([]byte), Key: key, Fetched: true}, nil
	}

	// The fetch outlives an abandoning caller: it completes and populates the
	// store for the next request, so waiters joined via singleflight are not
	// failed by the first caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	value, err, shared := o.flight.Do(key, func() (interface{}, error) {
		return o.refresh(fetchCtx, req, key, class)
	})
	if shared {
		metrics.RecordRefreshDeduplicated()
	}

	if err != nil {
		if models.IsKind(err, models.FailureTransient) && found && !entry.Negative {
			metrics.RecordStaleServed()
			o.logger.Warn("Fetch failed, serving stale entry",
				zap.String("key", key), zap.Error(err))
			return &Result{Value: entry.Data, Key: key, Stale: true}, nil
		}
		return nil, err
	}

	return &Result{Value: value.([]byte), Key: key, Fetched: true}, nil
}

// Invalidate removes a single key from the store.
func (o *Orchestrator) Invalidate(key string) {
	o.store.Invalidate(key)
}

// InvalidatePrefix removes every key with the given prefix, for coarse
// invalidation after a mutating action changed server state.
func (o *Orchestrator) InvalidatePrefix(prefix string) {
	o.store.InvalidatePrefix(prefix)
}

// SetOffline toggles offline mode.
func (o *Orchestrator) SetOffline(offline bool) {
	o.gate.SetOffline(offline)
}

// IsOffline reports the offline state.
func (o *Orchestrator) IsOffline() bool {
	return o.gate.IsOffline()
}

// Sweep removes entries past hard expiry from the store.
func (o *Orchestrator) Sweep() int {
	return o.store.Sweep(o.now())
}

// refresh performs the single network attempt for a key and records the
// outcome in the store. Successful fetches always overwrite prior entries,
// including negative ones; not-found results are stored as negative entries;
// transient and unexpected failures leave the store untouched.
func (o *Orchestrator) refresh(ctx context.Context, req models.LogicalRequest, key string, class models.TTLClass) ([]byte, error) {
	metrics.RecordFetch(string(req.Endpoint))

	val, err := o.fetcher.Fetch(ctx, req)
	if err == nil {
		o.store.Put(key, val, class, false, o.policy.HardExpiry(class))
		return val, nil
	}

	ferr := classified(err)
	kind := models.KindOf(ferr)
	metrics.RecordFetchFailure(string(req.Endpoint), string(kind))

	if kind == models.FailureNotFound {
		o.store.Put(key, nil, class, true, o.policy.NegativeHardExpiry(class))
	}
	return nil, ferr
}

// classified ensures every error leaving the orchestrator carries a failure
// kind; fetcher errors without one count as unexpected.
func classified(err error) error {
	var f *models.Failure
	if errors.As(err, &f) {
		return err
	}
	return models.NewFailure(models.FailureUnexpected, err)
}
