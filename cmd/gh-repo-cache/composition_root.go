package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"gh-repo-cache/internal/actions"
	"gh-repo-cache/internal/config"
	"gh-repo-cache/internal/fetcher"
	"gh-repo-cache/internal/gitclient"
	"gh-repo-cache/internal/httpserver"
	"gh-repo-cache/internal/interfaces"
	"gh-repo-cache/internal/keycodec"
	"gh-repo-cache/internal/metrics"
	"gh-repo-cache/internal/offline"
	"gh-repo-cache/internal/orchestrator"
	"gh-repo-cache/internal/policy"
	"gh-repo-cache/internal/scheduler"
	"gh-repo-cache/internal/store/l1"
	"gh-repo-cache/internal/store/l2"
	"gh-repo-cache/internal/store/multi"
	"gh-repo-cache/internal/store/noop"
)

// CompositionRoot holds all application dependencies and provides a centralized
// place for dependency injection and service initialization.
type CompositionRoot struct {
	// Configuration
	Config *config.Config
	Logger *zap.Logger

	// Cache components
	L1Store  interfaces.Store
	L2Store  interfaces.Store
	Store    interfaces.Store
	KeyCodec interfaces.KeyCodec
	Policy   interfaces.FreshnessPolicy
	Gate     *offline.Gate

	// Services
	Fetcher       *fetcher.GitHubClient
	Orchestrator  *orchestrator.Orchestrator
	Actions       *actions.Actions
	HTTPServer    *httpserver.Server
	MetricsServer *httpserver.MetricsServer
	Sweeper       *scheduler.Scheduler
}

// NewCompositionRoot creates and initializes all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Cache components (stores, key codec, freshness policy, offline gate)
// 4. Services (fetcher, orchestrator, actions)
// 5. HTTP and metrics servers, sweep scheduler
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := root.initCacheComponents(); err != nil {
		return nil, fmt.Errorf("failed to initialize cache components: %w", err)
	}

	root.initServices()
	root.initServers()

	return root, nil
}

// initLogger initializes the application logger
func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

// loadConfig loads the application configuration
func (r *CompositionRoot) loadConfig() error {
	configPath := os.Getenv("REPO_CACHE_CONFIG_FILE")
	if configPath == "" {
		configPath = "/etc/gh-repo-cache/config.yaml"
	}

	cfg, err := config.LoadConfig(configPath, r.Logger)
	if err != nil {
		return err
	}

	r.Config = cfg
	return nil
}

// initCacheComponents initializes the store tiers, key codec, freshness
// policy, and offline gate
func (r *CompositionRoot) initCacheComponents() error {
	if err := r.initL1Store(); err != nil {
		return fmt.Errorf("failed to initialize L1 store: %w", err)
	}
	r.initL2Store()

	r.Store = multi.New(
		[]interfaces.Store{r.L1Store, r.L2Store},
		[]string{"l1", "l2"},
		r.Logger,
	)

	r.KeyCodec = keycodec.NewCodec()

	rules := policy.DefaultRules()
	for endpoint, class := range r.Config.Rules {
		rules[endpoint] = class
	}
	r.Policy = policy.New(policy.Config{
		ClassTTL:       r.Config.ClassTTLs(),
		NegativeTTL:    r.Config.GetNegativeTTL(),
		HardMultiplier: r.Config.TTL.HardMultiplier,
		Rules:          rules,
	}, r.Logger)

	r.Gate = offline.NewGate(r.Logger)

	return nil
}

// initL1Store initializes the in-memory tier (BigCache)
func (r *CompositionRoot) initL1Store() error {
	if !r.Config.L1.Enabled {
		r.L1Store = noop.New()
		r.Logger.Info("BigCache (L1) disabled")
		return nil
	}

	store, err := l1.New(l1.Config{
		SizeMB:     r.Config.L1.Size,
		LifeWindow: r.Config.GetL1LifeWindow(),
	}, r.Logger)
	if err != nil {
		return err
	}

	r.L1Store = store
	r.Logger.Info("BigCache (L1) initialized", zap.Int("size_mb", r.Config.L1.Size))
	return nil
}

// initL2Store initializes the durable tier (Redis). An unreachable backend
// degrades to memory-only operation instead of failing startup.
func (r *CompositionRoot) initL2Store() {
	if !r.Config.L2.Enabled {
		r.L2Store = noop.New()
		r.Logger.Info("Redis (L2) disabled")
		return
	}

	client, err := l2.NewRedisClient(r.Config.L2.URL, r.Config.GetL2ReadTimeout(), r.Logger)
	if err != nil {
		r.Logger.Warn("Failed to connect to Redis, falling back to memory-only operation",
			zap.String("url", r.Config.L2.URL),
			zap.Error(err))
		r.L2Store = noop.New()
		return
	}

	r.L2Store = l2.New(l2.Config{
		ReadTimeout:  r.Config.GetL2ReadTimeout(),
		WriteTimeout: r.Config.GetL2WriteTimeout(),
		ScanCount:    r.Config.L2.ScanCount,
	}, client, r.Logger)
	r.Logger.Info("Redis (L2) initialized", zap.String("url", r.Config.L2.URL))
}

// initServices initializes the fetcher, orchestrator, and action layer
func (r *CompositionRoot) initServices() {
	r.Fetcher = fetcher.New(r.Config.GitHub.Token, r.Logger)

	r.Orchestrator = orchestrator.New(
		r.Store,
		r.KeyCodec,
		r.Policy,
		r.Gate,
		r.Fetcher,
		r.Logger,
	)

	r.Actions = actions.New(
		r.Orchestrator,
		r.Fetcher,
		gitclient.New(r.Logger),
		newEnvDecisionProvider(r.Logger),
		r.Config.GitHub.Identity,
		r.Logger,
	)
}

// initServers initializes the HTTP server, metrics server, and sweep scheduler
func (r *CompositionRoot) initServers() {
	r.HTTPServer = httpserver.NewServer(r.Orchestrator, r.Actions, r.Config.GitHub.Identity, r.Logger)
	r.MetricsServer = httpserver.NewMetricsServer(r.Logger)

	r.Sweeper = scheduler.New(r.Config.GetSweepInterval(), func() {
		removed := r.Orchestrator.Sweep()
		if removed > 0 {
			r.Logger.Info("Swept hard-expired cache entries", zap.Int("removed", removed))
		}
		if bigCacheStore, ok := r.L1Store.(*l1.BigCacheStore); ok {
			metrics.UpdateL1Capacity(int64(bigCacheStore.Capacity()))
			metrics.UpdateCacheKeys("l1", int64(bigCacheStore.Len()))
		}
	})
}

// Cleanup performs cleanup of all resources
func (r *CompositionRoot) Cleanup() error {
	var errors []error

	// Sync logger
	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errors = append(errors, fmt.Errorf("failed to sync logger: %w", err))
		}
	}

	// Close L1 store
	if bigCacheStore, ok := r.L1Store.(*l1.BigCacheStore); ok {
		if err := bigCacheStore.Close(); err != nil {
			errors = append(errors, fmt.Errorf("failed to close L1 store: %w", err))
		}
	}

	// Close L2 store
	if redisStore, ok := r.L2Store.(*l2.RedisStore); ok {
		if err := redisStore.Close(); err != nil {
			errors = append(errors, fmt.Errorf("failed to close L2 store: %w", err))
		}
	}

	// Return first error if any
	if len(errors) > 0 {
		return errors[0]
	}

	return nil
}
