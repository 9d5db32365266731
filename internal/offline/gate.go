package offline

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Gate is the process-wide offline toggle. While engaged, the orchestrator
// serves reads from the store regardless of freshness and never reaches the
// network. The gate is owned by the host process and injected, not ambient;
// it always starts online and is not persisted across restarts.
type Gate struct {
	offline atomic.Bool
	logger  *zap.Logger
}

// NewGate creates a Gate in the online state.
func NewGate(logger *zap.Logger) *Gate {
	return &Gate{logger: logger}
}

// IsOffline reports whether offline mode is engaged.
func (g *Gate) IsOffline() bool {
	return g.offline.Load()
}

// SetOffline toggles offline mode. Going back online does not trigger any
// proactive refresh; it only lifts the fetch prohibition for later requests.
func (g *Gate) SetOffline(offline bool) {
	previous := g.offline.Swap(offline)
	if previous != offline {
		g.logger.Info("Offline mode changed", zap.Bool("offline", offline))
	}
}
