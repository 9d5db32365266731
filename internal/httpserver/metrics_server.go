package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsServer exposes Prometheus metrics on a TCP port, separate from the
// Unix socket the cache API listens on.
type MetricsServer struct {
	logger *zap.Logger
	server *http.Server
}

// NewMetricsServer creates a new metrics server
func NewMetricsServer(logger *zap.Logger) *MetricsServer {
	return &MetricsServer{logger: logger}
}

// Start starts the metrics server on the given port
func (m *MetricsServer) Start(port int) error {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	m.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	m.logger.Info("Starting metrics server", zap.Int("port", port))
	return m.server.ListenAndServe()
}

// Stop stops the metrics server
func (m *MetricsServer) Stop(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
