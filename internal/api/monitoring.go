package api

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/gabrielstonedelza/merchantplus-console/internal/config"
	"github.com/gabrielstonedelza/merchantplus-console/internal/platform/logger"
	"github.com/gabrielstonedelza/merchantplus-console/internal/protocol"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ConnectionStatusReporter reports the event channel's last known
// status.  Satisfied by controller.DashboardController.
type ConnectionStatusReporter interface {
	ConnectionStatus() string
}

type MonitoringServer struct {
	router *mux.Router
	config *config.Config
	status ConnectionStatusReporter
}

func NewMonitoringServer(r *mux.Router, cfg *config.Config, status ConnectionStatusReporter) *MonitoringServer {
	return &MonitoringServer{
		router: r,
		config: cfg,
		status: status,
	}
}

func (s *MonitoringServer) Routes() {
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	s.router.HandleFunc("/liveness", s.handleLiveness()).Methods(http.MethodGet)
	s.router.HandleFunc("/readiness", s.handleReadiness()).Methods(http.MethodGet)

	if s.config.Profile {
		logger.Log.Warn("WARNING: Enabling the profiler endpoint!!")
		s.router.PathPrefix("/debug").Handler(http.DefaultServeMux)
	}
}

func (s *MonitoringServer) handleLiveness() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

// Readiness reflects the event channel:  the mirror is only serving
// fresh data while the channel is connected.
func (s *MonitoringServer) handleReadiness() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if s.status != nil && s.status.ConnectionStatus() != protocol.StatusConnected {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
