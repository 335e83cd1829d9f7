package api

import (
	"net/http"

	"github.com/gabrielstonedelza/merchantplus-console/internal/config"
	"github.com/gabrielstonedelza/merchantplus-console/internal/controller"

	"github.com/gorilla/mux"
)

// StatusServer exposes a read-only view of the mirrored dashboard state
// for operators and status indicators.
type StatusServer struct {
	dashboard *controller.DashboardController
	router    *mux.Router
	urlPrefix string
	config    *config.Config
}

type statusResponse struct {
	Tenant           string `json:"tenant"`
	ConnectionStatus string `json:"connection_status"`
	RequestCount     int    `json:"request_count"`
	BalanceCount     int    `json:"balance_count"`
	CustomerCount    int    `json:"customer_count"`
	TotalBalance     string `json:"total_balance"`
	PendingApprovals int    `json:"pending_approvals"`
}

func NewStatusServer(dashboard *controller.DashboardController, r *mux.Router, urlPrefix string, cfg *config.Config) *StatusServer {
	return &StatusServer{
		dashboard: dashboard,
		router:    r,
		urlPrefix: urlPrefix,
		config:    cfg,
	}
}

func (s *StatusServer) Routes() {
	s.router.HandleFunc(s.urlPrefix+"/v1/status", s.handleStatus()).Methods(http.MethodGet)
}

func (s *StatusServer) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		response := statusResponse{
			Tenant:           s.dashboard.Tenant().String(),
			ConnectionStatus: s.dashboard.ConnectionStatus(),
			RequestCount:     len(s.dashboard.Requests()),
			BalanceCount:     len(s.dashboard.Balances()),
			CustomerCount:    len(s.dashboard.Customers()),
			TotalBalance:     s.dashboard.TotalBalance(),
		}

		if metrics := s.dashboard.Dashboard(); metrics != nil {
			response.PendingApprovals = metrics.PendingApprovals
		}

		writeJSONResponse(w, http.StatusOK, response)
	}
}
