package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gabrielstonedelza/merchantplus-console/internal/channel"
	"github.com/gabrielstonedelza/merchantplus-console/internal/config"
	"github.com/gabrielstonedelza/merchantplus-console/internal/controller"
	"github.com/gabrielstonedelza/merchantplus-console/internal/platform/logger"
	"github.com/gabrielstonedelza/merchantplus-console/internal/restclient"

	"github.com/go-playground/assert/v2"
	"github.com/gorilla/mux"
)

func init() {
	logger.InitLogger()
}

func TestStatusEndpoint(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/transactions/":
			fmt.Fprint(w, `[{"id": "req-1", "status": "pending", "amount": "40.00"},
				{"id": "req-2", "status": "approved", "amount": "10.00"}]`)
		case "/api/v1/transactions/balances/":
			fmt.Fprint(w, `[{"id": "bal-1", "user": "user-1", "provider": "mtn", "balance": "75.25", "starting_balance": "50.00"}]`)
		case "/api/v1/customers/":
			fmt.Fprint(w, `[{"id": "cust-1", "full_name": "Ama Mensah"}]`)
		case "/api/v1/reports/dashboard/":
			fmt.Fprint(w, `{"pending_approvals": 3}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer backend.Close()

	cfg := config.GetConfig()
	cfg.ApiBaseUrl = backend.URL

	snapshots := restclient.NewSnapshotClient(cfg)
	eventChannel := channel.NewEventChannel(cfg, "tenant-1")

	dashboard := controller.NewDashboardController("tenant-1", snapshots, eventChannel)
	defer dashboard.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := dashboard.Start(ctx)
	assert.Equal(t, err, nil)

	apiMux := mux.NewRouter()
	statusServer := NewStatusServer(dashboard, apiMux, cfg.UrlBasePath, cfg)
	statusServer.Routes()

	req, err := http.NewRequest("GET", cfg.UrlBasePath+"/v1/status", nil)
	assert.Equal(t, err, nil)

	rr := httptest.NewRecorder()
	statusServer.router.ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusOK)
	assert.Equal(t, rr.Header().Get("Content-Type"), "application/json; charset=UTF-8")

	var response statusResponse
	err = json.NewDecoder(rr.Body).Decode(&response)
	assert.Equal(t, err, nil)

	assert.Equal(t, response.Tenant, "tenant-1")
	assert.Equal(t, response.RequestCount, 2)
	assert.Equal(t, response.BalanceCount, 1)
	assert.Equal(t, response.CustomerCount, 1)
	assert.Equal(t, response.TotalBalance, "75.25")
	assert.Equal(t, response.PendingApprovals, 3)
}

func TestStatusEndpointRejectsOtherMethods(t *testing.T) {
	cfg := config.GetConfig()

	apiMux := mux.NewRouter()
	statusServer := NewStatusServer(nil, apiMux, cfg.UrlBasePath, cfg)
	statusServer.Routes()

	req, err := http.NewRequest("POST", cfg.UrlBasePath+"/v1/status", nil)
	assert.Equal(t, err, nil)

	rr := httptest.NewRecorder()
	statusServer.router.ServeHTTP(rr, req)

	assert.Equal(t, rr.Code, http.StatusMethodNotAllowed)
}
