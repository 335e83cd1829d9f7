package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabrielstonedelza/merchantplus-console/internal/api"
	"github.com/gabrielstonedelza/merchantplus-console/internal/channel"
	"github.com/gabrielstonedelza/merchantplus-console/internal/config"
	"github.com/gabrielstonedelza/merchantplus-console/internal/controller"
	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
	"github.com/gabrielstonedelza/merchantplus-console/internal/platform/logger"
	"github.com/gabrielstonedelza/merchantplus-console/internal/platform/utils"
	"github.com/gabrielstonedelza/merchantplus-console/internal/restclient"

	"github.com/gorilla/mux"
)

func startDashboardMonitor(listenAddr string, tenantID string) {

	logger.InitLogger()

	logger.Log.Info("Starting Console-Sync dashboard monitor on ", utils.GetHostname())

	cfg := config.GetConfig()
	logger.Log.Info("Console-Sync configuration:\n", cfg)

	if tenantID == "" {
		logger.Log.Fatal("A tenant id is required (--tenant-id)")
	}

	tenant := domain.TenantID(tenantID)

	snapshots := restclient.NewSnapshotClient(cfg)
	eventChannel := channel.NewEventChannel(cfg, tenant)
	dashboard := controller.NewDashboardController(tenant, snapshots, eventChannel)

	snapshotCtx, cancelSnapshot := context.WithTimeout(context.Background(), cfg.HttpClientTimeout)
	if err := dashboard.Start(snapshotCtx); err != nil {
		logger.Log.Info("Continuing without the initial snapshot, state will catch up from pushed events")
	}
	cancelSnapshot()

	apiMux := mux.NewRouter()
	apiMux.Use(logger.AccessLoggerMiddleware)

	monitoringServer := api.NewMonitoringServer(apiMux, cfg, dashboard)
	monitoringServer.Routes()

	statusServer := api.NewStatusServer(dashboard, apiMux, cfg.UrlBasePath, cfg)
	statusServer.Routes()

	apiSrv := utils.StartHTTPServer(listenAddr, "monitoring", apiMux)

	signalChan := make(chan os.Signal, 1)

	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-signalChan
	logger.Log.Info("Received signal to shutdown: ", sig)

	dashboard.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HttpShutdownTimeout)
	defer cancel()

	utils.ShutdownHTTPServer(ctx, "monitoring", apiSrv)

	logger.Log.Info("Console-Sync shutting down")
}
