package controller

import (
	"context"
	"sync"
	"time"

	"github.com/gabrielstonedelza/merchantplus-console/internal/channel"
	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
	"github.com/gabrielstonedelza/merchantplus-console/internal/platform/logger"
	"github.com/gabrielstonedelza/merchantplus-console/internal/protocol"
	"github.com/gabrielstonedelza/merchantplus-console/internal/reconcile"
	"github.com/gabrielstonedelza/merchantplus-console/internal/restclient"

	"github.com/sirupsen/logrus"
)

// DashboardController keeps the in-memory mirror of one tenant's admin
// dashboard:  it loads the authoritative REST snapshot, then folds every
// pushed event into its collections through the reconcile functions.
//
// The controller owns exactly one event channel.  Close() must be called
// on every teardown path; it is safe to call more than once.
type DashboardController struct {
	tenant    domain.TenantID
	snapshots *restclient.SnapshotClient
	channel   *channel.EventChannel

	requests  []domain.AgentRequest
	balances  []domain.ProviderBalance
	customers []domain.Customer
	dashboard *domain.DashboardMetrics

	connectionStatus string
	sync.RWMutex

	teardown sync.Once

	log *logrus.Entry
}

func NewDashboardController(tenant domain.TenantID, snapshots *restclient.SnapshotClient, eventChannel *channel.EventChannel) *DashboardController {
	return &DashboardController{
		tenant:           tenant,
		snapshots:        snapshots,
		channel:          eventChannel,
		connectionStatus: protocol.StatusConnecting,
		log:              logger.Log.WithFields(logrus.Fields{"tenant": tenant}),
	}
}

// Start loads the REST snapshot, subscribes to the event channel and
// opens the connection.  A snapshot failure is returned so the caller
// can surface it, but the channel is wired up regardless:  the mirror
// starts from empty collections and catches up from pushed events.
func (dc *DashboardController) Start(ctx context.Context) error {
	snapshotErr := dc.loadSnapshot(ctx)
	if snapshotErr != nil {
		dc.log.WithFields(logrus.Fields{"error": snapshotErr}).Error("Unable to load the initial snapshot, starting from empty collections")
	}

	dc.channel.On(protocol.TypeConnection, dc.handleConnectionStatus)
	dc.channel.On(protocol.TypeInitialState, dc.handleInitialState)
	dc.channel.On(protocol.TypeTransactionUpdate, dc.handleTransactionUpdate)
	dc.channel.On(protocol.TypeCustomerUpdate, dc.handleCustomerUpdate)
	dc.channel.On(protocol.TypeBalanceChange, dc.handleBalanceChange)

	dc.channel.Connect()

	return snapshotErr
}

func (dc *DashboardController) loadSnapshot(ctx context.Context) error {
	requests, err := dc.snapshots.GetRequests(ctx, dc.tenant)
	if err != nil {
		return err
	}

	balances, err := dc.snapshots.GetBalances(ctx, dc.tenant)
	if err != nil {
		return err
	}

	customers, err := dc.snapshots.GetCustomers(ctx, dc.tenant)
	if err != nil {
		return err
	}

	dashboard, err := dc.snapshots.GetDashboard(ctx, dc.tenant)
	if err != nil {
		return err
	}

	dc.Lock()
	dc.requests = requests
	dc.balances = balances
	dc.customers = customers
	dc.dashboard = dashboard
	dc.Unlock()

	dc.log.Infof("Loaded initial snapshot (%d requests, %d balances, %d customers)",
		len(requests), len(balances), len(customers))

	return nil
}

// Close tears the event channel down.  Guaranteed to run at most once.
func (dc *DashboardController) Close() {
	dc.teardown.Do(func() {
		dc.channel.Disconnect()
		dc.log.Info("Dashboard controller closed")
	})
}

func (dc *DashboardController) handleConnectionStatus(msg protocol.Message) {
	dc.Lock()
	dc.connectionStatus = msg.Status
	dc.Unlock()

	dc.log.Info("Event channel status: ", msg.Status)
}

func (dc *DashboardController) handleTransactionUpdate(msg protocol.Message) {
	if msg.Transaction == nil {
		return
	}

	dc.Lock()
	dc.requests = reconcile.MergeRequest(dc.requests, *msg.Transaction)
	dc.Unlock()
}

func (dc *DashboardController) handleCustomerUpdate(msg protocol.Message) {
	if msg.Customer == nil {
		return
	}

	dc.Lock()
	dc.customers = reconcile.MergeCustomer(dc.customers, *msg.Customer)
	dc.Unlock()
}

func (dc *DashboardController) handleBalanceChange(msg protocol.Message) {
	if msg.Balance == nil {
		return
	}

	updatedAt := time.Now().UTC().Format(time.RFC3339)

	dc.Lock()
	dc.balances = reconcile.MergeBalance(dc.balances, *msg.Balance, dc.tenant, updatedAt)
	dc.Unlock()
}

func (dc *DashboardController) handleInitialState(msg protocol.Message) {
	updatedAt := time.Now().UTC().Format(time.RFC3339)

	dc.Lock()
	dc.balances = reconcile.ApplySnapshot(dc.balances, msg.Balances, dc.tenant, updatedAt)
	dc.Unlock()
}

func (dc *DashboardController) Tenant() domain.TenantID {
	return dc.tenant
}

// Requests returns a copy of the mirrored request collection, newest
// first.
func (dc *DashboardController) Requests() []domain.AgentRequest {
	dc.RLock()
	defer dc.RUnlock()

	requests := make([]domain.AgentRequest, len(dc.requests))
	copy(requests, dc.requests)
	return requests
}

// Balances returns a copy of the mirrored balance collection in
// insertion order.
func (dc *DashboardController) Balances() []domain.ProviderBalance {
	dc.RLock()
	defer dc.RUnlock()

	balances := make([]domain.ProviderBalance, len(dc.balances))
	copy(balances, dc.balances)
	return balances
}

// Customers returns a copy of the mirrored customer collection.
func (dc *DashboardController) Customers() []domain.Customer {
	dc.RLock()
	defer dc.RUnlock()

	customers := make([]domain.Customer, len(dc.customers))
	copy(customers, dc.customers)
	return customers
}

// Dashboard returns the aggregate metrics from the snapshot, or nil if
// the snapshot never loaded.
func (dc *DashboardController) Dashboard() *domain.DashboardMetrics {
	dc.RLock()
	defer dc.RUnlock()
	return dc.dashboard
}

// ConnectionStatus reports the last status emitted on the connection
// channel.
func (dc *DashboardController) ConnectionStatus() string {
	dc.RLock()
	defer dc.RUnlock()
	return dc.connectionStatus
}

// TotalBalance sums the mirrored balances as a decimal string.
func (dc *DashboardController) TotalBalance() string {
	dc.RLock()
	defer dc.RUnlock()

	amounts := make([]string, len(dc.balances))
	for i, balance := range dc.balances {
		amounts[i] = balance.Balance
	}
	return reconcile.SumAmounts(amounts...)
}
