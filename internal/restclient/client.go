package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gabrielstonedelza/merchantplus-console/internal/config"
	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
	"github.com/gabrielstonedelza/merchantplus-console/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
)

const (
	tenantHeader    = "X-Company-ID"
	requestIDHeader = "X-Request-Id"

	requestsEndpoint        = "/api/v1/transactions/"
	pendingRequestsEndpoint = "/api/v1/transactions/pending/"
	balancesEndpoint        = "/api/v1/transactions/balances/"
	customersEndpoint       = "/api/v1/customers/"
	dashboardEndpoint       = "/api/v1/reports/dashboard/"
)

// apiError is the backend's error envelope.  Either field may carry the
// message depending on the endpoint.
type apiError struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// SnapshotClient fetches the authoritative REST snapshots the dashboard
// state is initialized from.  Every call is scoped to a tenant via the
// X-Company-ID header; nothing is read from ambient state.
type SnapshotClient struct {
	baseUrl    string
	authToken  string
	httpClient *http.Client

	// Dashboard metrics are aggregate queries the backend computes on
	// demand; cache them briefly per tenant.
	dashboardCache *expirable.LRU[domain.TenantID, *domain.DashboardMetrics]
}

func NewSnapshotClient(cfg *config.Config) *SnapshotClient {
	return &SnapshotClient{
		baseUrl:        cfg.ApiBaseUrl,
		authToken:      cfg.AuthToken,
		httpClient:     &http.Client{Timeout: cfg.HttpClientTimeout},
		dashboardCache: expirable.NewLRU[domain.TenantID, *domain.DashboardMetrics](cfg.SnapshotCacheSize, nil, cfg.SnapshotCacheTTL),
	}
}

func (c *SnapshotClient) GetRequests(ctx context.Context, tenant domain.TenantID) ([]domain.AgentRequest, error) {
	var requests []domain.AgentRequest
	if err := c.getJSON(ctx, tenant, requestsEndpoint, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *SnapshotClient) GetPendingRequests(ctx context.Context, tenant domain.TenantID) ([]domain.AgentRequest, error) {
	var requests []domain.AgentRequest
	if err := c.getJSON(ctx, tenant, pendingRequestsEndpoint, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (c *SnapshotClient) GetBalances(ctx context.Context, tenant domain.TenantID) ([]domain.ProviderBalance, error) {
	var balances []domain.ProviderBalance
	if err := c.getJSON(ctx, tenant, balancesEndpoint, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

func (c *SnapshotClient) GetCustomers(ctx context.Context, tenant domain.TenantID) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := c.getJSON(ctx, tenant, customersEndpoint, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *SnapshotClient) GetDashboard(ctx context.Context, tenant domain.TenantID) (*domain.DashboardMetrics, error) {
	if cached, ok := c.dashboardCache.Get(tenant); ok {
		return cached, nil
	}

	dashboard := new(domain.DashboardMetrics)
	if err := c.getJSON(ctx, tenant, dashboardEndpoint, dashboard); err != nil {
		return nil, err
	}

	c.dashboardCache.Add(tenant, dashboard)

	return dashboard, nil
}

func (c *SnapshotClient) getJSON(ctx context.Context, tenant domain.TenantID, endpoint string, data interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseUrl+endpoint, nil)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", "application/json")
	req.Header.Set(tenantHeader, tenant.String())
	req.Header.Set(requestIDHeader, requestID)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("snapshot request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.buildResponseError(resp, endpoint, requestID)
	}

	if err := json.NewDecoder(resp.Body).Decode(data); err != nil {
		return fmt.Errorf("snapshot response includes malformed json: %w", err)
	}

	return nil
}

func (c *SnapshotClient) buildResponseError(resp *http.Response, endpoint string, requestID string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var envelope apiError
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return fmt.Errorf("snapshot request failed: %s", envelope.Error)
		}
		if envelope.Detail != "" {
			return fmt.Errorf("snapshot request failed: %s", envelope.Detail)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"endpoint":   endpoint,
		"request_id": requestID,
		"status":     resp.StatusCode,
	}).Error("Snapshot request failed")

	return fmt.Errorf("snapshot request failed: %d", resp.StatusCode)
}
