package restclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabrielstonedelza/merchantplus-console/internal/config"
	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
)

const testTenant = domain.TenantID("tenant-1")

var _ = Describe("SnapshotClient", func() {

	var (
		server        *httptest.Server
		client        *SnapshotClient
		dashboardHits int32
	)

	BeforeEach(func() {
		atomic.StoreInt32(&dashboardHits, 0)

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-Company-ID") != testTenant.String() {
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"error": "unknown company"}`)
				return
			}

			w.Header().Set("Content-Type", "application/json")

			switch r.URL.Path {
			case "/api/v1/transactions/":
				fmt.Fprint(w, `[{"id": "req-1", "reference": "REF-1", "status": "pending", "amount": "100.00"},
					{"id": "req-2", "reference": "REF-2", "status": "approved", "amount": "50.00"}]`)
			case "/api/v1/transactions/pending/":
				fmt.Fprint(w, `[{"id": "req-1", "reference": "REF-1", "status": "pending", "amount": "100.00"}]`)
			case "/api/v1/transactions/balances/":
				fmt.Fprint(w, `[{"id": "bal-1", "user": "user-1", "provider": "mtn", "provider_display": "MTN",
					"balance": "100.00", "starting_balance": "50.00"}]`)
			case "/api/v1/customers/":
				fmt.Fprint(w, `[{"id": "cust-1", "full_name": "Ama Mensah", "status": "active"}]`)
			case "/api/v1/reports/dashboard/":
				atomic.AddInt32(&dashboardHits, 1)
				fmt.Fprint(w, `{"total_requests_today": 12, "pending_approvals": 3, "total_customers": 40,
					"total_deposits_today": "1200.00"}`)
			default:
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprint(w, `{"detail": "not found"}`)
			}
		}))

		cfg := &config.Config{
			ApiBaseUrl:        server.URL,
			HttpClientTimeout: 5 * time.Second,
			SnapshotCacheSize: 10,
			SnapshotCacheTTL:  time.Minute,
		}

		client = NewSnapshotClient(cfg)
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("Fetching the request snapshot", func() {
		It("Should decode the request list", func() {
			requests, err := client.GetRequests(context.Background(), testTenant)
			Expect(err).NotTo(HaveOccurred())
			Expect(requests).To(HaveLen(2))
			Expect(requests[0].ID).To(Equal(domain.RequestID("req-1")))
			Expect(requests[0].Amount).To(Equal("100.00"))
		})

		It("Should decode the pending request list", func() {
			requests, err := client.GetPendingRequests(context.Background(), testTenant)
			Expect(err).NotTo(HaveOccurred())
			Expect(requests).To(HaveLen(1))
			Expect(requests[0].Status).To(Equal("pending"))
		})
	})

	Describe("Fetching the balance snapshot", func() {
		It("Should decode the balance list", func() {
			balances, err := client.GetBalances(context.Background(), testTenant)
			Expect(err).NotTo(HaveOccurred())
			Expect(balances).To(HaveLen(1))
			Expect(balances[0].User).To(Equal(domain.UserID("user-1")))
			Expect(balances[0].Balance).To(Equal("100.00"))
		})
	})

	Describe("Fetching the customer snapshot", func() {
		It("Should decode the customer list", func() {
			customers, err := client.GetCustomers(context.Background(), testTenant)
			Expect(err).NotTo(HaveOccurred())
			Expect(customers).To(HaveLen(1))
			Expect(customers[0].FullName).To(Equal("Ama Mensah"))
		})
	})

	Describe("Fetching the dashboard metrics", func() {
		It("Should decode the aggregate metrics", func() {
			dashboard, err := client.GetDashboard(context.Background(), testTenant)
			Expect(err).NotTo(HaveOccurred())
			Expect(dashboard.TotalRequestsToday).To(Equal(12))
			Expect(dashboard.PendingApprovals).To(Equal(3))
			Expect(dashboard.TotalDepositsToday).To(Equal("1200.00"))
		})

		It("Should serve repeated lookups from the cache", func() {
			_, err := client.GetDashboard(context.Background(), testTenant)
			Expect(err).NotTo(HaveOccurred())

			_, err = client.GetDashboard(context.Background(), testTenant)
			Expect(err).NotTo(HaveOccurred())

			Expect(atomic.LoadInt32(&dashboardHits)).To(Equal(int32(1)))
		})
	})

	Describe("Handling backend errors", func() {
		It("Should surface the backend's error message", func() {
			_, err := client.GetRequests(context.Background(), "some-other-tenant")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown company"))
		})

		It("Should surface the detail field when present", func() {
			var out interface{}
			err := client.getJSON(context.Background(), testTenant, "/api/v1/does-not-exist/", &out)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not found"))
		})
	})
})
