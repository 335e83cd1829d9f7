package domain

type TenantID string

func (tid TenantID) String() string {
	return string(tid)
}

type RequestID string

func (rid RequestID) String() string {
	return string(rid)
}

type UserID string

func (uid UserID) String() string {
	return string(uid)
}

type Provider string

// Monetary values are decimal strings end to end.  They are parsed to
// numbers only transiently for arithmetic and always stored back as
// strings (see reconcile.ParseAmount / reconcile.FormatAmount).

type BankDepositDetail struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	DepositorName string `json:"depositor_name"`
	SlipNumber    string `json:"slip_number"`
}

type MoMoDetail struct {
	Network        string `json:"network"`
	ServiceType    string `json:"service_type"`
	SenderNumber   string `json:"sender_number"`
	ReceiverNumber string `json:"receiver_number"`
	MoMoReference  string `json:"momo_reference"`
}

// AgentRequest is one financial operation submitted by an agent and
// tracked through the approval workflow.
type AgentRequest struct {
	ID                RequestID          `json:"id"`
	Reference         string             `json:"reference"`
	Company           TenantID           `json:"company"`
	Customer          string             `json:"customer,omitempty"`
	CustomerName      string             `json:"customer_name,omitempty"`
	TransactionType   string             `json:"transaction_type"`
	Channel           string             `json:"channel"`
	Status            string             `json:"status"`
	Amount            string             `json:"amount"`
	Fee               string             `json:"fee"`
	RequiresApproval  bool               `json:"requires_approval"`
	ApprovedBy        string             `json:"approved_by,omitempty"`
	ApprovedByName    string             `json:"approved_by_name,omitempty"`
	ApprovedAt        string             `json:"approved_at,omitempty"`
	RejectionReason   string             `json:"rejection_reason,omitempty"`
	BankDepositDetail *BankDepositDetail `json:"bank_deposit_detail,omitempty"`
	MoMoDetail        *MoMoDetail        `json:"momo_detail,omitempty"`
	RequestedAt       string             `json:"requested_at"`
}

// ProviderBalance is one agent's float with one payment provider.
// Identity is the (User, Provider) pair.
type ProviderBalance struct {
	ID              string   `json:"id"`
	Company         TenantID `json:"company"`
	User            UserID   `json:"user"`
	UserName        string   `json:"user_name"`
	Provider        Provider `json:"provider"`
	ProviderDisplay string   `json:"provider_display"`
	StartingBalance string   `json:"starting_balance"`
	Balance         string   `json:"balance"`
	LastUpdated     string   `json:"last_updated"`
}

type Customer struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	Status       string `json:"status"`
	KycStatus    string `json:"kyc_status"`
	RegisteredBy string `json:"registered_by,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// DashboardMetrics is the aggregate snapshot returned by the reports
// endpoint.  Monetary totals are decimal strings.
type DashboardMetrics struct {
	TotalRequestsToday    int            `json:"total_requests_today"`
	TotalDepositsToday    string         `json:"total_deposits_today"`
	TotalWithdrawalsToday string         `json:"total_withdrawals_today"`
	TotalFeesToday        string         `json:"total_fees_today"`
	PendingApprovals      int            `json:"pending_approvals"`
	TotalCustomers        int            `json:"total_customers"`
	TotalActiveUsers      int            `json:"total_active_users"`
	RequestsByChannel     map[string]int `json:"requests_by_channel"`
	RequestsByStatus      map[string]int `json:"requests_by_status"`
	RecentRequests        []AgentRequest `json:"recent_requests"`
}
