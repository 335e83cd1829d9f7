package protocol

import (
	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
)

// Wire message types.  TypeConnection is channel-local and never sent
// over the wire.  TypeMessage is the catch-all subscription key.
const (
	TypeConnection        = "connection"
	TypeMessage           = "message"
	TypeInitialState      = "initial_state"
	TypeTransactionUpdate = "transaction_update"
	TypeCustomerUpdate    = "customer_update"
	TypeBalanceChange     = "balance_change"
)

// Connection statuses carried on TypeConnection messages.
// StatusUnavailable is terminal:  the reconnect budget is spent and no
// further attempts will be made until Connect() is called again.
const (
	StatusConnecting   = "connecting"
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusError        = "error"
	StatusUnavailable  = "unavailable"
)

// BalanceChange is the payload of a balance_change message.
type BalanceChange struct {
	UserID          string `json:"user_id" validate:"required"`
	UserName        string `json:"user_name"`
	Provider        string `json:"provider" validate:"required"`
	Balance         string `json:"balance"`
	StartingBalance string `json:"starting_balance"`
}

// CustomerEvent is the payload of a customer_update message.  Action
// discriminates updates from deletions.
type CustomerEvent struct {
	domain.Customer
	Action string `json:"action"`
}

const CustomerActionDeleted = "deleted"

// BalanceFigures are the per-provider figures inside an initial_state
// snapshot.
type BalanceFigures struct {
	Balance         string `json:"balance"`
	StartingBalance string `json:"starting_balance"`
}

// UserBalanceSnapshot is one user's slice of an initial_state snapshot.
type UserBalanceSnapshot struct {
	UserID    string                    `json:"user_id"`
	UserName  string                    `json:"user_name"`
	Providers map[string]BalanceFigures `json:"providers"`
}

// Message is the tagged union carried on the event channel.  Exactly one
// payload field is populated per type; unrecognized types carry no
// payload and are safely ignored by consumers.
type Message struct {
	Type string `json:"type"`

	// Populated on TypeConnection messages only.
	Status string `json:"status,omitempty"`

	Transaction *domain.AgentRequest  `json:"transaction,omitempty"`
	Customer    *CustomerEvent        `json:"customer,omitempty"`
	Balance     *BalanceChange        `json:"balance,omitempty"`
	Balances    []UserBalanceSnapshot `json:"balances,omitempty"`
}
