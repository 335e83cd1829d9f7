package protocol

import (
	"testing"
)

func TestParseMessageRejectsInvalidJson(t *testing.T) {
	_, err := ParseMessage([]byte("this is not json"))
	if err == nil {
		t.Fatalf("Expected a parse error, but the frame was accepted")
	}
}

func TestParseMessageRejectsMissingType(t *testing.T) {
	_, err := ParseMessage([]byte(`{"status": "connected"}`))
	if err == nil {
		t.Fatalf("Expected a missing-type error, but the frame was accepted")
	}
}

func TestParseMessageAcceptsUnknownType(t *testing.T) {
	msg, err := ParseMessage([]byte(`{"type": "some_future_event", "payload": 42}`))
	if err != nil {
		t.Fatalf("Expected unknown types to be accepted, but got error: %s", err)
	}

	if msg.Type != "some_future_event" {
		t.Fatalf("Expected type some_future_event, but found %s", msg.Type)
	}
}

func TestParseMessageTransactionUpdate(t *testing.T) {
	payload := `{"type": "transaction_update", "transaction": {"id": "req-1", "status": "pending", "amount": "100.00"}}`

	msg, err := ParseMessage([]byte(payload))
	if err != nil {
		t.Fatalf("Expected the frame to parse, but got error: %s", err)
	}

	if msg.Transaction == nil {
		t.Fatalf("Expected a transaction payload, but found none")
	}

	if msg.Transaction.ID != "req-1" {
		t.Fatalf("Expected transaction id req-1, but found %s", msg.Transaction.ID)
	}
}

func TestParseMessageTransactionUpdateRequiresPayload(t *testing.T) {
	_, err := ParseMessage([]byte(`{"type": "transaction_update"}`))
	if err == nil {
		t.Fatalf("Expected a missing-payload error, but the frame was accepted")
	}
}

func TestParseMessageBalanceChangeValidation(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{
			name:    "complete payload",
			payload: `{"type": "balance_change", "balance": {"user_id": "user-1", "provider": "mtn", "balance": "10.00", "starting_balance": "5.00"}}`,
			valid:   true,
		},
		{
			name:    "missing user_id",
			payload: `{"type": "balance_change", "balance": {"provider": "mtn", "balance": "10.00"}}`,
			valid:   false,
		},
		{
			name:    "missing provider",
			payload: `{"type": "balance_change", "balance": {"user_id": "user-1", "balance": "10.00"}}`,
			valid:   false,
		},
		{
			name:    "missing balance payload entirely",
			payload: `{"type": "balance_change"}`,
			valid:   false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMessage([]byte(tc.payload))
			if tc.valid && err != nil {
				t.Fatalf("Expected the frame to parse, but got error: %s", err)
			}
			if !tc.valid && err == nil {
				t.Fatalf("Expected a validation error, but the frame was accepted")
			}
		})
	}
}

func TestParseMessageCustomerUpdate(t *testing.T) {
	payload := `{"type": "customer_update", "customer": {"id": "cust-1", "full_name": "Ama Mensah", "action": "deleted"}}`

	msg, err := ParseMessage([]byte(payload))
	if err != nil {
		t.Fatalf("Expected the frame to parse, but got error: %s", err)
	}

	if msg.Customer.Action != CustomerActionDeleted {
		t.Fatalf("Expected the deletion action, but found %s", msg.Customer.Action)
	}
}

func TestParseMessageInitialState(t *testing.T) {
	payload := `{"type": "initial_state", "balances": [{"user_id": "user-1", "user_name": "Agent", "providers": {"mtn": {"balance": "10.00", "starting_balance": "5.00"}}}]}`

	msg, err := ParseMessage([]byte(payload))
	if err != nil {
		t.Fatalf("Expected the frame to parse, but got error: %s", err)
	}

	if len(msg.Balances) != 1 {
		t.Fatalf("Expected 1 user snapshot, but found %d", len(msg.Balances))
	}

	figures := msg.Balances[0].Providers["mtn"]
	if figures.Balance != "10.00" {
		t.Fatalf("Expected mtn balance 10.00, but found %s", figures.Balance)
	}
}
