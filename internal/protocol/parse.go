package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	errMissingMessageType = errors.New("inbound message is missing the type field")
	errMissingPayload     = errors.New("inbound message is missing its payload")
)

var validate = validator.New()

// ParseMessage parses one inbound frame.  Frames that are not valid
// JSON, carry no type field, or fail payload validation are rejected so
// the channel can drop them without dispatching.
func ParseMessage(payload []byte) (*Message, error) {
	var msg Message

	if err := json.Unmarshal(payload, &msg); err != nil {
		return nil, err
	}

	if msg.Type == "" {
		return nil, errMissingMessageType
	}

	switch msg.Type {
	case TypeBalanceChange:
		if msg.Balance == nil {
			return nil, errMissingPayload
		}
		if err := validate.Struct(msg.Balance); err != nil {
			return nil, fmt.Errorf("balance_change payload is missing required fields: %w", err)
		}
	case TypeTransactionUpdate:
		if msg.Transaction == nil {
			return nil, errMissingPayload
		}
	case TypeCustomerUpdate:
		if msg.Customer == nil {
			return nil, errMissingPayload
		}
	}

	return &msg, nil
}

// NewConnectionMessage builds the synthetic status message emitted on
// the "connection" channel.
func NewConnectionMessage(status string) Message {
	return Message{Type: TypeConnection, Status: status}
}
