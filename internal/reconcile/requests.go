// Package reconcile holds the pure merge functions that fold one inbound
// event into an in-memory domain collection.  Inputs are never mutated;
// every merge reads the previous collection and returns the next one.
package reconcile

import (
	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
	"github.com/gabrielstonedelza/merchantplus-console/internal/protocol"
)

// MergeRequest folds one agent request record into the collection.  An
// existing record with the same id is replaced at its current position;
// a new record is prepended so the newest items come first.  Applying
// the same record twice yields the same collection as applying it once.
func MergeRequest(requests []domain.AgentRequest, incoming domain.AgentRequest) []domain.AgentRequest {
	for i := range requests {
		if requests[i].ID == incoming.ID {
			next := make([]domain.AgentRequest, len(requests))
			copy(next, requests)
			next[i] = incoming
			return next
		}
	}

	next := make([]domain.AgentRequest, 0, len(requests)+1)
	next = append(next, incoming)
	return append(next, requests...)
}

// MergeCustomer folds one customer event into the collection.  A
// deletion removes the matching record; otherwise the record is replaced
// in place or prepended like a request.
func MergeCustomer(customers []domain.Customer, event protocol.CustomerEvent) []domain.Customer {
	if event.Action == protocol.CustomerActionDeleted {
		next := make([]domain.Customer, 0, len(customers))
		for _, customer := range customers {
			if customer.ID != event.ID {
				next = append(next, customer)
			}
		}
		return next
	}

	for i := range customers {
		if customers[i].ID == event.ID {
			next := make([]domain.Customer, len(customers))
			copy(next, customers)
			next[i] = event.Customer
			return next
		}
	}

	next := make([]domain.Customer, 0, len(customers)+1)
	next = append(next, event.Customer)
	return append(next, customers...)
}
