package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gabrielstonedelza/merchantplus-console/internal/domain"
	"github.com/gabrielstonedelza/merchantplus-console/internal/protocol"
)

// MergeBalance folds one balance_change event into the collection.
// Identity is the (user, provider) pair.  An existing entry has only its
// balance figures updated, leaving every other field untouched; a new
// entry is synthesized from the event payload and appended, so order
// among entries stays insertion order.  updatedAt only stamps
// synthesized entries and is supplied by the caller to keep the merge
// deterministic.
func MergeBalance(balances []domain.ProviderBalance, change protocol.BalanceChange, tenant domain.TenantID, updatedAt string) []domain.ProviderBalance {
	user := domain.UserID(change.UserID)
	provider := domain.Provider(change.Provider)

	for i := range balances {
		if balances[i].User == user && balances[i].Provider == provider {
			next := make([]domain.ProviderBalance, len(balances))
			copy(next, balances)
			next[i].Balance = change.Balance
			next[i].StartingBalance = change.StartingBalance
			return next
		}
	}

	next := make([]domain.ProviderBalance, 0, len(balances)+1)
	next = append(next, balances...)
	return append(next, domain.ProviderBalance{
		Company:         tenant,
		User:            user,
		UserName:        change.UserName,
		Provider:        provider,
		ProviderDisplay: strings.ToUpper(change.Provider),
		StartingBalance: change.StartingBalance,
		Balance:         change.Balance,
		LastUpdated:     updatedAt,
	})
}

// ApplySnapshot replaces the balance collection wholesale with a
// flattened initial_state snapshot.  An empty snapshot leaves the
// previous collection untouched:  the snapshot event may race with
// incremental updates that already populated state, and erasing that
// state would lose data.
func ApplySnapshot(balances []domain.ProviderBalance, snapshot []protocol.UserBalanceSnapshot, tenant domain.TenantID, updatedAt string) []domain.ProviderBalance {
	flattened := FlattenSnapshot(snapshot, tenant, updatedAt)
	if len(flattened) == 0 {
		return balances
	}
	return flattened
}

// FlattenSnapshot converts the per-user provider map of an initial_state
// snapshot into the collection's canonical shape.  Provider keys are
// visited in sorted order so the result is deterministic.
func FlattenSnapshot(snapshot []protocol.UserBalanceSnapshot, tenant domain.TenantID, updatedAt string) []domain.ProviderBalance {
	var flattened []domain.ProviderBalance

	for _, user := range snapshot {
		providers := make([]string, 0, len(user.Providers))
		for provider := range user.Providers {
			providers = append(providers, provider)
		}
		sort.Strings(providers)

		for _, provider := range providers {
			figures := user.Providers[provider]
			flattened = append(flattened, domain.ProviderBalance{
				ID:              fmt.Sprintf("%s-%s", user.UserID, provider),
				Company:         tenant,
				User:            domain.UserID(user.UserID),
				UserName:        user.UserName,
				Provider:        domain.Provider(provider),
				ProviderDisplay: strings.ToUpper(strings.ReplaceAll(provider, "_", " ")),
				StartingBalance: figures.StartingBalance,
				Balance:         figures.Balance,
				LastUpdated:     updatedAt,
			})
		}
	}

	return flattened
}
