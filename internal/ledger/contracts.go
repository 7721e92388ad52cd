//go:generate mockgen -source=contracts.go -destination=ledger_mocks_test.go -package=ledger_test

package ledger

import (
	"context"

	"yoyo-delivery/internal/domain"
	"yoyo-delivery/internal/events"
)

// Publisher receives lifecycle events after a mutation has been persisted.
type Publisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// Accounts resolves courier ids on assignment.
type Accounts interface {
	Get(id int64) (domain.Account, bool)
}
