package ledger

import (
	"time"

	"github.com/coldstore/backend/internal/domain/shared"
	"github.com/coldstore/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// ErrSamePoolTransfer rejects transfers where source and destination resolve
// to the same pool. Such an entry would be a no-op on balances but would still
// pollute history.
var ErrSamePoolTransfer = shared.NewDomainError("SAME_POOL_TRANSFER", "Source and destination pools must differ")

// InternalTransfer moves money between two pools of the same tenant, for
// example a cash deposit into the current account. Net worth is unchanged.
type InternalTransfer struct {
	EntryBase
	FromPool PoolReference `json:"from_pool"`
	ToPool   PoolReference `json:"to_pool"`
}

// NewInternalTransfer creates a pool-to-pool transfer entry.
func NewInternalTransfer(
	tenantID uuid.UUID,
	txnNumber string,
	fromPool, toPool PoolReference,
	amount valueobject.Money,
	occurredAt time.Time,
	remarks string,
) (*InternalTransfer, error) {
	base, err := newEntryBase(tenantID, txnNumber, amount, occurredAt, remarks)
	if err != nil {
		return nil, err
	}
	if err := fromPool.Validate(); err != nil {
		return nil, err
	}
	if err := toPool.Validate(); err != nil {
		return nil, err
	}
	if fromPool.Equals(toPool) {
		return nil, ErrSamePoolTransfer
	}

	transfer := &InternalTransfer{
		EntryBase: base,
		FromPool:  fromPool,
		ToPool:    toPool,
	}
	transfer.AddDomainEvent(NewEntryRecordedEvent(transfer, EntryKindInternalTransfer))
	return transfer, nil
}

// Kind returns the entry kind.
func (t *InternalTransfer) Kind() EntryKind {
	return EntryKindInternalTransfer
}

// Reverse marks the transfer as reversed.
func (t *InternalTransfer) Reverse(now time.Time) error {
	if err := t.markReversed(now); err != nil {
		return err
	}
	t.AddDomainEvent(NewEntryReversedEvent(t, EntryKindInternalTransfer))
	return nil
}
