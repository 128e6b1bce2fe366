package transferrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/go-ledger/money-transfer/internal/domain"
)

// RepoMem is an in-memory transfer repository with the same semantics as
// RepoPGS. It backs tests and database-free runs.
type RepoMem struct {
	mu        sync.RWMutex
	transfers map[string]domain.Transfer
}

// NewRepoMem returns an empty in-memory transfer repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		transfers: make(map[string]domain.Transfer),
	}
}

// Save persists the transfer record and returns the stored copy.
func (r *RepoMem) Save(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.transfers[transfer.ID] = transfer

	return transfer, nil
}

// Get returns the transfer with the given id.
func (r *RepoMem) Get(ctx context.Context, id string) (domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transfer, ok := r.transfers[id]
	if !ok {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}

	return transfer, nil
}

// List returns transfers referencing the given account, newest first.
func (r *RepoMem) List(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.Transfer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []domain.Transfer{}

	for _, t := range r.transfers {
		if t.OriginNumber == accountNumber || t.DestinationNumber == accountNumber {
			items = append(items, t)
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if int(offset) >= len(items) {
		return []domain.Transfer{}, nil
	}

	items = items[offset:]
	if int(limit) < len(items) {
		items = items[:limit]
	}

	return items, nil
}
