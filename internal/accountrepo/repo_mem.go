package accountrepo

import (
	"context"
	"sync"

	"github.com/go-ledger/money-transfer/internal/domain"
)

// RepoMem is an in-memory account repository with the same save and
// find-by-id semantics as RepoPGS. It backs tests and database-free runs.
type RepoMem struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
}

// NewRepoMem returns an empty in-memory account repository.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		accounts: make(map[string]domain.Account),
	}
}

// Save upserts the account by number and returns the stored copy.
func (r *RepoMem) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts[account.Number] = account

	return account, nil
}

// Get returns the account with the given number.
func (r *RepoMem) Get(ctx context.Context, number string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[number]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return account, nil
}
