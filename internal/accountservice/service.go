// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-ledger/money-transfer/internal/domain"
	"github.com/go-ledger/money-transfer/pkg/lockpkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Save(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, number string) (domain.Account, error)
}

// Service facilitates account service layer logic.
//
// Balance mutations on one account are serialized through the shared
// KeyedMutex; the critical section spans the whole read-validate-write
// cycle so concurrent deposits and withdrawals cannot lose updates.
type Service struct {
	repo  Repo
	locks *lockpkg.KeyedMutex
}

// New returns account service struct to manage account bussines logic.
//
// The locks instance must be shared with the transfer service so that
// transfers serialize with deposits and withdrawals on the same account.
func New(ar Repo, locks *lockpkg.KeyedMutex) *Service {
	return &Service{repo: ar, locks: locks}
}

// Create creates and persists a zero-balance account for the given owner.
func (s *Service) Create(ctx context.Context, owner string) (domain.Account, error) {
	account, err := domain.NewAccount(owner)
	if err != nil {
		return domain.Account{}, err
	}

	return s.repo.Save(ctx, account)
}

// Get returns the account with the given number.
func (s *Service) Get(ctx context.Context, number string) (domain.Account, error) {
	if number == "" {
		return domain.Account{}, domain.ErrInvalidAccountNumber
	}

	return s.repo.Get(ctx, number)
}

// Deposit adds the given amount to the account balance and returns the updated account.
func (s *Service) Deposit(ctx context.Context, number, amount string) (domain.Account, error) {
	return s.updateBalance(ctx, number, amount, (*domain.Account).Deposit)
}

// Withdraw subtracts the given amount from the account balance and returns the updated account.
func (s *Service) Withdraw(ctx context.Context, number, amount string) (domain.Account, error) {
	return s.updateBalance(ctx, number, amount, (*domain.Account).Withdraw)
}

func (s *Service) updateBalance(
	ctx context.Context,
	number, amount string,
	mutate func(*domain.Account, decimal.Decimal) error,
) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if number == "" {
		return domain.Account{}, domain.ErrInvalidAccountNumber
	}

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	s.locks.Lock(number)
	defer s.locks.Unlock(number)

	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return domain.Account{}, err
	}

	if err := mutate(&account, amountDecimal); err != nil {
		return domain.Account{}, err
	}

	return s.repo.Save(ctx, account)
}
