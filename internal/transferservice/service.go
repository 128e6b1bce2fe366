// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-ledger/money-transfer/internal/domain"
	"github.com/go-ledger/money-transfer/pkg/lockpkg"
)

// AccountRepo provides account data access needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type AccountRepo interface {
	Save(ctx context.Context, account domain.Account) (domain.Account, error)
	Get(ctx context.Context, number string) (domain.Account, error)
}

// Repo provides transfer data access layer interface needed by transfer service layer.
type Repo interface {
	Save(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error)
	Get(ctx context.Context, id string) (domain.Transfer, error)
	List(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.Transfer, error)
}

// Service facilitates transfer service layer logic.
//
// A transfer holds both accounts' critical sections for its whole
// read-apply-write sequence, so it serializes with every other balance
// mutation touching either account.
type Service struct {
	accountRepo  AccountRepo
	transferRepo Repo
	locks        *lockpkg.KeyedMutex
}

// New returns transfer service struct to manage transfer bussines logic.
//
// The locks instance must be the one shared with the account service.
func New(ar AccountRepo, tr Repo, locks *lockpkg.KeyedMutex) *Service {
	return &Service{
		accountRepo:  ar,
		transferRepo: tr,
		locks:        locks,
	}
}

// Transfer atomically moves amount between the two given accounts and
// persists the transfer record.
//
// Both accounts are looked up before any mutation; the distinctness check
// therefore only fires once both accounts exist. Both account saves happen
// before the transfer record is saved, so a persisted record always has
// its balance changes applied. A destination save failing after the origin
// save leaves the store inconsistent; the error is logged and propagated.
func (s *Service) Transfer(ctx context.Context, originNumber, destinationNumber, amount string) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	if originNumber == "" || destinationNumber == "" {
		return domain.Transfer{}, domain.ErrInvalidAccountNumber
	}

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.Transfer{}, domain.ErrInvalidAmount
	}

	s.locks.LockPair(originNumber, destinationNumber)
	defer s.locks.UnlockPair(originNumber, destinationNumber)

	origin, err := s.accountRepo.Get(ctx, originNumber)
	if err != nil {
		return domain.Transfer{}, err
	}

	destination, err := s.accountRepo.Get(ctx, destinationNumber)
	if err != nil {
		return domain.Transfer{}, err
	}

	transfer, err := domain.NewTransfer(&origin, &destination, amountDecimal)
	if err != nil {
		return domain.Transfer{}, err
	}

	if err := transfer.Apply(); err != nil {
		return domain.Transfer{}, err
	}

	if _, err := s.accountRepo.Save(ctx, origin); err != nil {
		return domain.Transfer{}, err
	}

	if _, err := s.accountRepo.Save(ctx, destination); err != nil {
		l.Error().Err(err).Msg("destination save failed after origin save, store left inconsistent")
		return domain.Transfer{}, err
	}

	return s.transferRepo.Save(ctx, *transfer)
}

// Get returns the transfer with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Transfer, error) {
	if id == "" {
		return domain.Transfer{}, domain.ErrTransferNotFound
	}

	return s.transferRepo.Get(ctx, id)
}

// List returns transfers referencing the given account, newest first.
func (s *Service) List(ctx context.Context, accountNumber string, pageSize, pageID int32) ([]domain.Transfer, error) {
	if accountNumber == "" {
		return nil, domain.ErrInvalidAccountNumber
	}

	limit := pageSize
	offset := (pageID - 1) * pageSize

	return s.transferRepo.List(ctx, accountNumber, limit, offset)
}
