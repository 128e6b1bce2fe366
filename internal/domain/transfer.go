package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransferNotFound indicates that the transfer is not found.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrMissingAccount indicates that the transfer origin or destination account is missing.
	ErrMissingAccount = errors.New("transfer requires both origin and destination accounts")
	// ErrSameAccountTransfer indicates a transfer between one and the same account.
	ErrSameAccountTransfer = errors.New("origin and destination accounts must be distinct")
)

// Transfer records one balance movement between two accounts.
//
// A transfer built with NewTransfer holds references to the two live
// accounts and moves the amount between them via Apply. Transfers loaded
// from a repository carry the persisted record fields only.
type Transfer struct {
	ID                string          `json:"id"`
	OriginNumber      string          `json:"origin_number"`
	DestinationNumber string          `json:"destination_number"`
	Amount            decimal.Decimal `json:"amount"`
	CreatedAt         time.Time       `json:"created_at"`

	origin      *Account
	destination *Account
}

// NewTransfer validates and returns a transfer of amount between two distinct accounts.
func NewTransfer(origin, destination *Account, amount decimal.Decimal) (*Transfer, error) {
	if origin == nil || destination == nil {
		return nil, ErrMissingAccount
	}

	if origin.Number == destination.Number {
		return nil, ErrSameAccountTransfer
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	return &Transfer{
		ID:                uuid.NewString(),
		OriginNumber:      origin.Number,
		DestinationNumber: destination.Number,
		Amount:            amount.Round(balanceScale),
		CreatedAt:         time.Now().UTC(),
		origin:            origin,
		destination:       destination,
	}, nil
}

// Apply moves the amount from the origin to the destination account.
//
// NewTransfer has already established that the amount is positive, so the
// withdraw is the only step that can fail; it validates sufficiency before
// mutating, which leaves both accounts untouched on failure. The deposit
// that follows a successful withdraw cannot fail.
func (t *Transfer) Apply() error {
	if err := t.origin.Withdraw(t.Amount); err != nil {
		return err
	}

	return t.destination.Deposit(t.Amount)
}
