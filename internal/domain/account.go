// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidOwner indicates that the account owner is missing or blank.
	ErrInvalidOwner = errors.New("account owner must not be blank")
	// ErrInvalidAccountNumber indicates that the account number is missing.
	ErrInvalidAccountNumber = errors.New("account number must not be empty")
	// ErrInvalidAmount indicates that the amount is missing, not a decimal number or not positive.
	ErrInvalidAmount = errors.New("amount must be a positive decimal number")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// balanceScale is the number of decimal places every stored balance carries.
const balanceScale = 2

// Account holds a single owner's balance.
//
// The balance never goes negative and always carries exactly two decimal
// places; every mutation goes through Deposit or Withdraw, which validate
// before touching the balance.
type Account struct {
	Number    string          `json:"number"`
	Owner     string          `json:"owner"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewAccount returns a zero-balance account with a fresh number for the given owner.
func NewAccount(owner string) (Account, error) {
	if strings.TrimSpace(owner) == "" {
		return Account{}, ErrInvalidOwner
	}

	return Account{
		Number:    uuid.NewString(),
		Owner:     owner,
		Balance:   decimal.Zero.Round(balanceScale),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Deposit adds the given positive amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	a.setBalance(a.Balance.Add(amount))

	return nil
}

// Withdraw subtracts the given positive amount from the balance.
//
// The sufficiency check precedes the mutation, so a failed withdraw
// leaves the balance untouched.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}

	a.setBalance(a.Balance.Sub(amount))

	return nil
}

// setBalance normalizes the balance to two decimal places, rounding half up.
func (a *Account) setBalance(balance decimal.Decimal) {
	a.Balance = balance.Round(balanceScale)
}
