// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-ledger/money-transfer/internal/domain"
	"github.com/go-ledger/money-transfer/pkg/dbpkg"
	"github.com/go-ledger/money-transfer/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const saveQuery = `
INSERT INTO
    accounts (number, owner, balance, created_at)
VALUES
    ($1, $2, $3, $4)
ON CONFLICT (number) DO UPDATE
SET balance = EXCLUDED.balance
RETURNING number, owner, balance, created_at
`

// Save upserts the account by number and returns the stored copy.
//
// The upsert is a single statement, so each save is atomic per account.
func (r *RepoPGS) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, saveQuery,
		account.Number,
		account.Owner,
		account.Balance,
		account.CreatedAt,
	)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.Owner,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		// The schema CHECK backstops the entity-level invariant.
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	number, owner, balance, created_at
FROM accounts
WHERE number = $1
`

// Get returns the account with the given number.
func (r *RepoPGS) Get(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, number)

	var a domain.Account

	err := row.Scan(
		&a.Number,
		&a.Owner,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}
