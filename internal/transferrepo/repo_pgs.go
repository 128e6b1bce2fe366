// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-ledger/money-transfer/internal/domain"
	"github.com/go-ledger/money-transfer/pkg/dbpkg"
	"github.com/go-ledger/money-transfer/pkg/errorspkg"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transfer RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const saveQuery = `
INSERT INTO
    transfers (id, origin_number, destination_number, amount, created_at)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING id, origin_number, destination_number, amount, created_at
`

// Save persists the transfer record and returns the stored copy.
//
// Records are immutable audit entries, so this is an insert, not an upsert.
func (r *RepoPGS) Save(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, saveQuery,
		transfer.ID,
		transfer.OriginNumber,
		transfer.DestinationNumber,
		transfer.Amount,
		transfer.CreatedAt,
	)

	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.OriginNumber,
		&t.DestinationNumber,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transfers_origin_number_fkey", "transfers_destination_number_fkey":
				return t, domain.ErrAccountNotFound
			case "transfers_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, origin_number, destination_number, amount, created_at
FROM transfers
WHERE id = $1
`

// Get returns the transfer with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.OriginNumber,
		&t.DestinationNumber,
		&t.Amount,
		&t.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransferNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT
	id, origin_number, destination_number, amount, created_at
FROM transfers
WHERE
    origin_number = $1 OR destination_number = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`

// List returns transfers referencing the given account, newest first.
func (r *RepoPGS) List(ctx context.Context, accountNumber string, limit, offset int32) ([]domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountNumber, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transfer{}

	for rows.Next() {
		var t domain.Transfer
		if err := rows.Scan(
			&t.ID,
			&t.OriginNumber,
			&t.DestinationNumber,
			&t.Amount,
			&t.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
