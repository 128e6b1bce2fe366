// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-ledger/money-transfer/internal/domain"
	"github.com/go-ledger/money-transfer/pkg/errorspkg"
	"github.com/go-ledger/money-transfer/pkg/jsonresponse"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, owner string) (domain.Account, error)
	Get(ctx context.Context, number string) (domain.Account, error)
	Deposit(ctx context.Context, number, amount string) (domain.Account, error)
	Withdraw(ctx context.Context, number, amount string) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	Owner string `json:"owner" binding:"required"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := h.service.Create(ctx, req.Owner)
	if err != nil {
		if err == domain.ErrInvalidOwner {
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type numberRequest struct {
	Number string `uri:"number" binding:"required"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req numberRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := h.service.Get(ctx, req.Number)
	if err != nil {
		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		case domain.ErrInvalidAccountNumber:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}

type updateBalanceRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

// Deposit handles http request to deposit money into an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.updateBalance(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.updateBalance(gctx, h.service.Withdraw)
}

func (h *Handler) updateBalance(
	gctx *gin.Context,
	update func(ctx context.Context, number, amount string) (domain.Account, error),
) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri numberRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	var req updateBalanceRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	account, err := update(ctx, uri.Number, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

			return
		case
			domain.ErrInvalidAmount,
			domain.ErrInvalidAccountNumber,
			domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{account}})
}
