// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-ledger/money-transfer/internal/domain"
	"github.com/go-ledger/money-transfer/pkg/errorspkg"
	"github.com/go-ledger/money-transfer/pkg/jsonresponse"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, originNumber, destinationNumber, amount string) (domain.Transfer, error)
	Get(ctx context.Context, id string) (domain.Transfer, error)
	List(ctx context.Context, accountNumber string, pageSize, pageID int32) ([]domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type data struct {
	Transfer domain.Transfer `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

type createRequest struct {
	OriginNumber      string `json:"origin_number" binding:"required"`
	DestinationNumber string `json:"destination_number" binding:"required"`
	Amount            string `json:"amount" binding:"required,amount"`
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	transfer, err := h.service.Transfer(ctx, req.OriginNumber, req.DestinationNumber, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))

			return
		case
			domain.ErrInvalidAmount,
			domain.ErrInvalidAccountNumber,
			domain.ErrMissingAccount,
			domain.ErrSameAccountTransfer,
			domain.ErrInsufficientBalance:
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{transfer}})
}

type getRequest struct {
	ID string `uri:"id" binding:"required"`
}

// Get handles http request to get a transfer record.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	transfer, err := h.service.Get(ctx, req.ID)
	if err != nil {
		if err == domain.ErrTransferNotFound {
			gctx.JSON(http.StatusNotFound, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, response{Data: data{transfer}})
}

type listRequest struct {
	Account  string `form:"account" binding:"required"`
	PageID   int32  `form:"page_id" binding:"required,min=1"`
	PageSize int32  `form:"page_size" binding:"required,min=1,max=100"`
}

type dataTransfers struct {
	Transfers []domain.Transfer `json:"transfers"`
}

type responseTransfers struct {
	Data dataTransfers `json:"data,omitempty"`
}

// List handles http request to list transfers referencing an account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))

		return
	}

	transfers, err := h.service.List(ctx, req.Account, req.PageSize, req.PageID)
	if err != nil {
		if err == domain.ErrInvalidAccountNumber {
			gctx.JSON(http.StatusBadRequest, jsonresponse.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, jsonresponse.Error(errorspkg.ErrInternal))

		return
	}

	gctx.JSON(http.StatusOK, responseTransfers{Data: dataTransfers{transfers}})
}
