package transferdelivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/go-ledger/money-transfer/internal/accountdelivery"
	"github.com/go-ledger/money-transfer/internal/domain"
	"github.com/go-ledger/money-transfer/pkg/errorspkg"
	"github.com/go-ledger/money-transfer/pkg/randompkg"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("amount", accountdelivery.ValidAmount); err != nil {
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

func newTestServer(service Service) *gin.Engine {
	server := gin.New()
	handler := NewHandler(service)

	server.POST("/transfers", handler.Create)
	server.GET("/transfers/:id", handler.Get)
	server.GET("/transfers", handler.List)

	return server
}

type transferResponse struct {
	Data struct {
		Transfer domain.Transfer `json:"transfer"`
	} `json:"data"`
	Error string `json:"error"`
}

func testTransfer(t *testing.T) (domain.Transfer, domain.Account, domain.Account) {
	t.Helper()

	origin, err := domain.NewAccount(randompkg.Owner())
	require.NoError(t, err)
	origin.Balance = decimal.RequireFromString("100.00")

	destination, err := domain.NewAccount(randompkg.Owner())
	require.NoError(t, err)

	transfer, err := domain.NewTransfer(&origin, &destination, decimal.RequireFromString("1.00"))
	require.NoError(t, err)

	return *transfer, origin, destination
}

func TestCreate(t *testing.T) {
	transfer, origin, destination := testTransfer(t)

	testCases := []struct {
		name           string
		requestBody    gin.H
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			requestBody: gin.H{
				"origin_number":      origin.Number,
				"destination_number": destination.Number,
				"amount":             "1.00",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(origin.Number), gomock.Eq(destination.Number), gomock.Eq("1.00")).
					Times(1).
					Return(transfer, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "MissingOriginNumber",
			requestBody: gin.H{
				"destination_number": destination.Number,
				"amount":             "1.00",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "MalformedAmount",
			requestBody: gin.H{
				"origin_number":      origin.Number,
				"destination_number": destination.Number,
				"amount":             "one",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "OriginNotFound",
			requestBody: gin.H{
				"origin_number":      origin.Number,
				"destination_number": destination.Number,
				"amount":             "1.00",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transfer{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name: "SameAccount",
			requestBody: gin.H{
				"origin_number":      origin.Number,
				"destination_number": origin.Number,
				"amount":             "1.00",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Eq(origin.Number), gomock.Eq(origin.Number), gomock.Eq("1.00")).
					Times(1).
					Return(domain.Transfer{}, domain.ErrSameAccountTransfer)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrSameAccountTransfer.Error(),
		},
		{
			name: "InsufficientBalance",
			requestBody: gin.H{
				"origin_number":      origin.Number,
				"destination_number": destination.Number,
				"amount":             "1000.00",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transfer{}, domain.ErrInsufficientBalance)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      domain.ErrInsufficientBalance.Error(),
		},
		{
			name: "InternalError",
			requestBody: gin.H{
				"origin_number":      origin.Number,
				"destination_number": destination.Number,
				"amount":             "1.00",
			},
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Transfer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Transfer{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newTestServer(service)
			recorder := httptest.NewRecorder()

			body, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			req, err := http.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var res transferResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

			if tc.wantError != "" {
				require.Equal(t, tc.wantError, res.Error)
			}

			if tc.wantStatusCode == http.StatusOK {
				require.Equal(t, transfer.ID, res.Data.Transfer.ID)
				require.Equal(t, transfer.OriginNumber, res.Data.Transfer.OriginNumber)
				require.Equal(t, transfer.DestinationNumber, res.Data.Transfer.DestinationNumber)
				require.True(t, transfer.Amount.Equal(res.Data.Transfer.Amount))
			}
		})
	}
}

func TestGet(t *testing.T) {
	transfer, _, _ := testTransfer(t)

	testCases := []struct {
		name           string
		id             string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			id:   transfer.ID,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(transfer.ID)).
					Times(1).
					Return(transfer, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NotFound",
			id:   transfer.ID,
			buildStubs: func(service *MockService) {
				service.EXPECT().
					Get(gomock.Any(), gomock.Eq(transfer.ID)).
					Times(1).
					Return(domain.Transfer{}, domain.ErrTransferNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrTransferNotFound.Error(),
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newTestServer(service)
			recorder := httptest.NewRecorder()

			req, err := http.NewRequest(http.MethodGet, "/transfers/"+tc.id, nil)
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			var res transferResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

			if tc.wantError != "" {
				require.Equal(t, tc.wantError, res.Error)
			}
		})
	}
}

func TestList(t *testing.T) {
	transfer, origin, _ := testTransfer(t)

	testCases := []struct {
		name           string
		query          string
		buildStubs     func(service *MockService)
		wantStatusCode int
		wantCount      int
	}{
		{
			name:  "OK",
			query: fmt.Sprintf("account=%s&page_id=1&page_size=10", origin.Number),
			buildStubs: func(service *MockService) {
				service.EXPECT().
					List(gomock.Any(), gomock.Eq(origin.Number), gomock.Eq(int32(10)), gomock.Eq(int32(1))).
					Times(1).
					Return([]domain.Transfer{transfer}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantCount:      1,
		},
		{
			name:  "MissingAccount",
			query: "page_id=1&page_size=10",
			buildStubs: func(service *MockService) {
				service.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:  "PageSizeTooLarge",
			query: fmt.Sprintf("account=%s&page_id=1&page_size=500", origin.Number),
			buildStubs: func(service *MockService) {
				service.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			server := newTestServer(service)
			recorder := httptest.NewRecorder()

			req, err := http.NewRequest(http.MethodGet, "/transfers?"+tc.query, nil)
			require.NoError(t, err)

			server.ServeHTTP(recorder, req)

			require.Equal(t, tc.wantStatusCode, recorder.Code)

			if tc.wantStatusCode == http.StatusOK {
				var res struct {
					Data struct {
						Transfers []domain.Transfer `json:"transfers"`
					} `json:"data"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
				require.Len(t, res.Data.Transfers, tc.wantCount)
			}
		})
	}
}
