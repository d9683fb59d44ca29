package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	inventoryapp "github.com/bookdist/backend/internal/application/inventory"
	"github.com/bookdist/backend/internal/interfaces/http/dto"
	"github.com/bookdist/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStockRouter() (*gin.Engine, *inventoryapp.StockService) {
	batches := testutil.NewMemoryBatchRepo()
	transactions := testutil.NewMemoryTxnRepo()
	scope := inventoryapp.NewNoOpTransactionScope(
		batches, transactions, testutil.NewMemoryAllocationRepo(),
		testutil.NewMemoryOrderRepo(), testutil.NewMemoryRequirementRepo(),
		testutil.NewMemoryPostingRepo(),
	)
	service := inventoryapp.NewStockService(scope, batches, transactions)

	h := NewStockHandler(service)
	r := gin.New()
	r.POST("/stock/receive", h.Receive)
	r.POST("/stock/reserve", h.Reserve)
	r.POST("/stock/unreserve", h.Unreserve)
	r.POST("/stock/allocate", h.Allocate)
	r.POST("/stock/allocations/reverse", h.ReverseAllocation)
	r.POST("/stock/receipts/reverse", h.ReverseReceipt)
	r.GET("/stock/:book_id/free", h.FreeStock)
	r.GET("/stock/:book_id/batches", h.Batches)
	r.GET("/stock/:book_id/movements", h.Movements)
	return r, service
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func receiveBody(bookID uuid.UUID, quantity int64, sourceRef string) map[string]interface{} {
	return map[string]interface{}{
		"book_id":    bookID,
		"quantity":   decimal.NewFromInt(quantity),
		"unit_cost":  decimal.NewFromInt(5),
		"source_ref": sourceRef,
	}
}

func TestStockHandlerReceive(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, resp := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 100, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)

	batch := resp.Data.(map[string]interface{})
	assert.Equal(t, "GR-001", batch["source_ref"])
	assert.Equal(t, "100", batch["available_quantity"])
}

func TestStockHandlerReceive_DuplicateSourceRef(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, _ := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 100, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 50, "GR-001"))
	assert.Equal(t, http.StatusConflict, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeConflict, resp.Error.Code)
}

func TestStockHandlerReceive_InvalidBody(t *testing.T) {
	r, _ := newStockRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/stock/receive", map[string]interface{}{
		"quantity": 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestStockHandlerReserve_BeyondFreeStock(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, _ := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 30, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	reserve := map[string]interface{}{
		"book_id":  bookID,
		"quantity": decimal.NewFromInt(50),
		"ref_type": "SALES_ORDER",
		"ref_id":   "SO-001",
	}
	w, resp := doJSON(t, r, http.MethodPost, "/stock/reserve", reserve)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientFreeStock, resp.Error.Code)
}

func TestStockHandlerReserveUnreserve(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, _ := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 100, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	reserve := map[string]interface{}{
		"book_id":  bookID,
		"quantity": decimal.NewFromInt(40),
		"ref_type": "SALES_ORDER",
		"ref_id":   "SO-001",
	}
	w, _ = doJSON(t, r, http.MethodPost, "/stock/reserve", reserve)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/stock/"+bookID.String()+"/free", nil)
	require.Equal(t, http.StatusOK, w.Code)
	free := resp.Data.(map[string]interface{})
	assert.Equal(t, "100", free["available"])
	assert.Equal(t, "40", free["reserved"])
	assert.Equal(t, "60", free["free"])

	w, _ = doJSON(t, r, http.MethodPost, "/stock/unreserve", reserve)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, resp = doJSON(t, r, http.MethodGet, "/stock/"+bookID.String()+"/free", nil)
	require.Equal(t, http.StatusOK, w.Code)
	free = resp.Data.(map[string]interface{})
	assert.Equal(t, "100", free["free"])
}

func TestStockHandlerAllocate_PartialIssue(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, _ := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 30, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	allocate := map[string]interface{}{
		"requester_ref": "SCHOOL-001",
		"book_id":       bookID,
		"quantity":      decimal.NewFromInt(50),
	}
	w, resp := doJSON(t, r, http.MethodPost, "/stock/allocate", allocate)
	require.Equal(t, http.StatusCreated, w.Code)

	allocation := resp.Data.(map[string]interface{})
	assert.Equal(t, "50", allocation["requested_quantity"])
	assert.Equal(t, "30", allocation["issued_quantity"])
	assert.Equal(t, "20", allocation["short_quantity"])
}

func TestStockHandlerReverseAllocation(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, _ := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 100, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	allocate := map[string]interface{}{
		"requester_ref": "SCHOOL-001",
		"book_id":       bookID,
		"quantity":      decimal.NewFromInt(60),
	}
	w, _ = doJSON(t, r, http.MethodPost, "/stock/allocate", allocate)
	require.Equal(t, http.StatusCreated, w.Code)

	reverse := map[string]interface{}{
		"requester_ref": "SCHOOL-001",
		"book_id":       bookID,
	}
	w, _ = doJSON(t, r, http.MethodPost, "/stock/allocations/reverse", reverse)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/stock/"+bookID.String()+"/free", nil)
	require.Equal(t, http.StatusOK, w.Code)
	free := resp.Data.(map[string]interface{})
	assert.Equal(t, "100", free["available"])
}

func TestStockHandlerReverseReceipt_AfterConsumption(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, _ := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 100, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	allocate := map[string]interface{}{
		"requester_ref": "SCHOOL-001",
		"book_id":       bookID,
		"quantity":      decimal.NewFromInt(10),
	}
	w, _ = doJSON(t, r, http.MethodPost, "/stock/allocate", allocate)
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/stock/receipts/reverse", map[string]interface{}{
		"source_ref": "GR-001",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeStockConsumed, resp.Error.Code)
}

func TestStockHandlerFreeStock_InvalidID(t *testing.T) {
	r, _ := newStockRouter()

	w, resp := doJSON(t, r, http.MethodGet, "/stock/not-a-uuid/free", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func TestStockHandlerMovements(t *testing.T) {
	r, _ := newStockRouter()
	bookID := uuid.New()

	w, _ := doJSON(t, r, http.MethodPost, "/stock/receive", receiveBody(bookID, 100, "GR-001"))
	require.Equal(t, http.StatusCreated, w.Code)

	reserve := map[string]interface{}{
		"book_id":  bookID,
		"quantity": decimal.NewFromInt(10),
		"ref_type": "SALES_ORDER",
		"ref_id":   "SO-001",
	}
	w, _ = doJSON(t, r, http.MethodPost, "/stock/reserve", reserve)
	require.Equal(t, http.StatusNoContent, w.Code)

	w, resp := doJSON(t, r, http.MethodGet, "/stock/"+bookID.String()+"/movements?page_size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	movements := resp.Data.([]interface{})
	assert.Len(t, movements, 2)
}
