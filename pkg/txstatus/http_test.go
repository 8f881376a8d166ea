package txstatus_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/pkg/swap"
	"github.com/chainsafe/swap-status/pkg/swapstate"
	"github.com/chainsafe/swap-status/pkg/txstatus"
	"github.com/chainsafe/swap-status/pkg/txstatus/mocks"
)

func newStatusTestServer(svc txstatus.Service) http.Handler {
	r := chi.NewRouter()
	txstatus.RegisterRoutes(r, svc, zap.NewNop())
	return r
}

type errorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var got errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	return got
}

func TestStatusHTTP_MissingIdentifier_ReturnsBadRequest(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		GetTransactionStatus(mock.Anything, swap.Identifier{}).
		Return(nil, txstatus.ErrMissingIdentifier).Once()
	handler := newStatusTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/transaction_status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	got := decodeError(t, rec)
	if got.Error != "Either initiator_source_address or create_id must be provided" {
		t.Fatalf("unexpected error message %q", got.Error)
	}
	if got.Code != http.StatusBadRequest {
		t.Fatalf("expected code %d, got %d", http.StatusBadRequest, got.Code)
	}
}

func TestStatusHTTP_StoreUnavailable_ReturnsBadGateway(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		GetTransactionStatus(mock.Anything, swap.Identifier{OrderID: "order-1"}).
		Return(nil, errors.Join(txstatus.ErrStoreUnavailable, errors.New("dial tcp: refused"))).Once()
	handler := newStatusTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/transaction_status?create_id=order-1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected status %d, got %d", http.StatusBadGateway, rec.Code)
	}
	if got := decodeError(t, rec); got.Error != "order store unavailable" {
		t.Fatalf("unexpected error message %q", got.Error)
	}
}

func TestStatusHTTP_Timeout_ReturnsGatewayTimeout(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		GetTransactionStatus(mock.Anything, mock.Anything).
		Return(nil, context.DeadlineExceeded).Once()
	handler := newStatusTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/transaction_status?create_id=order-1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected status %d, got %d", http.StatusGatewayTimeout, rec.Code)
	}
}

func TestStatusHTTP_UnexpectedError_HidesDetails(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		GetTransactionStatus(mock.Anything, mock.Anything).
		Return(nil, errors.New("secret internal detail")).Once()
	handler := newStatusTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/transaction_status?create_id=order-1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
	if got := decodeError(t, rec); got.Error != "Internal Server Error" {
		t.Fatalf("unexpected error message %q", got.Error)
	}
}

func TestStatusHTTP_ByAddress_ResponseCheck(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().
		GetTransactionStatus(mock.Anything, swap.Identifier{InitiatorAddress: "bc1qexample"}).
		Return(&txstatus.Result{
			CheckID:    "check-1",
			Identifier: "initiator_source_address 'bc1qexample'",
			Logs: map[string]*txstatus.SourceLogs{
				"staging-cobi-v2": {RawLogs: []string{"line"}, Analysis: "ok"},
			},
			Status: &txstatus.StatusSummary{
				SourceChain: "bitcoin_testnet",
				Flags:       swapstate.Flags{IsMatched: true, UserInitiated: true},
			},
			Errors: []string{},
		}, nil).Once()
	handler := newStatusTestServer(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/transaction_status?initiator_source_address=bc1qexample", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type %q, got %q", "application/json", ct)
	}

	var got struct {
		CheckID string `json:"check_id"`
		Logs    map[string]struct {
			RawLogs  []string `json:"raw_logs"`
			Analysis string   `json:"analysis"`
		} `json:"logs"`
		Status map[string]any `json:"status"`
		Errors []string       `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.CheckID != "check-1" {
		t.Fatalf("expected check id %q, got %q", "check-1", got.CheckID)
	}
	if got.Logs["staging-cobi-v2"].Analysis != "ok" {
		t.Fatalf("unexpected logs %+v", got.Logs)
	}
	if got.Status["is_matched"] != true || got.Status["user_initiated"] != true || got.Status["cobi_redeemed"] != false {
		t.Fatalf("expected flags flattened into status, got %v", got.Status)
	}
	if got.Errors == nil {
		t.Fatal("expected errors to be an empty list, not null")
	}
}
