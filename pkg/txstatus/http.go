package txstatus

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/swap-status/pkg/app/errors"
	apphttp "github.com/chainsafe/swap-status/pkg/app/http"
	"github.com/chainsafe/swap-status/pkg/swap"
)

// HTTP wraps the Service to provide HTTP endpoints
type HTTP struct {
	service Service
	logger  *zap.Logger
}

// RegisterRoutes registers the status endpoint on the given chi router
func RegisterRoutes(r chi.Router, service Service, logger *zap.Logger) {
	h := &HTTP{
		service: service,
		logger:  logger,
	}

	r.Get("/api/transaction_status", apphttp.HandleError(h.transactionStatus))
}

// transactionStatus handles GET /api/transaction_status?create_id=&initiator_source_address=
func (h *HTTP) transactionStatus(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()
	id := swap.Identifier{
		OrderID:          q.Get("create_id"),
		InitiatorAddress: q.Get("initiator_source_address"),
	}

	res, err := h.service.GetTransactionStatus(r.Context(), id)
	switch {
	case errors.Is(err, ErrMissingIdentifier):
		return apperrors.BadRequestError(err, "Either initiator_source_address or create_id must be provided")
	case errors.Is(err, ErrStoreUnavailable):
		return apperrors.DependencyFailureError(err, "order store unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.TimeoutError(err, "status check timed out")
	case err != nil:
		return apperrors.GeneralError(err)
	}

	h.logger.Debug("status check served",
		zap.String("check_id", res.CheckID),
		zap.Int("errors", len(res.Errors)),
	)
	apphttp.WriteJSON(w, http.StatusOK, res)
	return nil
}
