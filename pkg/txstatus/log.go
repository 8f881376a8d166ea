package txstatus

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/pkg/swap"
)

const serviceName = "TransactionStatusService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the status Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// GetTransactionStatus wraps the service method with logging
func (ls *logService) GetTransactionStatus(ctx context.Context, id swap.Identifier) (res *Result, err error) {
	start := time.Now()

	ls.logger.Info("GetTransactionStatus started",
		zap.String("service", serviceName),
		zap.String("method", "GetTransactionStatus"),
		zap.String("identifier", id.String()),
	)

	defer func() {
		duration := time.Since(start)

		if err != nil {
			ls.logger.Error("GetTransactionStatus failed",
				zap.String("service", serviceName),
				zap.String("method", "GetTransactionStatus"),
				zap.String("identifier", id.String()),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return
		}

		ls.logger.Info("GetTransactionStatus completed",
			zap.String("service", serviceName),
			zap.String("method", "GetTransactionStatus"),
			zap.String("check_id", res.CheckID),
			zap.String("identifier", id.String()),
			zap.Int("sources", len(res.Logs)),
			zap.Int("errors", len(res.Errors)),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.GetTransactionStatus(ctx, id)
}
