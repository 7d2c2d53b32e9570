package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lincyaw/storefront/internal/domain/order"
	"github.com/lincyaw/storefront/internal/domain/shared"
)

// Service drives the payment lifecycle of an order against an external
// gateway. Amount checks are done in integer minor units so a settled
// amount can be compared exactly, never via floats.
type Service struct {
	orderRepo order.Repository
	gateway   Gateway
	logger    *zap.Logger
}

// NewService creates a payment application service
func NewService(orderRepo order.Repository, gateway Gateway, logger *zap.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		gateway:   gateway,
		logger:    logger,
	}
}

// Initialize starts a payment attempt for the given order. The order
// must belong to the requesting user and must not already be paid. On
// gateway failure the order is rolled back to unpaid so the customer
// can retry.
func (s *Service) Initialize(ctx context.Context, userID uuid.UUID, req *InitializePaymentRequest) (*InitializePaymentResponse, error) {
	ord, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if !ord.BelongsTo(userID) {
		return nil, shared.ErrForbidden
	}

	if err := ord.BeginPaymentInitialization(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}

	reference := newReference(ord.ID)
	total := ord.TotalMoney()

	result, err := s.gateway.InitializeTransaction(ctx, InitializeRequest{
		AmountMinor: total.MinorUnits(),
		Currency:    string(total.Currency()),
		Email:       req.Email,
		Reference:   reference,
		CallbackURL: req.CallbackURL,
	})
	if err != nil {
		s.logger.Error("payment initialization failed",
			zap.String("order_id", ord.ID.String()),
			zap.Error(err))
		ord.AbortPaymentInitialization()
		if saveErr := s.orderRepo.Save(ctx, ord); saveErr != nil {
			s.logger.Error("failed to roll back payment state",
				zap.String("order_id", ord.ID.String()),
				zap.Error(saveErr))
		}
		return nil, shared.NewDomainError("PAYMENT_GATEWAY_ERROR", "failed to initialize payment")
	}

	if err := ord.AttachGatewayReference(result.Reference); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}

	s.logger.Info("payment initialized",
		zap.String("order_id", ord.ID.String()),
		zap.String("reference", result.Reference),
		zap.Int64("amount_minor", total.MinorUnits()))

	return &InitializePaymentResponse{
		OrderID:          ord.ID,
		Reference:        result.Reference,
		AuthorizationURL: result.AuthorizationURL,
		AccessCode:       result.AccessCode,
		PaymentStatus:    string(ord.PaymentStatus),
	}, nil
}

// Verify confirms a payment attempt by its gateway reference. Calling
// it again for an order that is already paid is a no-op that returns
// the current state; paidAt is never touched twice.
func (s *Service) Verify(ctx context.Context, req *VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	ord, err := s.orderRepo.FindByReference(ctx, req.Reference)
	if err != nil {
		return nil, err
	}

	if ord.IsPaid {
		s.logger.Info("verification skipped, order already paid",
			zap.String("order_id", ord.ID.String()),
			zap.String("reference", req.Reference))
		return toVerifyResponse(ord, req.Reference), nil
	}

	if err := ord.BeginVerification(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}

	result, err := s.gateway.VerifyTransaction(ctx, req.Reference)
	if err != nil {
		s.logger.Error("gateway verification call failed",
			zap.String("reference", req.Reference),
			zap.Error(err))
		s.failVerification(ctx, ord, "gateway unreachable")
		return nil, shared.NewDomainError("PAYMENT_GATEWAY_ERROR", "failed to verify payment")
	}

	if result.Status != TransactionStatusSuccess {
		reason := fmt.Sprintf("gateway status %s", result.Status)
		s.failVerification(ctx, ord, reason)
		return nil, shared.NewDomainError("PAYMENT_NOT_SUCCESSFUL", reason)
	}

	expected := ord.TotalMoney().MinorUnits()
	if result.AmountMinor != expected {
		reason := fmt.Sprintf("amount mismatch: gateway settled %d, order total %d", result.AmountMinor, expected)
		s.logger.Warn("payment amount mismatch",
			zap.String("order_id", ord.ID.String()),
			zap.String("reference", req.Reference),
			zap.Int64("settled_minor", result.AmountMinor),
			zap.Int64("expected_minor", expected))
		s.failVerification(ctx, ord, reason)
		return nil, shared.NewDomainError("PAYMENT_AMOUNT_MISMATCH", "settled amount does not match order total")
	}

	if err := ord.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}

	s.logger.Info("payment verified",
		zap.String("order_id", ord.ID.String()),
		zap.String("reference", req.Reference),
		zap.Int64("amount_minor", result.AmountMinor))

	return toVerifyResponse(ord, req.Reference), nil
}

// failVerification records a failed attempt; the order stays
// retryable. Save errors are logged, the caller's error wins.
func (s *Service) failVerification(ctx context.Context, ord *order.Order, reason string) {
	if err := ord.FailVerification(reason); err != nil {
		s.logger.Error("failed to record verification failure",
			zap.String("order_id", ord.ID.String()),
			zap.Error(err))
		return
	}
	if err := s.orderRepo.Save(ctx, ord); err != nil {
		s.logger.Error("failed to save verification failure",
			zap.String("order_id", ord.ID.String()),
			zap.Error(err))
	}
}

func toVerifyResponse(ord *order.Order, reference string) *VerifyPaymentResponse {
	resp := &VerifyPaymentResponse{
		OrderID:       ord.ID,
		Reference:     reference,
		PaymentStatus: string(ord.PaymentStatus),
		IsPaid:        ord.IsPaid,
	}
	if ord.PaidAt != nil {
		formatted := ord.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &formatted
	}
	return resp
}

// newReference builds a human-traceable gateway reference from the
// order id plus a random suffix so retried attempts don't collide.
func newReference(orderID uuid.UUID) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("ord_%s_%s", strings.ReplaceAll(orderID.String(), "-", "")[:12], suffix)
}
