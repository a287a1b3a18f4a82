package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/payment"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
)

// UseCase use case подтверждения оплаты бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	propertyRepo PropertyRepository
	paymentRepo  PaymentRepository
	gateway      PaymentGateway
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	propertyRepo PropertyRepository,
	paymentRepo PaymentRepository,
	gateway PaymentGateway,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		paymentRepo:  paymentRepo,
		gateway:      gateway,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute подтверждает PENDING бронирование после успешной оплаты.
// Бронирование -> CONFIRMED, объект -> BOOKED и платеж создаются атомарно.
// Провайдер платежей опрашивается до открытия транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmPayment: booking=%d, ref=%s", req.BookingID, req.ExternalRef)

	ref := strings.TrimSpace(req.ExternalRef)
	if ref == "" {
		return nil, fmt.Errorf("%w: externalRef is required", ErrInvalidInput)
	}

	// 1. Бронирование должно существовать и ждать оплаты
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("ConfirmPayment: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ConfirmPayment: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	if !booking.CanBeConfirmed() {
		uc.logger.Warn("ConfirmPayment: booking id=%d is %s", req.BookingID, booking.Status)
		return nil, ErrInvalidBookingState
	}

	// 2. Проверяем оплату у провайдера
	paid, err := uc.gateway.IsPaymentSucceeded(ctx, ref)
	if err != nil {
		uc.logger.Error("ConfirmPayment: gateway error for ref=%s: %v", ref, err)
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	if !paid {
		uc.logger.Warn("ConfirmPayment: payment ref=%s is not completed", ref)
		return nil, ErrPaymentNotCompleted
	}

	var payment *domain.Payment

	// 3. Атомарно: бронирование, объект, платеж
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		property, err := uc.propertyRepo.GetByIDForUpdate(txCtx, booking.PropertyID)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
		}

		// Статус перечитывается под блокировкой: конкурентное подтверждение или просрочка могли успеть раньше
		locked, err := uc.bookingRepo.GetByIDForUpdate(txCtx, booking.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to lock booking: %v", ErrInternal, err)
		}
		if !locked.CanBeConfirmed() {
			return ErrInvalidBookingState
		}

		if !property.IsFree() {
			return fmt.Errorf("%w: property status is %s", ErrPropertyNotAvailable, property.Status)
		}

		err = uc.bookingRepo.UpdateStatusIfCurrent(txCtx, booking.ID,
			[]domain.BookingStatus{domain.BookingStatusPending}, domain.BookingStatusConfirmed)
		if err != nil {
			// истекло или отменено конкурентно
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrInvalidBookingState
			}
			return fmt.Errorf("%w: failed to confirm booking: %v", ErrInternal, err)
		}

		err = uc.propertyRepo.UpdateStatusIfCurrent(txCtx, property.ID, domain.PropertyStatusFree, domain.PropertyStatusBooked)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrStatusConflict) {
				return ErrPropertyNotAvailable
			}
			return fmt.Errorf("%w: failed to book property: %v", ErrInternal, err)
		}

		created, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID:   booking.ID,
			Amount:      property.Price,
			ExternalRef: ref,
		})
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentExists) {
				return ErrInvalidBookingState
			}
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		payment = created
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			uc.logger.Error("ConfirmPayment: booking id=%d: %v", req.BookingID, err)
		} else {
			uc.logger.Warn("ConfirmPayment: booking id=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.metrics.IncBookingTransition(string(domain.BookingStatusConfirmed), 1)
	if err := uc.notifier.Notify(ctx, notification.NewEvent(notification.EventBookingConfirmed, booking.ID, map[string]any{
		"property_id":  booking.PropertyID,
		"user_id":      booking.UserID,
		"payment_id":   payment.ID,
		"amount":       payment.Amount.String(),
		"external_ref": payment.ExternalRef,
	})); err != nil {
		uc.logger.Error("ConfirmPayment: failed to publish event for booking id=%d: %v", booking.ID, err)
	}

	uc.logger.Info("ConfirmPayment: booking id=%d confirmed, payment id=%d, amount=%s", booking.ID, payment.ID, payment.Amount)

	return &Response{
		BookingID:     booking.ID,
		PropertyID:    booking.PropertyID,
		BookingStatus: string(domain.BookingStatusConfirmed),
		PaymentID:     payment.ID,
		Amount:        payment.Amount,
		ExternalRef:   payment.ExternalRef,
		PaidAt:        payment.CreatedAt,
	}, nil
}
