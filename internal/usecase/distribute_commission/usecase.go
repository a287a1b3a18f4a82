package distribute_commission

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	dealerRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/dealer"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-PropertyService/internal/integrations/notification"
)

// UseCase распределение комиссии по цепочке дилеров
type UseCase struct {
	propertyRepo   PropertyRepository
	dealerRepo     DealerRepository
	commissionRepo CommissionRepository
	hierarchy      Hierarchy
	settings       SettingsProvider
	txManager      TransactionManager
	notifier       Notifier
	metrics        Metrics
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	propertyRepo PropertyRepository,
	dealerRepo DealerRepository,
	commissionRepo CommissionRepository,
	hierarchy Hierarchy,
	settings SettingsProvider,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		propertyRepo:   propertyRepo,
		dealerRepo:     dealerRepo,
		commissionRepo: commissionRepo,
		hierarchy:      hierarchy,
		settings:       settings,
		txManager:      txManager,
		notifier:       notifier,
		metrics:        metrics,
		logger:         logger,
	}
}

// Execute начисляет комиссии дилеру объекта (уровень 1) и его предкам, не больше 3 уровней.
// Цепочка обрывается на корне или на первом ненастроенном уровне.
// Повторный вызов начисляет повторно: операция не идемпотентна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DistributeCommission: property=%d, sale=%s", req.PropertyID, req.SaleAmount)

	if !req.IsAdmin {
		uc.logger.Warn("DistributeCommission: access denied for property=%d", req.PropertyID)
		return nil, ErrAccessDenied
	}
	if !req.SaleAmount.IsPositive() {
		return nil, fmt.Errorf("%w: saleAmount must be positive", ErrInvalidInput)
	}

	// Проценты читаются один раз, вся цепочка считается по одному снапшоту
	settings, err := uc.settings.Snapshot(ctx)
	if err != nil {
		uc.logger.Error("DistributeCommission: failed to read settings: %v", err)
		return nil, fmt.Errorf("%w: failed to read settings: %v", ErrInternal, err)
	}

	resp := &Response{PropertyID: req.PropertyID, SaleAmount: req.SaleAmount, Total: decimal.Zero}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		resp.Payouts = resp.Payouts[:0]
		resp.Total = decimal.Zero

		property, err := uc.propertyRepo.GetByIDForUpdate(txCtx, req.PropertyID)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return fmt.Errorf("%w: property id=%d", ErrPropertyOrDealerNotFound, req.PropertyID)
			}
			return fmt.Errorf("%w: failed to lock property: %v", ErrInternal, err)
		}
		if property.DealerID == nil {
			return fmt.Errorf("%w: property id=%d has no dealer", ErrPropertyOrDealerNotFound, req.PropertyID)
		}

		dealer, err := uc.dealerRepo.GetByID(txCtx, *property.DealerID)
		if err != nil {
			if errors.Is(err, dealerRepo.ErrDealerNotFound) {
				return fmt.Errorf("%w: dealer id=%d", ErrPropertyOrDealerNotFound, *property.DealerID)
			}
			return fmt.Errorf("%w: failed to get dealer: %v", ErrInternal, err)
		}

		ancestors, err := uc.hierarchy.AncestorChain(txCtx, dealer.ID, domain.MaxCommissionLevels-1)
		if err != nil {
			return fmt.Errorf("%w: failed to walk dealer chain: %v", ErrInternal, err)
		}
		chain := append([]*domain.Dealer{dealer}, ancestors...)

		for i, current := range chain {
			level := i + 1
			if level > domain.MaxCommissionLevels {
				break
			}

			pct, ok := settings.CommissionPercentage(level)
			if !ok {
				uc.logger.Info("DistributeCommission: level %d is not configured, chain stops", level)
				break
			}

			amount := domain.CommissionAmount(req.SaleAmount, pct)
			created, err := uc.commissionRepo.Create(txCtx, &domain.Commission{
				DealerID:   current.ID,
				PropertyID: property.ID,
				Amount:     amount,
				Level:      level,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to create commission level %d: %v", ErrInternal, level, err)
			}

			if err := uc.dealerRepo.AddCommission(txCtx, current.ID, amount); err != nil {
				return fmt.Errorf("%w: failed to credit dealer id=%d: %v", ErrInternal, current.ID, err)
			}

			resp.Payouts = append(resp.Payouts, Payout{
				CommissionID: created.ID,
				DealerID:     current.ID,
				Level:        level,
				Percentage:   pct,
				Amount:       amount,
				CreatedAt:    created.CreatedAt,
			})
			resp.Total = resp.Total.Add(amount)
		}
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindInternal {
			uc.logger.Error("DistributeCommission: property=%d: %v", req.PropertyID, err)
		} else {
			uc.logger.Warn("DistributeCommission: property=%d: %v", req.PropertyID, err)
		}
		return nil, err
	}

	for _, p := range resp.Payouts {
		uc.metrics.AddCommission(strconv.Itoa(p.Level), p.Amount.InexactFloat64())
	}

	// Каждый дилер получает собственное уведомление о начислении
	for _, p := range resp.Payouts {
		if err := uc.notifier.Notify(ctx, notification.NewEvent(notification.EventCommissionPaid, p.DealerID, map[string]any{
			"commission_id": p.CommissionID,
			"property_id":   req.PropertyID,
			"level":         p.Level,
			"percentage":    p.Percentage.String(),
			"amount":        p.Amount.String(),
			"sale_amount":   req.SaleAmount.String(),
		})); err != nil {
			uc.logger.Error("DistributeCommission: failed to notify dealer id=%d about commission id=%d: %v", p.DealerID, p.CommissionID, err)
		}
	}

	uc.logger.Info("DistributeCommission: property=%d, payouts=%d, total=%s", req.PropertyID, len(resp.Payouts), resp.Total)
	return resp, nil
}
