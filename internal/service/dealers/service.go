package dealers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	dealerRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/dealer"
	"github.com/m04kA/SMC-PropertyService/internal/service/dealers/models"
)

// Количество попыток подобрать незанятый реферальный код
const maxCodeAttempts = 5

// Service сервис иерархии дилеров
type Service struct {
	dealerRepo DealerRepository
	codes      CodeGenerator
	logger     Logger
}

// NewService создает новый экземпляр сервиса дилеров
func NewService(dealerRepo DealerRepository, logger Logger) *Service {
	return &Service{
		dealerRepo: dealerRepo,
		codes:      UUIDCodeGenerator{},
		logger:     logger,
	}
}

// WithCodeGenerator подменяет генератор реферальных кодов
func (s *Service) WithCodeGenerator(codes CodeGenerator) *Service {
	s.codes = codes
	return s
}

// GetByID получает дилера по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Dealer, error) {
	dealer, err := s.dealerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dealerRepo.ErrDealerNotFound) {
			s.logger.Warn("GetByID: dealer id=%d not found", id)
			return nil, ErrDealerNotFound
		}
		s.logger.Error("GetByID: repository error for dealer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return dealer, nil
}

// AncestorChain возвращает до maxLevels предков дилера, ближайший первым.
// Обход итеративный по карте смежности, загруженной один раз за вызов.
func (s *Service) AncestorChain(ctx context.Context, dealerID int64, maxLevels int) ([]*domain.Dealer, error) {
	forest, err := s.loadForest(ctx, "AncestorChain")
	if err != nil {
		return nil, err
	}
	if _, ok := forest.Get(dealerID); !ok {
		s.logger.Warn("AncestorChain: dealer id=%d not found", dealerID)
		return nil, ErrDealerNotFound
	}

	chain := forest.Ancestors(dealerID, maxLevels)
	s.logger.Info("AncestorChain: dealer id=%d, levels=%d, found=%d", dealerID, maxLevels, len(chain))
	return chain, nil
}

// BuildSubtree строит дерево дилера глубиной maxDepth (корень на глубине 1) с агрегатами
func (s *Service) BuildSubtree(ctx context.Context, dealerID int64, maxDepth int) (*domain.DealerNode, error) {
	if maxDepth < 1 {
		return nil, fmt.Errorf("%w: depth must be positive, got %d", ErrInvalidInput, maxDepth)
	}
	if maxDepth > domain.MaxSubtreeDepth {
		s.logger.Warn("BuildSubtree: depth=%d exceeds limit %d", maxDepth, domain.MaxSubtreeDepth)
		return nil, fmt.Errorf("%w: depth %d exceeds %d", ErrTreeTooDeep, maxDepth, domain.MaxSubtreeDepth)
	}

	forest, err := s.loadForest(ctx, "BuildSubtree")
	if err != nil {
		return nil, err
	}

	tree, err := forest.Subtree(dealerID, maxDepth, domain.MaxSubtreeNodes)
	if err != nil {
		s.logger.Warn("BuildSubtree: dealer id=%d: %v", dealerID, err)
		return nil, err
	}

	s.logger.Info("BuildSubtree: dealer id=%d, depth=%d, nodes=%d", dealerID, maxDepth, tree.TotalDescendantCount)
	return tree, nil
}

// Register создает дилера в статусе PENDING.
// Родитель определяется по реферальному коду один раз и больше не меняется.
func (s *Service) Register(ctx context.Context, req *models.RegisterDealerRequest) (*domain.Dealer, error) {
	s.logger.Info("Register: user=%d, referralCode=%v", req.UserID, req.ReferralCode)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	if _, err := s.dealerRepo.GetByUserID(ctx, req.UserID); err == nil {
		s.logger.Warn("Register: user=%d is already a dealer", req.UserID)
		return nil, ErrDealerAlreadyExists
	} else if !errors.Is(err, dealerRepo.ErrDealerNotFound) {
		s.logger.Error("Register: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	var parentID *int64
	if req.ReferralCode != nil && strings.TrimSpace(*req.ReferralCode) != "" {
		code := strings.ToUpper(strings.TrimSpace(*req.ReferralCode))
		parent, err := s.dealerRepo.GetByReferralCode(ctx, code)
		if err != nil {
			if errors.Is(err, dealerRepo.ErrDealerNotFound) {
				s.logger.Warn("Register: referral code %s not found", code)
				return nil, ErrInvalidReferralCode
			}
			s.logger.Error("Register: repository error for code %s: %v", code, err)
			return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
		}
		if parent.Status == domain.DealerStatusRejected {
			s.logger.Warn("Register: referral code %s belongs to rejected dealer id=%d", code, parent.ID)
			return nil, ErrInvalidReferralCode
		}
		parentID = &parent.ID
	}

	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		created, err := s.dealerRepo.Create(ctx, &domain.Dealer{
			UserID:       req.UserID,
			ParentID:     parentID,
			ReferralCode: s.codes.Generate(),
			Status:       domain.DealerStatusPending,
		})
		switch {
		case err == nil:
			s.logger.Info("Register: created dealer id=%d for user=%d, parent=%v", created.ID, req.UserID, parentID)
			return created, nil
		case errors.Is(err, dealerRepo.ErrReferralCodeTaken):
			s.logger.Warn("Register: referral code collision, attempt %d/%d", attempt, maxCodeAttempts)
		case errors.Is(err, dealerRepo.ErrDealerExists):
			s.logger.Warn("Register: user=%d registered concurrently", req.UserID)
			return nil, ErrDealerAlreadyExists
		default:
			s.logger.Error("Register: repository error for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
		}
	}

	return nil, fmt.Errorf("%w: Register - no free referral code after %d attempts", ErrInternal, maxCodeAttempts)
}

// UpdateStatus одобряет или отклоняет заявку дилера. Доступно только администратору.
func (s *Service) UpdateStatus(ctx context.Context, dealerID int64, req *models.UpdateStatusRequest) (*domain.Dealer, error) {
	s.logger.Info("UpdateStatus: dealer id=%d to status=%s", dealerID, req.Status)

	if !req.IsAdmin {
		s.logger.Warn("UpdateStatus: access denied for dealer id=%d", dealerID)
		return nil, ErrAccessDenied
	}

	next := domain.DealerStatus(strings.ToUpper(req.Status))
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: unknown dealer status %q", ErrInvalidInput, req.Status)
	}

	dealer, err := s.GetByID(ctx, dealerID)
	if err != nil {
		return nil, err
	}

	if !dealer.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: dealer id=%d cannot move %s -> %s", dealerID, dealer.Status, next)
		return nil, ErrInvalidDealerState
	}

	if err := s.dealerRepo.UpdateStatusIfCurrent(ctx, dealerID, dealer.Status, next); err != nil {
		if errors.Is(err, dealerRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: dealer id=%d status changed concurrently", dealerID)
			return nil, ErrInvalidDealerState
		}
		s.logger.Error("UpdateStatus: repository error for dealer id=%d: %v", dealerID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	dealer.Status = next
	s.logger.Info("UpdateStatus: dealer id=%d is now %s", dealerID, next)
	return dealer, nil
}

func (s *Service) loadForest(ctx context.Context, op string) (*domain.DealerForest, error) {
	all, err := s.dealerRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("%s: failed to load dealers: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return domain.NewDealerForest(all), nil
}
