package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	dealerRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/dealer"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
	"github.com/m04kA/SMC-PropertyService/internal/service/properties/models"
)

// Service сервис объектов недвижимости
type Service struct {
	propertyRepo PropertyRepository
	dealerRepo   DealerRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса объектов
func NewService(propertyRepo PropertyRepository, dealerRepo DealerRepository, logger Logger) *Service {
	return &Service{
		propertyRepo: propertyRepo,
		dealerRepo:   dealerRepo,
		logger:       logger,
	}
}

// Create создает объект в статусе FREE
func (s *Service) Create(ctx context.Context, req *models.CreatePropertyRequest) (*models.PropertyResponse, error) {
	s.logger.Info("Create: owner=%d, dealer=%v, price=%s", req.OwnerID, req.DealerID, req.Price)

	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	if req.DealerID != nil {
		if _, err := s.dealerRepo.GetByID(ctx, *req.DealerID); err != nil {
			if errors.Is(err, dealerRepo.ErrDealerNotFound) {
				s.logger.Warn("Create: dealer id=%d not found", *req.DealerID)
				return nil, ErrDealerNotFound
			}
			s.logger.Error("Create: repository error for dealer id=%d: %v", *req.DealerID, err)
			return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
	}

	created, err := s.propertyRepo.Create(ctx, &domain.Property{
		OwnerID:  req.OwnerID,
		DealerID: req.DealerID,
		Title:    strings.TrimSpace(req.Title),
		Status:   domain.PropertyStatusFree,
		Price:    req.Price.Round(domain.MoneyScale),
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created property id=%d", created.ID)
	return models.FromDomainProperty(created), nil
}

// GetByID получает объект по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PropertyResponse, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("GetByID: property id=%d not found", id)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("GetByID: repository error for property id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainProperty(property), nil
}

// SetStatus ручная смена статуса объекта, только для администратора.
// Бронирования не затрагиваются.
func (s *Service) SetStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.PropertyResponse, error) {
	s.logger.Info("SetStatus: property id=%d to status=%s", id, req.Status)

	if !req.IsAdmin {
		s.logger.Warn("SetStatus: access denied for property id=%d", id)
		return nil, ErrAccessDenied
	}

	status := domain.PropertyStatus(strings.ToUpper(req.Status))
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown property status %q", ErrInvalidInput, req.Status)
	}

	if err := s.propertyRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("SetStatus: property id=%d not found", id)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("SetStatus: repository error for property id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetStatus: property id=%d is now %s", id, status)
	return s.GetByID(ctx, id)
}
