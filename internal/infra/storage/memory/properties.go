package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/domain"
	propertyRepo "github.com/m04kA/SMC-PropertyService/internal/infra/storage/property"
)

type PropertyRepository struct {
	s *Store
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	defer r.s.lock(ctx)()

	r.s.seq.property++
	now := time.Now().UTC()
	property.ID = r.s.seq.property
	property.CreatedAt = now
	property.UpdatedAt = now
	r.s.properties[property.ID] = *property

	out := *property
	return &out, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	defer r.s.lock(ctx)()

	p, ok := r.s.properties[id]
	if !ok {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	return &p, nil
}

// GetByIDForUpdate is GetByID: the transaction already holds the whole store.
func (r *PropertyRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Property, error) {
	return r.GetByID(ctx, id)
}

func (r *PropertyRepository) UpdateStatus(ctx context.Context, id int64, status domain.PropertyStatus) error {
	defer r.s.lock(ctx)()

	p, ok := r.s.properties[id]
	if !ok {
		return propertyRepo.ErrPropertyNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	r.s.properties[id] = p
	return nil
}

func (r *PropertyRepository) UpdateStatusIfCurrent(ctx context.Context, id int64, from, to domain.PropertyStatus) error {
	defer r.s.lock(ctx)()

	p, ok := r.s.properties[id]
	if !ok || p.Status != from {
		return propertyRepo.ErrStatusConflict
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	r.s.properties[id] = p
	return nil
}
