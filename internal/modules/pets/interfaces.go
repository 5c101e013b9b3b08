package pets

import (
	"context"

	"petcare/internal/domain"
)

// PetRepositoryInterface covers the storage operations the pet service uses.
type PetRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Pet) error
	GetByID(ctx context.Context, id int64) (*domain.Pet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error)
	Update(ctx context.Context, p *domain.Pet) error
	Delete(ctx context.Context, id int64) error
}
