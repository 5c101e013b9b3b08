package pets

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"petcare/internal/domain"
	"petcare/internal/pkg/validator"
)

// Service holds the business logic for a customer's pets. Every operation
// checks the pet belongs to the acting user; admins bypass the check.
type Service struct {
	pets PetRepositoryInterface
}

func NewService(pets PetRepositoryInterface) *Service {
	return &Service{pets: pets}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreatePetRequest) (*domain.Pet, error) {
	name := strings.TrimSpace(req.Name)
	species := strings.TrimSpace(req.Species)
	if name == "" || species == "" {
		return nil, ErrValidation
	}

	pet := &domain.Pet{
		OwnerID:      ownerID,
		Name:         name,
		Species:      species,
		Breed:        req.Breed,
		Age:          req.Age,
		Weight:       req.Weight,
		MedicalInfo:  req.MedicalInfo,
		SpecialNotes: req.SpecialNotes,
	}
	if fieldErrs := validator.Validate(pet); fieldErrs != nil {
		return nil, ErrValidation
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	return s.pets.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, petID, actorID int64, actorRole string) (*domain.Pet, error) {
	pet, err := s.loadOwned(ctx, petID, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) Update(ctx context.Context, petID, actorID int64, actorRole string, req UpdatePetRequest) (*domain.Pet, error) {
	pet, err := s.loadOwned(ctx, petID, actorID, actorRole)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		pet.Name = name
	}
	if req.Species != nil {
		species := strings.TrimSpace(*req.Species)
		if species == "" {
			return nil, ErrValidation
		}
		pet.Species = species
	}
	if req.Breed != nil {
		pet.Breed = *req.Breed
	}
	if req.Age != nil {
		if *req.Age < 0 {
			return nil, ErrValidation
		}
		pet.Age = *req.Age
	}
	if req.Weight != nil {
		if *req.Weight < 0 {
			return nil, ErrValidation
		}
		pet.Weight = *req.Weight
	}
	if req.MedicalInfo != nil {
		pet.MedicalInfo = *req.MedicalInfo
	}
	if req.SpecialNotes != nil {
		pet.SpecialNotes = *req.SpecialNotes
	}

	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (s *Service) Delete(ctx context.Context, petID, actorID int64, actorRole string) error {
	if _, err := s.loadOwned(ctx, petID, actorID, actorRole); err != nil {
		return err
	}
	return s.pets.Delete(ctx, petID)
}

func (s *Service) loadOwned(ctx context.Context, petID, actorID int64, actorRole string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actorRole != string(domain.RoleAdmin) && pet.OwnerID != actorID {
		return nil, ErrNotOwner
	}
	return pet, nil
}
