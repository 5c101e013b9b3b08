package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"petcare/internal/domain"
	"petcare/internal/pkg/cache"
)

var (
	ErrNotFound        = errors.New("service not found")
	ErrInvalidCategory = errors.New("invalid service category")
	ErrValidation      = errors.New("invalid service data")
)

const listCacheTTL = 5 * time.Minute

// ServiceRepositoryInterface covers the catalog storage operations.
type ServiceRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context, category string) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// Service serves the public catalog and the admin catalog management.
// Listings are cached per category; any admin write flushes the cache.
type Service struct {
	services ServiceRepositoryInterface
	cache    *cache.Cache
}

func NewService(services ServiceRepositoryInterface, c *cache.Cache) *Service {
	return &Service{services: services, cache: c}
}

func (s *Service) List(ctx context.Context, category string) ([]domain.Service, error) {
	if category != "" && !validCategory(category) {
		return nil, ErrInvalidCategory
	}

	key := listCacheKey(category)
	var cached []domain.Service
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	services, err := s.services.List(ctx, category)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, services, listCacheTTL)
	return services, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) Create(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Duration <= 0 || req.Price < 0 {
		return nil, ErrValidation
	}
	if !validCategory(req.Category) {
		return nil, ErrInvalidCategory
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	svc := &domain.Service{
		Name:        name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Capacity:    capacity,
		Category:    domain.ServiceCategory(req.Category),
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	s.flushListCache(ctx)
	return svc, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		svc.Name = name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrValidation
		}
		svc.Price = *req.Price
	}
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return nil, ErrValidation
		}
		svc.Duration = *req.Duration
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrValidation
		}
		svc.Capacity = *req.Capacity
	}
	if req.Category != nil {
		if !validCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		svc.Category = domain.ServiceCategory(*req.Category)
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.flushListCache(ctx)
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return err
	}
	s.flushListCache(ctx)
	return nil
}

func (s *Service) flushListCache(ctx context.Context) {
	keys := []string{listCacheKey("")}
	for _, c := range []domain.ServiceCategory{
		domain.CategoryGrooming,
		domain.CategoryTraining,
		domain.CategoryDaycare,
		domain.CategoryVeterinary,
	} {
		keys = append(keys, listCacheKey(string(c)))
	}
	_ = s.cache.Delete(ctx, keys...)
}

func listCacheKey(category string) string {
	if category == "" {
		return "catalog:services:all"
	}
	return fmt.Sprintf("catalog:services:%s", category)
}

func validCategory(category string) bool {
	switch domain.ServiceCategory(category) {
	case domain.CategoryGrooming, domain.CategoryTraining, domain.CategoryDaycare, domain.CategoryVeterinary:
		return true
	}
	return false
}
