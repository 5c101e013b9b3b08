package repository

import (
	"context"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.TrainerAvailability, error) {
	var rows []domain.TrainerAvailability
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Order("day_of_week").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Replace swaps a trainer's whole weekly schedule in one transaction.
func (r *AvailabilityRepository) Replace(ctx context.Context, trainerID int64, entries []domain.TrainerAvailability) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trainer_id = ?", trainerID).
			Delete(&domain.TrainerAvailability{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].TrainerID = trainerID
			if err := tx.Create(&entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
