package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

type petModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	OwnerID      int64     `gorm:"column:owner_id;index"`
	Name         string    `gorm:"column:name"`
	Species      string    `gorm:"column:species"`
	Breed        *string   `gorm:"column:breed"`
	Age          *float64  `gorm:"column:age"`
	Weight       *float64  `gorm:"column:weight"`
	MedicalInfo  *string   `gorm:"column:medical_info"`
	SpecialNotes *string   `gorm:"column:special_notes"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (petModel) TableName() string { return "pets" }

func toDomainPet(m petModel) *domain.Pet {
	p := &domain.Pet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Species:   m.Species,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Breed != nil {
		p.Breed = *m.Breed
	}
	if m.Age != nil {
		p.Age = *m.Age
	}
	if m.Weight != nil {
		p.Weight = *m.Weight
	}
	if m.MedicalInfo != nil {
		p.MedicalInfo = *m.MedicalInfo
	}
	if m.SpecialNotes != nil {
		p.SpecialNotes = *m.SpecialNotes
	}
	return p
}

func toPetModel(p *domain.Pet) petModel {
	m := petModel{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Breed != "" {
		v := p.Breed
		m.Breed = &v
	}
	if p.Age > 0 {
		v := p.Age
		m.Age = &v
	}
	if p.Weight > 0 {
		v := p.Weight
		m.Weight = &v
	}
	if p.MedicalInfo != "" {
		v := p.MedicalInfo
		m.MedicalInfo = &v
	}
	if p.SpecialNotes != "" {
		v := p.SpecialNotes
		m.SpecialNotes = &v
	}
	return m
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	m := toPetModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPet(m)
	return nil
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var m petModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPet(m), nil
}

func (r *PetRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var rows []petModel
	tx := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPet(m))
	}
	return out, nil
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	m := toPetModel(p)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPet(m)
	return nil
}

func (r *PetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&petModel{}, id).Error
}
