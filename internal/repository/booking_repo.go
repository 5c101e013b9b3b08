package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"petcare/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	UserID      int64      `gorm:"column:user_id;index"`
	PetID       int64      `gorm:"column:pet_id;index"`
	ServiceID   int64      `gorm:"column:service_id;index"`
	TrainerID   *int64     `gorm:"column:trainer_id;index"`
	StartTime   time.Time  `gorm:"column:start_time;index"`
	EndTime     time.Time  `gorm:"column:end_time"`
	Status      string     `gorm:"column:status;index"`
	Notes       *string    `gorm:"column:notes"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	var notes string
	if m.Notes != nil {
		notes = *m.Notes
	}

	return &domain.Booking{
		ID:          m.ID,
		UserID:      m.UserID,
		PetID:       m.PetID,
		ServiceID:   m.ServiceID,
		TrainerID:   m.TrainerID,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Status:      domain.BookingStatus(m.Status),
		Notes:       notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	var notes *string
	if b.Notes != "" {
		v := b.Notes
		notes = &v
	}

	return bookingModel{
		ID:          b.ID,
		UserID:      b.UserID,
		PetID:       b.PetID,
		ServiceID:   b.ServiceID,
		TrainerID:   b.TrainerID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		Notes:       notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		CancelledAt: b.CancelledAt,
	}
}

// BusySlot is an occupied interval used by the availability endpoint.
type BusySlot struct {
	Start time.Time
	End   time.Time
}

// BookingDetails is a joined row for booking lists: the booking plus the
// service and pet names the dashboard shows.
type BookingDetails struct {
	ID          int64     `gorm:"column:id"`
	Status      string    `gorm:"column:status"`
	StartTime   time.Time `gorm:"column:start_time"`
	EndTime     time.Time `gorm:"column:end_time"`
	Notes       *string   `gorm:"column:notes"`
	ServiceID   int64     `gorm:"column:service_id"`
	ServiceName string    `gorm:"column:service_name"`
	Price       float64   `gorm:"column:price"`
	Duration    int       `gorm:"column:duration"`
	PetID       int64     `gorm:"column:pet_id"`
	PetName     string    `gorm:"column:pet_name"`
	PetSpecies  string    `gorm:"column:pet_species"`
}

// CreateBatch inserts the base booking together with all recurring
// occurrences in one transaction, so a failed insert leaves nothing behind.
func (r *BookingRepository) CreateBatch(ctx context.Context, bookings []*domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range bookings {
			m := toBookingModel(b)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			*b = *toDomainBooking(m)
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// CheckAvailability reports whether [start, end) is free of active
// bookings. Half-open semantics: rows with start_time < end AND
// end_time > start conflict. Cancelled bookings never block a slot.
func (r *BookingRepository) CheckAvailability(ctx context.Context, trainerID *int64, start, end time.Time) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time < ? AND end_time > ?", end, start)
	if trainerID != nil {
		q = q.Where("trainer_id = ?", *trainerID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == 0, nil
}

// GetBusySlots returns occupied intervals between from and to, optionally
// scoped to one trainer.
func (r *BookingRepository) GetBusySlots(ctx context.Context, trainerID *int64, from, to time.Time) ([]BusySlot, error) {
	q := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Select("start_time, end_time").
		Where("status <> ?", string(domain.BookingCancelled)).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time")
	if trainerID != nil {
		q = q.Where("trainer_id = ?", *trainerID)
	}

	var rows []bookingModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]BusySlot, 0, len(rows))
	for _, m := range rows {
		out = append(out, BusySlot{Start: m.StartTime, End: m.EndTime})
	}
	return out, nil
}

func (r *BookingRepository) GetUserBookingsWithDetails(ctx context.Context, userID int64, limit, offset int) ([]BookingDetails, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var rows []BookingDetails
	err := r.db.WithContext(ctx).
		Table("bookings b").
		Select(`b.id, b.status, b.start_time, b.end_time, b.notes,
			s.id AS service_id, s.name AS service_name, s.price, s.duration,
			p.id AS pet_id, p.name AS pet_name, p.species AS pet_species`).
		Joins("JOIN services s ON s.id = b.service_id").
		Joins("JOIN pets p ON p.id = b.pet_id").
		Where("b.user_id = ?", userID).
		Order("b.start_time DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTrainerSchedule returns a trainer's bookings in [from, to), oldest
// first, with pet and service rows preloaded.
func (r *BookingRepository) GetTrainerSchedule(ctx context.Context, trainerID int64, from, to time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("trainer_id = ?", trainerID).
		Where("start_time >= ? AND start_time < ?", from, to).
		Where("status <> ?", string(domain.BookingCancelled)).
		Order("start_time").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) ListAll(ctx context.Context, status string, limit, offset int) ([]domain.Booking, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []bookingModel
	if err := q.Order("start_time DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, bookingID int64, status string) error {
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == string(domain.BookingCancelled) {
		updates["cancelled_at"] = time.Now()
	}
	return r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ?", bookingID).
		Updates(updates).Error
}

// GetConfirmedStartingBetween returns confirmed bookings whose start falls
// inside the window, used by the reminder job.
func (r *BookingRepository) GetConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	var rows []bookingModel
	err := r.db.WithContext(ctx).
		Where("status = ?", string(domain.BookingConfirmed)).
		Where("start_time BETWEEN ? AND ?", from, to).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// MarkCompletedBefore flips confirmed bookings that already ended to
// completed. Returns the number of rows changed.
func (r *BookingRepository) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("status = ?", string(domain.BookingConfirmed)).
		Where("end_time < ?", cutoff).
		Updates(map[string]any{
			"status":     string(domain.BookingCompleted),
			"updated_at": time.Now(),
		})
	return tx.RowsAffected, tx.Error
}
