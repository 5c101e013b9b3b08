package reminders

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"petcare/internal/domain"
	"petcare/internal/pkg/mailer"
)

type BookingStore interface {
	GetConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error)
	MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type ServiceReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

type Notifier interface {
	NotifyBookingReminder(ctx context.Context, userID, bookingID int64, start time.Time) error
}

// Job runs the periodic background work: reminder emails about an hour
// before a confirmed booking starts, and sweeping finished bookings to
// completed.
type Job struct {
	bookings BookingStore
	users    UserReader
	services ServiceReader
	mail     mailer.Mailer
	notifier Notifier

	cron *cron.Cron

	mu       sync.Mutex
	reminded map[int64]time.Time
}

func New(bookings BookingStore, users UserReader, services ServiceReader, mail mailer.Mailer, notifier Notifier) *Job {
	return &Job{
		bookings: bookings,
		users:    users,
		services: services,
		mail:     mail,
		notifier: notifier,
		reminded: make(map[int64]time.Time),
	}
}

func (j *Job) Start() error {
	j.cron = cron.New()
	if _, err := j.cron.AddFunc("* * * * *", j.remindUpcoming); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("*/10 * * * *", j.completeFinished); err != nil {
		return err
	}
	j.cron.Start()
	log.Println("reminder scheduler started")
	return nil
}

func (j *Job) Stop() {
	if j.cron != nil {
		j.cron.Stop()
	}
}

func (j *Job) remindUpcoming() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now()
	bookings, err := j.bookings.GetConfirmedStartingBetween(ctx, now.Add(55*time.Minute), now.Add(65*time.Minute))
	if err != nil {
		log.Printf("reminders: fetching upcoming bookings failed: %v", err)
		return
	}

	for _, b := range bookings {
		if j.alreadyReminded(b.ID) {
			continue
		}

		user, err := j.users.GetByID(ctx, b.UserID)
		if err != nil {
			log.Printf("reminders: user lookup failed booking_id=%d err=%v", b.ID, err)
			continue
		}
		svc, err := j.services.GetByID(ctx, b.ServiceID)
		if err != nil {
			log.Printf("reminders: service lookup failed booking_id=%d err=%v", b.ID, err)
			continue
		}

		if err := j.mail.SendBookingReminder(ctx, user.Email, user.Name, svc.Name, b.StartTime.Format("2006-01-02 15:04")); err != nil {
			log.Printf("reminders: email failed booking_id=%d err=%v", b.ID, err)
			continue
		}
		if j.notifier != nil {
			_ = j.notifier.NotifyBookingReminder(ctx, b.UserID, b.ID, b.StartTime)
		}
		j.markReminded(b.ID)
		log.Printf("reminders: sent booking_id=%d email=%s", b.ID, user.Email)
	}
}

func (j *Job) completeFinished() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.bookings.MarkCompletedBefore(ctx, time.Now())
	if err != nil {
		log.Printf("reminders: completing finished bookings failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("reminders: marked %d bookings completed", n)
	}
	j.pruneReminded()
}

func (j *Job) alreadyReminded(bookingID int64) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	_, ok := j.reminded[bookingID]
	return ok
}

func (j *Job) markReminded(bookingID int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.reminded[bookingID] = time.Now()
}

// pruneReminded drops dedupe entries older than a day so the map does not
// grow forever.
func (j *Job) pruneReminded() {
	cutoff := time.Now().Add(-24 * time.Hour)
	j.mu.Lock()
	defer j.mu.Unlock()
	for id, at := range j.reminded {
		if at.Before(cutoff) {
			delete(j.reminded, id)
		}
	}
}
