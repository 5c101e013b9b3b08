package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"petcare/internal/domain"
)

type fakeBookingStore struct {
	upcoming  []domain.Booking
	fetchErr  error
	completed int64
}

func (f *fakeBookingStore) GetConfirmedStartingBetween(_ context.Context, _, _ time.Time) ([]domain.Booking, error) {
	return f.upcoming, f.fetchErr
}

func (f *fakeBookingStore) MarkCompletedBefore(_ context.Context, _ time.Time) (int64, error) {
	return f.completed, nil
}

type fakeUserReader struct {
	users map[int64]*domain.User
}

func (f *fakeUserReader) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

type fakeServiceReader struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceReader) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, errors.New("service not found")
	}
	return s, nil
}

type recordingMailer struct {
	sent    []string
	sendErr error
}

func (m *recordingMailer) SendVerificationCode(_ context.Context, _, _ string) error {
	return nil
}

func (m *recordingMailer) SendBookingReminder(_ context.Context, email, _, _, _ string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, email)
	return nil
}

type recordingNotifier struct {
	bookingIDs []int64
}

func (n *recordingNotifier) NotifyBookingReminder(_ context.Context, _, bookingID int64, _ time.Time) error {
	n.bookingIDs = append(n.bookingIDs, bookingID)
	return nil
}

func newTestJob(store *fakeBookingStore, mail *recordingMailer, notifier *recordingNotifier) *Job {
	users := &fakeUserReader{users: map[int64]*domain.User{
		1: {ID: 1, Email: "ana@example.com", Name: "Ana"},
	}}
	services := &fakeServiceReader{services: map[int64]*domain.Service{
		10: {ID: 10, Name: "Dog Grooming"},
	}}
	return New(store, users, services, mail, notifier)
}

func TestRemindUpcomingSendsEmailAndNotification(t *testing.T) {
	start := time.Now().Add(time.Hour)
	store := &fakeBookingStore{upcoming: []domain.Booking{
		{ID: 42, UserID: 1, ServiceID: 10, StartTime: start, Status: domain.BookingConfirmed},
	}}
	mail := &recordingMailer{}
	notifier := &recordingNotifier{}
	job := newTestJob(store, mail, notifier)

	job.remindUpcoming()

	assert.Equal(t, []string{"ana@example.com"}, mail.sent)
	assert.Equal(t, []int64{42}, notifier.bookingIDs)
}

func TestRemindUpcomingDoesNotSendTwice(t *testing.T) {
	start := time.Now().Add(time.Hour)
	store := &fakeBookingStore{upcoming: []domain.Booking{
		{ID: 42, UserID: 1, ServiceID: 10, StartTime: start, Status: domain.BookingConfirmed},
	}}
	mail := &recordingMailer{}
	job := newTestJob(store, mail, &recordingNotifier{})

	job.remindUpcoming()
	job.remindUpcoming()

	assert.Len(t, mail.sent, 1)
}

func TestRemindUpcomingRetriesAfterMailFailure(t *testing.T) {
	start := time.Now().Add(time.Hour)
	store := &fakeBookingStore{upcoming: []domain.Booking{
		{ID: 42, UserID: 1, ServiceID: 10, StartTime: start, Status: domain.BookingConfirmed},
	}}
	mail := &recordingMailer{sendErr: errors.New("smtp down")}
	job := newTestJob(store, mail, &recordingNotifier{})

	job.remindUpcoming()
	assert.Empty(t, mail.sent)

	// a failed send is not recorded as reminded, the next run tries again
	mail.sendErr = nil
	job.remindUpcoming()
	assert.Equal(t, []string{"ana@example.com"}, mail.sent)
}

func TestRemindUpcomingSkipsUnknownUser(t *testing.T) {
	start := time.Now().Add(time.Hour)
	store := &fakeBookingStore{upcoming: []domain.Booking{
		{ID: 7, UserID: 999, ServiceID: 10, StartTime: start, Status: domain.BookingConfirmed},
	}}
	mail := &recordingMailer{}
	job := newTestJob(store, mail, &recordingNotifier{})

	job.remindUpcoming()

	assert.Empty(t, mail.sent)
}

func TestPruneRemindedDropsStaleEntries(t *testing.T) {
	job := newTestJob(&fakeBookingStore{}, &recordingMailer{}, &recordingNotifier{})
	job.reminded[1] = time.Now().Add(-48 * time.Hour)
	job.reminded[2] = time.Now()

	job.pruneReminded()

	assert.NotContains(t, job.reminded, int64(1))
	assert.Contains(t, job.reminded, int64(2))
}
