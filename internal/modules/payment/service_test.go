package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"petcare/internal/domain"
)

type mockBookingReader struct {
	booking *domain.Booking
}

func (m *mockBookingReader) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	if m.booking == nil || m.booking.ID != id {
		return nil, errors.New("not found")
	}
	return m.booking, nil
}

type mockConfirmer struct {
	confirmed []int64
}

func (m *mockConfirmer) ConfirmFromPayment(ctx context.Context, bookingID int64) error {
	m.confirmed = append(m.confirmed, bookingID)
	return nil
}

type mockServiceReader struct {
	svc *domain.Service
}

func (m *mockServiceReader) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	if m.svc == nil || m.svc.ID != id {
		return nil, errors.New("not found")
	}
	return m.svc, nil
}

type mockPaymentRepo struct {
	created           *domain.Payment
	payment           *domain.Payment
	updateStatusCalls int
	markPaidCalls     int
	markPaidChanged   bool
	pendingCalls      int
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	m.created = p
	return nil
}

func (m *mockPaymentRepo) GetByInvID(ctx context.Context, invID int64) (*domain.Payment, error) {
	if m.payment == nil || m.payment.InvID != invID {
		return nil, errors.New("not found")
	}
	return m.payment, nil
}

func (m *mockPaymentRepo) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	if m.payment == nil || m.payment.BookingID != bookingID {
		return nil, errors.New("not found")
	}
	return m.payment, nil
}

func (m *mockPaymentRepo) MarkPaidIdempotent(ctx context.Context, invID int64, rawCallback string, paidAt time.Time) (bool, error) {
	m.markPaidCalls++
	return m.markPaidChanged, nil
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, invID int64, status domain.PaymentStatus, rawCallback, failureReason string) error {
	m.updateStatusCalls++
	return nil
}

func (m *mockPaymentRepo) UpdateStatusPendingIfNotPaid(ctx context.Context, invID int64) error {
	m.pendingCalls++
	return nil
}

func testConfig() Config {
	return Config{MerchantID: "petcare", Password1: "p1", Password2: "p2", IsTest: "1"}
}

func TestInitPayment_AmountComesFromServicePrice(t *testing.T) {
	repo := &mockPaymentRepo{}
	bookings := &mockBookingReader{booking: &domain.Booking{ID: 1, UserID: 42, ServiceID: 3, Status: domain.BookingPending, StartTime: time.Now().Add(time.Hour)}}
	services := &mockServiceReader{svc: &domain.Service{ID: 3, Name: "Full groom", Price: 45}}

	svc := NewService(repo, bookings, services, &mockConfirmer{}, testConfig(), nil)

	resp, err := svc.InitPayment(context.Background(), 42, InitPaymentRequest{BookingID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Amount != "45.00" {
		t.Fatalf("expected amount 45.00, got %s", resp.Amount)
	}
	if repo.created == nil || repo.created.Amount != "45.00" {
		t.Fatalf("expected persisted payment with amount 45.00")
	}
	if resp.PaymentURL == "" {
		t.Fatalf("expected payment url")
	}
}

func TestInitPayment_OwnershipAndStatus(t *testing.T) {
	repo := &mockPaymentRepo{}
	bookings := &mockBookingReader{booking: &domain.Booking{ID: 1, UserID: 42, ServiceID: 3, Status: domain.BookingPending}}
	services := &mockServiceReader{svc: &domain.Service{ID: 3, Price: 45}}
	svc := NewService(repo, bookings, services, &mockConfirmer{}, testConfig(), nil)

	if _, err := svc.InitPayment(context.Background(), 99, InitPaymentRequest{BookingID: 1}); !errors.Is(err, ErrNotBookingOwner) {
		t.Fatalf("expected ErrNotBookingOwner, got %v", err)
	}

	bookings.booking.Status = domain.BookingConfirmed
	if _, err := svc.InitPayment(context.Background(), 42, InitPaymentRequest{BookingID: 1}); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestHandleResultCallback_ConfirmsBooking(t *testing.T) {
	repo := &mockPaymentRepo{
		payment:         &domain.Payment{InvID: 99, Amount: "45.00", BookingID: 1},
		markPaidChanged: true,
	}
	confirmer := &mockConfirmer{}
	svc := NewService(repo, &mockBookingReader{}, &mockServiceReader{}, confirmer, testConfig(), nil)

	sig := svc.signatureForResult("45.00", 99, nil)
	ack, err := svc.HandleResultCallback(context.Background(), "45.00", 99, sig, nil, "raw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ack != "OK99" {
		t.Fatalf("expected ack OK99, got %s", ack)
	}
	if len(confirmer.confirmed) != 1 || confirmer.confirmed[0] != 1 {
		t.Fatalf("expected booking 1 confirmed, got %v", confirmer.confirmed)
	}
}

func TestHandleResultCallback_InvalidSignature(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{InvID: 99, Amount: "45.00", BookingID: 1}}
	svc := NewService(repo, &mockBookingReader{}, &mockServiceReader{}, &mockConfirmer{}, testConfig(), nil)

	_, err := svc.HandleResultCallback(context.Background(), "45.00", 99, "WRONG", nil, "raw")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if repo.markPaidCalls != 0 {
		t.Fatalf("expected MarkPaidIdempotent not called")
	}
}

func TestHandleResultCallback_AmountMismatch(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{InvID: 99, Amount: "100.00", BookingID: 1}}
	svc := NewService(repo, &mockBookingReader{}, &mockServiceReader{}, &mockConfirmer{}, testConfig(), nil)

	sig := svc.signatureForResult("50.00", 99, nil)
	_, err := svc.HandleResultCallback(context.Background(), "50.00", 99, sig, nil, "raw")
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}
	if repo.updateStatusCalls == 0 {
		t.Fatalf("expected UpdateStatus called to mark failed")
	}
}

func TestHandleSuccessCallback_EquivalentNumericAmounts(t *testing.T) {
	repo := &mockPaymentRepo{payment: &domain.Payment{InvID: 77, Amount: "300.00", BookingID: 1}}
	svc := NewService(repo, &mockBookingReader{}, &mockServiceReader{}, &mockConfirmer{}, testConfig(), nil)

	sig := svc.signatureForSuccess("300", 77, nil)
	ok, err := svc.HandleSuccessCallback(context.Background(), "300", 77, sig, nil)
	if err != nil || !ok {
		t.Fatalf("expected success for equivalent numeric values, got ok=%v err=%v", ok, err)
	}
	if repo.pendingCalls != 1 {
		t.Fatalf("expected pending update")
	}
}
