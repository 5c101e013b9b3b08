package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"petcare/internal/domain"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrAmountMismatch   = errors.New("amount mismatch")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingOwner  = errors.New("booking belongs to another user")
	ErrAlreadyPaid      = errors.New("booking already paid")
	ErrNotConfigured    = errors.New("payment gateway is not configured")
)

// Config carries the merchant credentials and callback URLs.
type Config struct {
	MerchantID string
	Password1  string
	Password2  string
	BaseURL    string
	ResultURL  string
	SuccessURL string
	IsTest     string
}

type Service struct {
	payments paymentRepo
	bookings bookingReader
	services serviceReader
	writer   bookingConfirmer
	loggerf  func(format string, args ...interface{})
	cfg      Config
}

func NewService(payments paymentRepo, bookings bookingReader, services serviceReader, writer bookingConfirmer, cfg Config, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://auth.robokassa.ru/Merchant/Index.aspx"
	}
	return &Service{
		payments: payments,
		bookings: bookings,
		services: services,
		writer:   writer,
		loggerf:  loggerf,
		cfg:      cfg,
	}
}

// InitPayment creates the payment intent for a pending booking. The amount
// always comes from the service price, never from the client.
func (s *Service) InitPayment(ctx context.Context, userID int64, req InitPaymentRequest) (*InitPaymentResponse, error) {
	if s.cfg.MerchantID == "" || s.cfg.Password1 == "" || s.cfg.Password2 == "" {
		return nil, ErrNotConfigured
	}

	booking, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	if booking.Status != domain.BookingPending {
		return nil, ErrAlreadyPaid
	}

	svc, err := s.services.GetByID(ctx, booking.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("service lookup failed: %w", err)
	}
	amount := fmt.Sprintf("%.2f", svc.Price)

	shpParams := map[string]string{
		"booking_id": strconv.FormatInt(booking.ID, 10),
		"service_id": strconv.FormatInt(booking.ServiceID, 10),
		"user_id":    strconv.FormatInt(userID, 10),
	}

	invID := time.Now().UnixNano()
	signature := s.signatureForInit(amount, invID, shpParams)

	u := url.Values{}
	u.Set("MerchantLogin", s.cfg.MerchantID)
	u.Set("OutSum", amount)
	u.Set("InvId", strconv.FormatInt(invID, 10))
	u.Set("Description", fmt.Sprintf("%s on %s", svc.Name, booking.StartTime.Format("2006-01-02 15:04")))
	u.Set("SignatureValue", signature)
	u.Set("IsTest", s.cfg.IsTest)
	if s.cfg.ResultURL != "" {
		u.Set("ResultURL", s.cfg.ResultURL)
	}
	if s.cfg.SuccessURL != "" {
		u.Set("SuccessURL", s.cfg.SuccessURL)
	}
	for k, v := range shpParams {
		u.Set("Shp_"+k, v)
	}
	paymentURL := s.cfg.BaseURL + "?" + u.Encode()

	metaRaw, _ := json.Marshal(shpParams)
	p := &domain.Payment{
		BookingID:  booking.ID,
		Amount:     amount,
		Currency:   "EUR",
		InvID:      invID,
		Status:     domain.PaymentStatusCreated,
		Signature:  signature,
		PaymentURL: paymentURL,
		Metadata:   string(metaRaw),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment failed: %w", err)
	}

	return &InitPaymentResponse{
		InvID:      invID,
		Amount:     amount,
		PaymentURL: paymentURL,
		Status:     string(domain.PaymentStatusCreated),
	}, nil
}

// HandleResultCallback is the server-to-server confirmation from the
// gateway. On a valid signature and matching amount the payment is marked
// paid exactly once and the booking flips to confirmed.
func (s *Service) HandleResultCallback(ctx context.Context, outSum string, invID int64, signature string, shpParams map[string]string, rawBody string) (string, error) {
	valid := strings.EqualFold(signature, s.signatureForResult(outSum, invID, shpParams))
	s.loggerf("level=info msg=payment result signature validation inv_id=%d signature_valid=%t", invID, valid)
	if !valid {
		_ = s.payments.UpdateStatus(ctx, invID, domain.PaymentStatusFailed, rawBody, "invalid signature")
		return "", ErrInvalidSignature
	}

	p, err := s.payments.GetByInvID(ctx, invID)
	if err != nil {
		return "", err
	}
	if !amountEqual(outSum, p.Amount) {
		reason := fmt.Sprintf("amount mismatch callback=%s expected=%s", outSum, p.Amount)
		_ = s.payments.UpdateStatus(ctx, invID, domain.PaymentStatusFailed, rawBody, reason)
		return "", ErrAmountMismatch
	}

	changed, err := s.payments.MarkPaidIdempotent(ctx, invID, rawBody, time.Now().UTC())
	if err != nil {
		return "", err
	}
	if !changed {
		s.loggerf("level=info msg=idempotent callback already paid inv_id=%d", invID)
	}

	if err := s.writer.ConfirmFromPayment(ctx, p.BookingID); err != nil {
		s.loggerf("level=error msg=failed to confirm booking from payment booking_id=%d err=%v", p.BookingID, err)
	}

	return "OK" + strconv.FormatInt(invID, 10), nil
}

// HandleSuccessCallback is the browser redirect after checkout. It only
// moves the payment to pending; the result callback is authoritative.
func (s *Service) HandleSuccessCallback(ctx context.Context, outSum string, invID int64, signature string, shpParams map[string]string) (bool, error) {
	valid := strings.EqualFold(signature, s.signatureForSuccess(outSum, invID, shpParams))
	s.loggerf("level=info msg=payment success signature validation inv_id=%d signature_valid=%t", invID, valid)
	if !valid {
		return false, ErrInvalidSignature
	}

	p, err := s.payments.GetByInvID(ctx, invID)
	if err != nil {
		return false, err
	}
	if !amountEqual(outSum, p.Amount) {
		return false, ErrAmountMismatch
	}

	if err := s.payments.UpdateStatusPendingIfNotPaid(ctx, invID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) GetByBookingID(ctx context.Context, bookingID, userID int64) (*domain.Payment, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrNotBookingOwner
	}
	return s.payments.GetByBookingID(ctx, bookingID)
}

func (s *Service) signatureForInit(outSum string, invID int64, shpParams map[string]string) string {
	parts := []string{s.cfg.MerchantID, outSum, strconv.FormatInt(invID, 10), s.cfg.Password1}
	parts = append(parts, flattenShpParams(shpParams)...)
	return md5Hex(strings.Join(parts, ":"))
}

func (s *Service) signatureForResult(outSum string, invID int64, shpParams map[string]string) string {
	parts := []string{outSum, strconv.FormatInt(invID, 10), s.cfg.Password2}
	parts = append(parts, flattenShpParams(shpParams)...)
	return md5Hex(strings.Join(parts, ":"))
}

func (s *Service) signatureForSuccess(outSum string, invID int64, shpParams map[string]string) string {
	parts := []string{outSum, strconv.FormatInt(invID, 10), s.cfg.Password1}
	parts = append(parts, flattenShpParams(shpParams)...)
	return md5Hex(strings.Join(parts, ":"))
}

func flattenShpParams(shp map[string]string) []string {
	keys := make([]string, 0, len(shp))
	for k := range shp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, "Shp_"+k+"="+shp[k])
	}
	return out
}

func amountEqual(a, b string) bool {
	ar, ok := new(big.Rat).SetString(strings.TrimSpace(a))
	if !ok {
		return false
	}
	br, ok := new(big.Rat).SetString(strings.TrimSpace(b))
	if !ok {
		return false
	}
	return ar.Cmp(br) == 0
}

func md5Hex(s string) string {
	h := md5.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(h[:]))
}
