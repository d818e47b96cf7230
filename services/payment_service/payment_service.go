// Package payment_service records payments against bookings and keeps the
// collected sum within the booking total.
package payment_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/logger"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/payment_models"
	"github.com/joy095/propertyops/services/lock_service"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
)

type PaymentService struct {
	store       store.Store
	locker      lock_service.Locker
	clock       utils.Clock
	lockTimeout time.Duration
}

func NewPaymentService(s store.Store, locker lock_service.Locker, clock utils.Clock, lockTimeout time.Duration) *PaymentService {
	return &PaymentService{store: s, locker: locker, clock: clock, lockTimeout: lockTimeout}
}

// RecordPaymentInput describes a new payment. Status defaults to COMPLETED.
type RecordPaymentInput struct {
	BookingID     uuid.UUID
	Amount        decimal.Decimal
	Method        payment_models.PaymentMethod
	Status        payment_models.PaymentStatus
	TransactionID string
}

func (s *PaymentService) lockBooking(ctx context.Context, bookingID uuid.UUID) (func(), error) {
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	return s.locker.Lock(ctx, lock_service.BookingKey(bookingID))
}

// checkBalance fails if adding amount to what b has collected would exceed its total.
func checkBalance(b *booking_models.Booking, payments []payment_models.Payment, amount decimal.Decimal) error {
	balance := b.TotalAmount.Sub(payment_models.PaidSum(payments))
	if amount.GreaterThan(balance) {
		return fmt.Errorf("%w: amount %s exceeds remaining balance %s", utils.ErrAmountExceedsBalance, amount, balance)
	}
	return nil
}

func (s *PaymentService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*payment_models.Payment, error) {
	logger.InfoLogger.Infof("Attempting to record payment of %s for booking %s", in.Amount, in.BookingID)

	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be greater than zero", utils.ErrInvalidInput)
	}
	if err := utils.CheckCents("amount", in.Amount); err != nil {
		return nil, err
	}
	method, err := payment_models.ParsePaymentMethod(string(in.Method))
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = payment_models.PaymentStatusCompleted
	}
	if !status.CanRecordAs() {
		return nil, fmt.Errorf("%w: a new payment cannot be %s", utils.ErrInvalidInput, status)
	}

	unlock, err := s.lockBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b, err := s.store.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if b.Status == booking_models.BookingStatusCancelled {
		return nil, fmt.Errorf("%w: booking %s is cancelled", utils.ErrInvalidTransition, b.ID)
	}

	if status.Counts() {
		existing, err := s.store.ListPayments(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if err := checkBalance(b, existing, in.Amount); err != nil {
			logger.WarnLogger.Warnf("Payment rejected for booking %s: %v", b.ID, err)
			return nil, err
		}
	}

	p, err := payment_models.NewPayment(b.ID, in.Amount, method, status, in.TransactionID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.store.InsertPayment(ctx, p); err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Payment %s recorded for booking %s as %s", p.ID, b.ID, p.Status)
	return p, nil
}

// UpdatePaymentStatus moves a payment along its lifecycle. A pending payment
// that becomes collected must still fit in the balance.
func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, target payment_models.PaymentStatus) (*payment_models.Payment, error) {
	logger.InfoLogger.Infof("Attempting to move payment %s to %s", id, target)

	current, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockBooking(ctx, current.BookingID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Status.CheckTransition(target); err != nil {
		return nil, err
	}

	if target.Counts() && !p.Status.Counts() {
		b, err := s.store.GetBooking(ctx, p.BookingID)
		if err != nil {
			return nil, err
		}
		existing, err := s.store.ListPayments(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		if err := checkBalance(b, existing, p.Amount); err != nil {
			return nil, err
		}
	}

	p.Status = target
	p.UpdatedAt = s.clock.Now()
	if err := s.store.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}

	logger.InfoLogger.Infof("Payment %s is now %s", p.ID, p.Status)
	return p, nil
}

// ListPayments returns the payments of an existing booking, oldest first.
func (s *PaymentService) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]payment_models.Payment, error) {
	if _, err := s.store.GetBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.store.ListPayments(ctx, bookingID)
}

func (s *PaymentService) Balance(ctx context.Context, bookingID uuid.UUID) (*payment_models.Balance, error) {
	b, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPayments(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	balance := payment_models.NewBalance(b.ID, b.TotalAmount, payments)
	return &balance, nil
}
