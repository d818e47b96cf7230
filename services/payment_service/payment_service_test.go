package payment_service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/joy095/propertyops/models/booking_models"
	"github.com/joy095/propertyops/models/payment_models"
	"github.com/joy095/propertyops/models/room_models"
	"github.com/joy095/propertyops/services/lock_service"
	"github.com/joy095/propertyops/store"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var now = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T, total int64, status booking_models.BookingStatus) (*PaymentService, *store.MemoryStore, *booking_models.Booking) {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()

	rt, err := room_models.NewRoomType("Single", "", decimal.NewFromInt(100), 1)
	require.NoError(t, err)
	require.NoError(t, s.CreateRoomType(ctx, rt))
	room, err := room_models.NewRoom("1", rt.ID)
	require.NoError(t, err)
	require.NoError(t, s.CreateRoom(ctx, room))

	b, err := booking_models.NewBooking(uuid.New(), room.ID,
		civil.Date{Year: 2024, Month: 3, Day: 10}, civil.Date{Year: 2024, Month: 3, Day: 13},
		1, 0, "", decimal.NewFromInt(total), now)
	require.NoError(t, err)
	b.Status = status
	require.NoError(t, s.InsertBooking(ctx, b))

	svc := NewPaymentService(s, lock_service.NewLocalLocker(), utils.FixedClock(now, time.UTC), 5*time.Second)
	return svc, s, b
}

func pay(bookingID uuid.UUID, amount string, status payment_models.PaymentStatus) RecordPaymentInput {
	return RecordPaymentInput{
		BookingID: bookingID,
		Amount:    decimal.RequireFromString(amount),
		Method:    payment_models.PaymentMethodCreditCard,
		Status:    status,
	}
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToCompleted", func(t *testing.T) {
		svc, _, b := setup(t, 300, booking_models.BookingStatusConfirmed)
		p, err := svc.RecordPayment(ctx, pay(b.ID, "100", ""))
		require.NoError(t, err)
		assert.Equal(t, payment_models.PaymentStatusCompleted, p.Status)
	})

	t.Run("ExactBalance", func(t *testing.T) {
		svc, _, b := setup(t, 300, booking_models.BookingStatusConfirmed)
		_, err := svc.RecordPayment(ctx, pay(b.ID, "120.50", payment_models.PaymentStatusPartial))
		require.NoError(t, err)
		_, err = svc.RecordPayment(ctx, pay(b.ID, "179.50", ""))
		require.NoError(t, err)

		bal, err := svc.Balance(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, bal.Balance.IsZero())
		assert.True(t, bal.Settled)
		assert.True(t, decimal.NewFromInt(300).Equal(bal.Paid))
	})

	t.Run("OverBalance", func(t *testing.T) {
		svc, _, b := setup(t, 300, booking_models.BookingStatusConfirmed)
		_, err := svc.RecordPayment(ctx, pay(b.ID, "250", ""))
		require.NoError(t, err)
		_, err = svc.RecordPayment(ctx, pay(b.ID, "50.01", ""))
		assert.ErrorIs(t, err, utils.ErrAmountExceedsBalance)
	})

	t.Run("PendingDoesNotCount", func(t *testing.T) {
		svc, _, b := setup(t, 300, booking_models.BookingStatusConfirmed)
		_, err := svc.RecordPayment(ctx, pay(b.ID, "1000", payment_models.PaymentStatusPending))
		require.NoError(t, err)
		bal, err := svc.Balance(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, bal.Paid.IsZero())
	})

	t.Run("StoresNormalizedMethod", func(t *testing.T) {
		svc, s, b := setup(t, 300, booking_models.BookingStatusConfirmed)
		in := pay(b.ID, "40", "")
		in.Method = " cash "
		p, err := svc.RecordPayment(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, payment_models.PaymentMethodCash, p.Method)

		stored, err := s.ListPayments(ctx, b.ID)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, payment_models.PaymentMethodCash, stored[0].Method)
	})

	t.Run("CancelledBooking", func(t *testing.T) {
		svc, _, b := setup(t, 300, booking_models.BookingStatusCancelled)
		_, err := svc.RecordPayment(ctx, pay(b.ID, "10", ""))
		assert.ErrorIs(t, err, utils.ErrInvalidTransition)
	})

	tests := []struct {
		name string
		in   func(id uuid.UUID) RecordPaymentInput
		want error
	}{
		{"ZeroAmount", func(id uuid.UUID) RecordPaymentInput { return pay(id, "0", "") }, utils.ErrInvalidInput},
		{"NegativeAmount", func(id uuid.UUID) RecordPaymentInput { return pay(id, "-5", "") }, utils.ErrInvalidInput},
		{"FractionOfCent", func(id uuid.UUID) RecordPaymentInput { return pay(id, "0.001", "") }, utils.ErrInvalidInput},
		{"SubCentRemainder", func(id uuid.UUID) RecordPaymentInput { return pay(id, "10.005", "") }, utils.ErrInvalidInput},
		{"FailedStatus", func(id uuid.UUID) RecordPaymentInput { return pay(id, "5", payment_models.PaymentStatusFailed) }, utils.ErrInvalidInput},
		{"UnknownMethod", func(id uuid.UUID) RecordPaymentInput {
			in := pay(id, "5", "")
			in.Method = "BITCOIN"
			return in
		}, utils.ErrInvalidInput},
		{"UnknownBooking", func(uuid.UUID) RecordPaymentInput { return pay(uuid.New(), "5", "") }, utils.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, b := setup(t, 300, booking_models.BookingStatusConfirmed)
			_, err := svc.RecordPayment(ctx, tt.in(b.ID))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdatePaymentStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingToCompletedRechecksBalance", func(t *testing.T) {
		svc, _, b := setup(t, 300, booking_models.BookingStatusConfirmed)
		pending, err := svc.RecordPayment(ctx, pay(b.ID, "200", payment_models.PaymentStatusPending))
		require.NoError(t, err)
		_, err = svc.RecordPayment(ctx, pay(b.ID, "150", ""))
		require.NoError(t, err)

		_, err = svc.UpdatePaymentStatus(ctx, pending.ID, payment_models.PaymentStatusCompleted)
		assert.ErrorIs(t, err, utils.ErrAmountExceedsBalance)

		failed, err := svc.UpdatePaymentStatus(ctx, pending.ID, payment_models.PaymentStatusFailed)
		require.NoError(t, err)
		assert.Equal(t, payment_models.PaymentStatusFailed, failed.Status)
	})

	t.Run("RefundFreesBalance", func(t *testing.T) {
		svc, _, b := setup(t, 300, booking_models.BookingStatusConfirmed)
		p, err := svc.RecordPayment(ctx, pay(b.ID, "300", ""))
		require.NoError(t, err)
		_, err = svc.UpdatePaymentStatus(ctx, p.ID, payment_models.PaymentStatusRefunded)
		require.NoError(t, err)

		bal, err := svc.Balance(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(300).Equal(bal.Balance))
	})

	t.Run("Grid", func(t *testing.T) {
		statuses := []payment_models.PaymentStatus{
			payment_models.PaymentStatusPending,
			payment_models.PaymentStatusCompleted,
			payment_models.PaymentStatusFailed,
			payment_models.PaymentStatusRefunded,
			payment_models.PaymentStatusPartial,
		}
		allowed := map[[2]payment_models.PaymentStatus]bool{
			{payment_models.PaymentStatusPending, payment_models.PaymentStatusCompleted}:  true,
			{payment_models.PaymentStatusPending, payment_models.PaymentStatusPartial}:    true,
			{payment_models.PaymentStatusPending, payment_models.PaymentStatusFailed}:     true,
			{payment_models.PaymentStatusCompleted, payment_models.PaymentStatusRefunded}: true,
			{payment_models.PaymentStatusPartial, payment_models.PaymentStatusRefunded}:   true,
		}
		for _, from := range statuses {
			for _, to := range statuses {
				svc, s, b := setup(t, 300, booking_models.BookingStatusConfirmed)
				p, err := payment_models.NewPayment(b.ID, decimal.NewFromInt(10), payment_models.PaymentMethodCash, from, "", now)
				require.NoError(t, err)
				require.NoError(t, s.InsertPayment(ctx, p))

				_, err = svc.UpdatePaymentStatus(ctx, p.ID, to)
				if allowed[[2]payment_models.PaymentStatus{from, to}] {
					assert.NoError(t, err, "%s -> %s", from, to)
				} else {
					assert.ErrorIs(t, err, utils.ErrInvalidTransition, "%s -> %s", from, to)
				}
			}
		}
	})

	t.Run("UnknownPayment", func(t *testing.T) {
		svc, _, _ := setup(t, 300, booking_models.BookingStatusConfirmed)
		_, err := svc.UpdatePaymentStatus(ctx, uuid.New(), payment_models.PaymentStatusCompleted)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})
}

func TestLedgerNeverOverCollects(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))
	svc, _, b := setup(t, 500, booking_models.BookingStatusConfirmed)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var unexpected []error
	for i := 0; i < 40; i++ {
		amount := decimal.New(int64(1+rng.Intn(9000)), -2)
		wg.Add(1)
		go func(amount decimal.Decimal) {
			defer wg.Done()
			_, err := svc.RecordPayment(ctx, RecordPaymentInput{
				BookingID: b.ID,
				Amount:    amount,
				Method:    payment_models.PaymentMethodCash,
			})
			if err != nil && !errors.Is(err, utils.ErrAmountExceedsBalance) {
				mu.Lock()
				unexpected = append(unexpected, err)
				mu.Unlock()
			}
		}(amount)
	}
	wg.Wait()
	require.Empty(t, unexpected)

	payments, err := svc.ListPayments(ctx, b.ID)
	require.NoError(t, err)
	paid := payment_models.PaidSum(payments)
	assert.True(t, paid.LessThanOrEqual(b.TotalAmount), "paid %s of %s", paid, b.TotalAmount)

	for i := 1; i < len(payments); i++ {
		assert.False(t, payments[i].CreatedAt.Before(payments[i-1].CreatedAt))
	}
}

func TestListPaymentsUnknownBooking(t *testing.T) {
	svc, _, _ := setup(t, 300, booking_models.BookingStatusConfirmed)
	_, err := svc.ListPayments(context.Background(), uuid.New())
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
