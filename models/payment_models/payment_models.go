package payment_models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/utils"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a guest paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodPaypal       PaymentMethod = "PAYPAL"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

var paymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodBankTransfer,
	PaymentMethodPaypal,
	PaymentMethodOther,
}

// ParsePaymentMethod validates a method supplied by a caller.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range paymentMethods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown payment method %q", utils.ErrInvalidInput, s)
}

// PaymentStatus is a state of a single payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusPartial, PaymentStatusFailed},
	PaymentStatusCompleted: {PaymentStatusRefunded},
	PaymentStatusPartial:   {PaymentStatusRefunded},
}

// ParsePaymentStatus normalises a status; unknown values fail later checks.
func ParsePaymentStatus(s string) PaymentStatus {
	return PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
}

// Counts reports whether payments in s count towards the booking's paid sum.
func (s PaymentStatus) Counts() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusPartial
}

// CanRecordAs reports whether a new payment may start in s.
func (s PaymentStatus) CanRecordAs() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusPartial || s == PaymentStatusPending
}

// CheckTransition returns ErrInvalidTransition unless s -> target is allowed.
func (s PaymentStatus) CheckTransition(target PaymentStatus) error {
	for _, next := range paymentTransitions[s] {
		if next == target {
			return nil
		}
	}
	return fmt.Errorf("%w: payment cannot move from %s to %s", utils.ErrInvalidTransition, s, target)
}

// Payment is money recorded against a booking.
type Payment struct {
	ID            uuid.UUID       `json:"id"`
	BookingID     uuid.UUID       `json:"bookingId"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Status        PaymentStatus   `json:"status"`
	TransactionID string          `json:"transactionId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// NewPayment builds a payment with a fresh id.
func NewPayment(bookingID uuid.UUID, amount decimal.Decimal, method PaymentMethod, status PaymentStatus, transactionID string, now time.Time) (*Payment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for payment: %w", err)
	}
	return &Payment{
		ID:            id,
		BookingID:     bookingID,
		Amount:        amount,
		Method:        method,
		Status:        status,
		TransactionID: strings.TrimSpace(transactionID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// PaidSum adds up the payments that count towards a booking's total.
func PaidSum(payments []Payment) decimal.Decimal {
	sum := decimal.Zero
	for _, p := range payments {
		if p.Status.Counts() {
			sum = sum.Add(p.Amount)
		}
	}
	return sum
}

// Balance summarises what is owed on a booking.
type Balance struct {
	BookingID   uuid.UUID       `json:"bookingId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Paid        decimal.Decimal `json:"paid"`
	Balance     decimal.Decimal `json:"balance"`
	Settled     bool            `json:"settled"`
}

// NewBalance computes the balance of a booking from its payments.
func NewBalance(bookingID uuid.UUID, total decimal.Decimal, payments []Payment) Balance {
	paid := PaidSum(payments)
	remaining := total.Sub(paid)
	return Balance{
		BookingID:   bookingID,
		TotalAmount: total,
		Paid:        paid,
		Balance:     remaining,
		Settled:     remaining.IsZero(),
	}
}
