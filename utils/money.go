package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CheckCents rejects amounts with fractions smaller than a cent. The stores
// keep money as NUMERIC(12, 2) and must not round it silently.
func CheckCents(field string, d decimal.Decimal) error {
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("%w: %s %s has more than 2 decimal places", ErrInvalidInput, field, d)
	}
	return nil
}
