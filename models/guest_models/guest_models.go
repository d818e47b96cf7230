package guest_models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/utils"
)

// Guest is shared by reference across bookings; a returning guest is matched
// by email.
type Guest struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName is used in calendar titles and listings.
func (g Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// Normalize trims fields, lower-cases the email and checks required fields.
func (g *Guest) Normalize() error {
	g.FirstName = strings.TrimSpace(g.FirstName)
	g.LastName = strings.TrimSpace(g.LastName)
	g.Email = strings.ToLower(strings.TrimSpace(g.Email))
	g.Phone = strings.TrimSpace(g.Phone)

	switch {
	case g.FirstName == "":
		return fmt.Errorf("%w: guest first name is required", utils.ErrInvalidInput)
	case g.LastName == "":
		return fmt.Errorf("%w: guest last name is required", utils.ErrInvalidInput)
	case g.Email == "" || !strings.Contains(g.Email, "@"):
		return fmt.Errorf("%w: guest email is invalid", utils.ErrInvalidInput)
	}

	if g.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID for guest: %w", err)
		}
		g.ID = id
	}
	return nil
}
