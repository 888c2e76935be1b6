package domain

import (
	"time"

	"github.com/google/uuid"
)

// Store represents a seller's storefront. Name, URL, email, and phone are
// each globally unique. The owning user is linked at creation time and
// never changes afterwards.
type Store struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Email       string    `json:"email" db:"email"`
	Phone       string    `json:"phone" db:"phone"`
	URL         string    `json:"url" db:"url"`
	LogoURL     string    `json:"logo_url" db:"logo_url"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
