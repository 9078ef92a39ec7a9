// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// DefaultLowStockThreshold is applied when a medication is created without a threshold.
const DefaultLowStockThreshold = 5

// Token is an issued access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// User represents an account. The password is never stored in plaintext.
type User struct {
	ID        uuid.UUID // PK
	Email     string    // unique, lower-cased
	PwdHash   []byte    // Argon2id(password, PwdSalt)
	PwdSalt   []byte    // per-user salt
	Name      *string
	CreatedAt time.Time
}

// Profile is a tracked individual owned by exactly one user.
type Profile struct {
	ID        uuid.UUID
	UserID    uuid.UUID // FK -> users.id
	Name      string
	CreatedAt time.Time
}

// Medication is a drug record with stock, owned by exactly one profile.
type Medication struct {
	ID                uuid.UUID
	ProfileID         uuid.UUID // FK -> profiles.id
	Name              string
	Dosage            *string
	CurrentStock      int // >= 0
	LowStockThreshold int
	TakeTime          *string
	Frequency         *string
	Notes             *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LowStock reports whether the stock reached the threshold. Informational only.
func (m Medication) LowStock() bool {
	return m.CurrentStock <= m.LowStockThreshold
}

// NewMedication is a validated create intent.
type NewMedication struct {
	ProfileID         uuid.UUID
	Name              string
	Dosage            *string
	CurrentStock      int
	LowStockThreshold *int // nil -> DefaultLowStockThreshold
	TakeTime          *string
	Frequency         *string
	Notes             *string
}
