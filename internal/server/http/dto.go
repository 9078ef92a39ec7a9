package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/medtrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

var errBadNumber = errors.New("currentStock and lowStockThreshold must be valid integers")

// flexInt accepts a JSON integer or a string holding one.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errBadNumber
		}
		b = []byte(strings.TrimSpace(s))
	}
	n, err := strconv.Atoi(string(b))
	if err != nil {
		return errBadNumber
	}
	*f = flexInt(n)
	return nil
}

type credentialsRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type profileRequest struct {
	Name string `json:"name"`
}

type medicationRequest struct {
	ProfileID         string   `json:"profileId"`
	Name              string   `json:"name"`
	Dosage            *string  `json:"dosage"`
	CurrentStock      *flexInt `json:"currentStock"`
	LowStockThreshold *flexInt `json:"lowStockThreshold"`
	TakeTime          *string  `json:"takeTime"`
	Frequency         *string  `json:"frequency"`
	Notes             *string  `json:"notes"`
}

func (r medicationRequest) toModel(profileID uuid.UUID) model.NewMedication {
	in := model.NewMedication{
		ProfileID: profileID,
		Name:      r.Name,
		Dosage:    r.Dosage,
		TakeTime:  r.TakeTime,
		Frequency: r.Frequency,
		Notes:     r.Notes,
	}
	if r.CurrentStock != nil {
		in.CurrentStock = int(*r.CurrentStock)
	}
	if r.LowStockThreshold != nil {
		v := int(*r.LowStockThreshold)
		in.LowStockThreshold = &v
	}
	return in
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUser(u model.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, CreatedAt: u.CreatedAt}
}

type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func toProfile(p model.Profile) profileResponse {
	return profileResponse{ID: p.ID, UserID: p.UserID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toProfiles(ps []model.Profile) []profileResponse {
	out := make([]profileResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProfile(p))
	}
	return out
}

type medicationResponse struct {
	ID                uuid.UUID `json:"id"`
	ProfileID         uuid.UUID `json:"profileId"`
	Name              string    `json:"name"`
	Dosage            *string   `json:"dosage"`
	CurrentStock      int       `json:"currentStock"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	LowStock          bool      `json:"lowStock"`
	TakeTime          *string   `json:"takeTime"`
	Frequency         *string   `json:"frequency"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toMedication(m model.Medication) medicationResponse {
	return medicationResponse{
		ID:                m.ID,
		ProfileID:         m.ProfileID,
		Name:              m.Name,
		Dosage:            m.Dosage,
		CurrentStock:      m.CurrentStock,
		LowStockThreshold: m.LowStockThreshold,
		LowStock:          m.LowStock(),
		TakeTime:          m.TakeTime,
		Frequency:         m.Frequency,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toMedications(ms []model.Medication) []medicationResponse {
	out := make([]medicationResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMedication(m))
	}
	return out
}
