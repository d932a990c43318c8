package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/planventure/planventure-api/internal/itinerary"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`

	// Storage-level reset state, layered on top of the self-describing
	// reset token. Both the codec check and these fields must agree for
	// a reset to go through.
	ResetToken     string `gorm:"default:''" json:"-"`
	ResetExpiresAt int64  `gorm:"default:0"  json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Trips []Trip `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Forms []Form `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Trip struct {
	ID          uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint     `gorm:"index;not null"           json:"user_id"`
	Destination string   `gorm:"not null"                 json:"destination"`
	StartDate   string   `gorm:"not null"                 json:"start_date"`
	EndDate     string   `gorm:"not null"                 json:"end_date"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	// Stored overlay only; the effective itinerary is projected at read
	// time from the trip's date range.
	Itinerary *itinerary.Itinerary `gorm:"type:json" json:"itinerary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Form struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	FormType  string    `gorm:"not null"                 json:"form_type"`
	Data      JSONMap   `gorm:"type:json;not null"       json:"data"`
	Status    string    `gorm:"default:pending"          json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	JTI       string `gorm:"uniqueIndex;not null"     json:"jti"`
	TokenHash string `gorm:"unique;not null"          json:"-"`
	UserID    uint   `gorm:"index;not null"           json:"user_id"`
	ExpiresAt int64  `gorm:"not null"                 json:"expires_at"`
	Revoked   bool   `gorm:"default:false"            json:"revoked"`
}

// JSONMap persists a free-form JSON object column.
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value any) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("jsonmap: unsupported column type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, m)
}
