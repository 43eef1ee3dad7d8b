package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompanySetting is a single company-wide configuration document. One row per
// company; the value blob holds arbitrary settings (branding, numbering
// prefixes, default depot) that forms read and admins edit.
type CompanySetting struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string         `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'" json:"value"`
	UpdatedBy string         `gorm:"size:255" json:"updatedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *CompanySetting) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
