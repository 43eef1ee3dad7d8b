package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gorm.io/gorm"
)

// Location is a loading or offloading point referenced by routes and waybills.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Code      string    `gorm:"size:50" json:"code,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Latitude  float64   `json:"latitude,omitempty"`
	Longitude float64   `json:"longitude,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// Point returns the location as an orb.Point (lon, lat).
func (l *Location) Point() orb.Point {
	return orb.Point{l.Longitude, l.Latitude}
}

// HasCoordinates reports whether the location carries a usable position.
// 0,0 is treated as unset.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}
