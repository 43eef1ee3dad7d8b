package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Vehicle is a truck or trailer assignable to waybills.
type Vehicle struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Registration  string         `gorm:"size:50;uniqueIndex;not null" json:"registration"`
	Make          string         `gorm:"size:100" json:"make,omitempty"`
	Model         string         `gorm:"size:100" json:"model,omitempty"`
	Year          int            `json:"year,omitempty"`
	VehicleType   string         `gorm:"size:50" json:"vehicleType,omitempty"` // horse, trailer, rigid
	TareWeight    *FlexFloat     `json:"tareWeight,omitempty"`
	LicenseExpiry *JSONTime      `json:"licenseExpiry,omitempty"`
	LicensePhotos pq.StringArray `gorm:"type:text[]" json:"licensePhotos,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// Driver holds the people records assignable to waybills.
type Driver struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Phone         string         `gorm:"size:50" json:"phone,omitempty"`
	IDNumber      string         `gorm:"size:100" json:"idNumber,omitempty"`
	LicenseNo     string         `gorm:"size:100" json:"licenseNo,omitempty"`
	LicenseExpiry *JSONTime      `json:"licenseExpiry,omitempty"`
	LicensePhotos pq.StringArray `gorm:"type:text[]" json:"licensePhotos,omitempty"`
	IsActive      bool           `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Driver) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}
