package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract links a customer to agreed rates for a period. Waybills reference
// the contract they bill under; the reference is optional.
type Contract struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	Customer    *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	ContractNo  string     `gorm:"size:100;uniqueIndex;not null" json:"contractNo"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	RatePerKm   *FlexFloat `json:"ratePerKm,omitempty"`
	RatePerTon  *FlexFloat `json:"ratePerTon,omitempty"`
	StartDate   *JSONTime  `json:"startDate,omitempty"`
	EndDate     *JSONTime  `json:"endDate,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
