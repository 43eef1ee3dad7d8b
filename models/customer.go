package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer is a freight customer. Waybills can only run over routes that are
// configured for the customer, so Routes is the authority for which
// origin/destination pairs a waybill form may offer.
type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	RegistrationNo  string    `gorm:"size:100" json:"registrationNo,omitempty"`
	VATNumber       string    `gorm:"size:100" json:"vatNumber,omitempty"`
	ContactPerson   string    `gorm:"size:255" json:"contactPerson,omitempty"`
	ContactPhone    string    `gorm:"size:50" json:"contactPhone,omitempty"`
	ContactEmail    string    `gorm:"size:255" json:"contactEmail,omitempty"`
	PhysicalAddress string    `gorm:"type:text" json:"physicalAddress,omitempty"`
	PostalAddress   string    `gorm:"type:text" json:"postalAddress,omitempty"`
	IsActive        bool      `gorm:"default:true" json:"isActive"`

	Routes []Route `gorm:"foreignKey:CustomerID" json:"routes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// Route is a permitted origin→destination pair for one customer. Duplicate
// pairs are tolerated in storage; derivation collapses them.
type Route struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	FromID     uuid.UUID `gorm:"type:uuid;not null" json:"fromId"`
	ToID       uuid.UUID `gorm:"type:uuid;not null" json:"toId"`
	From       *Location `gorm:"foreignKey:FromID" json:"from,omitempty"`
	To         *Location `gorm:"foreignKey:ToID" json:"to,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *Route) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// AvailableFromLocations returns the distinct origin location IDs across the
// given routes, in first-seen order.
func AvailableFromLocations(routes []Route) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(routes))
	out := make([]uuid.UUID, 0, len(routes))
	for _, r := range routes {
		if !seen[r.FromID] {
			seen[r.FromID] = true
			out = append(out, r.FromID)
		}
	}
	return out
}

// AvailableToLocations returns the distinct destination IDs among routes whose
// origin equals originID, in first-seen order. Empty when no origin is chosen.
func AvailableToLocations(routes []Route, originID uuid.UUID) []uuid.UUID {
	if originID == uuid.Nil {
		return []uuid.UUID{}
	}
	seen := make(map[uuid.UUID]bool, len(routes))
	out := make([]uuid.UUID, 0, len(routes))
	for _, r := range routes {
		if r.FromID != originID {
			continue
		}
		if !seen[r.ToID] {
			seen[r.ToID] = true
			out = append(out, r.ToID)
		}
	}
	return out
}

// HasRoute reports whether some route runs fromID→toID.
func HasRoute(routes []Route, fromID, toID uuid.UUID) bool {
	for _, r := range routes {
		if r.FromID == fromID && r.ToID == toID {
			return true
		}
	}
	return false
}
