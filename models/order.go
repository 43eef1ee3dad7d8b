package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OrderStatus is the waybill lifecycle state.
type OrderStatus string

const (
	StatusInProgress      OrderStatus = "InProgress"
	StatusClosed          OrderStatus = "Closed"
	StatusClosedAccident  OrderStatus = "ClosedAccident"
	StatusClosedBreakdown OrderStatus = "ClosedBreakdown"
)

// Legacy aliases still present in old rows and old clients. Tolerated on read
// and on write, never emitted.
const (
	legacyStatusPending   = "Pending"
	legacyStatusDelivered = "Delivered"
)

// NormalizeStatus maps legacy aliases onto current statuses. Unknown values
// come back unchanged with ok=false.
func NormalizeStatus(s string) (OrderStatus, bool) {
	switch s {
	case string(StatusInProgress), legacyStatusPending, "":
		return StatusInProgress, true
	case string(StatusClosed), legacyStatusDelivered:
		return StatusClosed, true
	case string(StatusClosedAccident):
		return StatusClosedAccident, true
	case string(StatusClosedBreakdown):
		return StatusClosedBreakdown, true
	}
	return OrderStatus(s), false
}

// IsTerminal reports whether the status is one of the three closed states.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusClosed, StatusClosedAccident, StatusClosedBreakdown:
		return true
	}
	return false
}

// orderTransitions is the one-way closing state machine. Terminal states have
// no outgoing transitions; nothing leads back to InProgress.
var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusInProgress: {
		StatusClosed:          true,
		StatusClosedAccident:  true,
		StatusClosedBreakdown: true,
	},
	StatusClosed:          {},
	StatusClosedAccident:  {},
	StatusClosedBreakdown: {},
}

// CanTransition reports whether current→next is a legal status move.
func CanTransition(current, next OrderStatus) bool {
	nexts, ok := orderTransitions[current]
	if !ok {
		return false
	}
	return nexts[next]
}

// RecipientAcknowledgment values accepted on normal closing.
const (
	AckGood          = "Good"
	AckFullyReceived = "Fully Received"
	AckBroken        = "Broken"
	AckPartially     = "Partially"
)

// ValidAcknowledgment reports whether s is a known acknowledgment value.
func ValidAcknowledgment(s string) bool {
	switch s {
	case AckGood, AckFullyReceived, AckBroken, AckPartially:
		return true
	}
	return false
}

// Order is a waybill: one shipment for a customer over a configured route,
// tracked through loading/offloading milestones to closure.
type Order struct {
	ID      uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNo string      `gorm:"size:50;uniqueIndex;not null" json:"orderNo"`
	Status  OrderStatus `gorm:"size:30;not null;default:'InProgress';index" json:"status"`

	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	Customer   *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	FromID     *uuid.UUID `gorm:"type:uuid" json:"fromId,omitempty"`
	From       *Location  `gorm:"foreignKey:FromID" json:"from,omitempty"`
	ToID       *uuid.UUID `gorm:"type:uuid" json:"toId,omitempty"`
	To         *Location  `gorm:"foreignKey:ToID" json:"to,omitempty"`
	VehicleID  *uuid.UUID `gorm:"type:uuid" json:"vehicleId,omitempty"`
	Vehicle    *Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	DriverID   *uuid.UUID `gorm:"type:uuid" json:"driverId,omitempty"`
	Driver     *Driver    `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
	ContractID *uuid.UUID `gorm:"type:uuid" json:"contractId,omitempty"`
	Contract   *Contract  `gorm:"foreignKey:ContractID" json:"contract,omitempty"`

	// Cargo
	CargoDescription string     `gorm:"type:text" json:"cargoDescription,omitempty"`
	Weight           *FlexFloat `json:"weight,omitempty"`
	TareWeight       *FlexFloat `json:"tareWeight,omitempty"`
	SealNo           string     `gorm:"size:100" json:"sealNo,omitempty"`
	TripNo           string     `gorm:"size:100" json:"tripNo,omitempty"`
	ContainerNo      string     `gorm:"size:100" json:"containerNo,omitempty"`
	ShippingLine     string     `gorm:"size:255" json:"shippingLine,omitempty"`

	// Timeline milestones, each independently nullable.
	RequestedAt         *JSONTime `json:"requestedAt,omitempty"`
	ETA                 *JSONTime `json:"eta,omitempty"`
	ArrivalAtLoading    *JSONTime `json:"arrivalAtLoading,omitempty"`
	CompletedLoading    *JSONTime `json:"completedLoading,omitempty"`
	DispatchFromLoading *JSONTime `json:"dispatchFromLoading,omitempty"`
	ArrivalAtOffloading *JSONTime `json:"arrivalAtOffloading,omitempty"`
	CompletedUnloading  *JSONTime `json:"completedUnloading,omitempty"`

	// Closing fields
	StartKms                *FlexFloat     `json:"startKms,omitempty"`
	KmIn                    *FlexFloat     `json:"kmIn,omitempty"`
	Remarks                 string         `gorm:"type:text" json:"remarks,omitempty"`
	RecipientAcknowledgment string         `gorm:"size:50" json:"recipientAcknowledgment,omitempty"`
	PodNumber               string         `gorm:"size:100" json:"podNumber,omitempty"`
	PodDocument             string         `gorm:"size:512" json:"podDocument,omitempty"`
	Attachments             pq.StringArray `gorm:"type:text[]" json:"attachments,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}

// CanClose reports whether the close action is available for this order:
// status must be non-terminal and the record must not already look closed.
// An order with both completedUnloading and kmIn populated is treated as
// effectively closed even if its status was never updated.
func (o *Order) CanClose() bool {
	if o.Status.IsTerminal() {
		return false
	}
	if o.CompletedUnloading != nil && !o.CompletedUnloading.IsZero() && o.KmIn != nil {
		return false
	}
	return true
}

// CloseReason selects one of the three closing paths.
type CloseReason string

const (
	CloseNormal    CloseReason = "normal"
	CloseAccident  CloseReason = "accident"
	CloseBreakdown CloseReason = "breakdown"
)

const (
	remarksAccident  = "Waybill closed due to accident"
	remarksBreakdown = "Waybill closed due to breakdown"
)

// ApplyIncidentClose mutates the order for an accident or breakdown closing:
// terminal status, fixed remarks, completedUnloading stamped with the closing
// time (not the actual unloading time), and kmIn recorded as the start
// odometer reading — zero run distance — since the real reading is unknown.
func (o *Order) ApplyIncidentClose(reason CloseReason, now time.Time) error {
	var next OrderStatus
	var remarks string
	switch reason {
	case CloseAccident:
		next, remarks = StatusClosedAccident, remarksAccident
	case CloseBreakdown:
		next, remarks = StatusClosedBreakdown, remarksBreakdown
	default:
		return fmt.Errorf("not an incident close reason: %q", reason)
	}
	if !CanTransition(o.Status, next) {
		return fmt.Errorf("cannot close order in status %s", o.Status)
	}

	kmIn := FlexFloat(0)
	if o.StartKms != nil {
		kmIn = *o.StartKms
	}
	stamp := JSONTime(now)

	o.Status = next
	o.Remarks = remarks
	o.CompletedUnloading = &stamp
	o.KmIn = &kmIn
	return nil
}

// NormalClose carries the fields of the full closing form.
type NormalClose struct {
	KmIn                    *FlexFloat `json:"kmIn"`
	Remarks                 string     `json:"remarks"`
	RecipientAcknowledgment string     `json:"recipientAcknowledgment"`
	PodNumber               string     `json:"podNumber"`
	PodDocument             string     `json:"podDocument"`
}

// ApplyNormalClose mutates the order for a normal closing.
func (o *Order) ApplyNormalClose(form NormalClose, now time.Time) error {
	if !CanTransition(o.Status, StatusClosed) {
		return fmt.Errorf("cannot close order in status %s", o.Status)
	}
	if form.KmIn == nil {
		return fmt.Errorf("kmIn is required")
	}
	if form.RecipientAcknowledgment != "" && !ValidAcknowledgment(form.RecipientAcknowledgment) {
		return fmt.Errorf("invalid recipientAcknowledgment %q", form.RecipientAcknowledgment)
	}

	o.Status = StatusClosed
	o.KmIn = form.KmIn
	o.Remarks = form.Remarks
	o.RecipientAcknowledgment = form.RecipientAcknowledgment
	o.PodNumber = form.PodNumber
	o.PodDocument = form.PodDocument
	if o.CompletedUnloading == nil || o.CompletedUnloading.IsZero() {
		stamp := JSONTime(now)
		o.CompletedUnloading = &stamp
	}
	return nil
}
