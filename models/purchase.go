package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Purchase request / order statuses.
const (
	PRStatusPending  = "pending"
	PRStatusApproved = "approved"
	PRStatusRejected = "rejected"
)

// PurchaseRequest is an internal request for goods or services. Approval used
// to live only in the requester's browser; it is now a first-class record
// (ApprovalDecision) reconciled against the request's own status.
type PurchaseRequest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RequestNo   string         `gorm:"size:50;uniqueIndex;not null" json:"requestNo"`
	Status      string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	RequestedBy string         `gorm:"size:255" json:"requestedBy,omitempty"`
	Department  string         `gorm:"size:100" json:"department,omitempty"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Items       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"items"`
	TotalAmount *FlexFloat     `json:"totalAmount,omitempty"`
	NeededBy    *JSONTime      `json:"neededBy,omitempty"`

	Decision *ApprovalDecision `gorm:"foreignKey:PurchaseRequestID" json:"decision,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *PurchaseRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// ApprovalDecision records who approved or rejected a purchase request and
// when. One decision per request.
type ApprovalDecision struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PurchaseRequestID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"purchaseRequestId"`
	Decision          string    `gorm:"size:20;not null" json:"decision"` // approved | rejected
	DecidedBy         string    `gorm:"size:255;not null" json:"decidedBy"`
	DecidedAt         JSONTime  `gorm:"not null" json:"decidedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (a *ApprovalDecision) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// EffectiveStatus reconciles a request's stored status with its decision
// record. A status already settled on the request wins; otherwise a recorded
// decision applies; otherwise the request is pending.
func (p *PurchaseRequest) EffectiveStatus() string {
	if p.Status == PRStatusApproved || p.Status == PRStatusRejected {
		return p.Status
	}
	if p.Decision != nil {
		return p.Decision.Decision
	}
	return PRStatusPending
}

// PurchaseOrder is the order placed with a supplier, optionally raised from an
// approved purchase request.
type PurchaseOrder struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNo           string         `gorm:"size:50;uniqueIndex;not null" json:"orderNo"`
	PurchaseRequestID *uuid.UUID     `gorm:"type:uuid" json:"purchaseRequestId,omitempty"`
	Supplier          string         `gorm:"size:255;not null" json:"supplier"`
	Status            string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Items             datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"items"`
	TotalAmount       *FlexFloat     `json:"totalAmount,omitempty"`
	ExpectedDelivery  *JSONTime      `json:"expectedDelivery,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *PurchaseOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// RFQ is a request for quotation generated from an approved purchase request.
type RFQ struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RFQNo             string         `gorm:"size:50;uniqueIndex;not null" json:"rfqNo"`
	PurchaseRequestID uuid.UUID      `gorm:"type:uuid;index;not null" json:"purchaseRequestId"`
	Suppliers         datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"suppliers"`
	Items             datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"items"`
	ClosesAt          *JSONTime      `json:"closesAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *RFQ) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
