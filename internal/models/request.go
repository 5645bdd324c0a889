package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Request status values. Rejected and returned are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
	StatusIssued   = "issued"
	StatusReturned = "returned"
)

// Return condition values recorded on ComponentReturn
const (
	ReturnConditionGood    = "good"
	ReturnConditionDamaged = "damaged"
	ReturnConditionMissing = "missing"
)

var (
	// ErrInvalidTransition is returned when a status change is not allowed
	// by the request lifecycle.
	ErrInvalidTransition = errors.New("invalid request status transition")

	// ErrInsufficientStock is returned when a stock movement would drive a
	// counter negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// transitions is the request lifecycle table. A status missing from the map
// is terminal.
var transitions = map[string][]string{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusIssued, StatusRejected},
	StatusIssued:   {StatusReturned},
}

// CanTransition reports whether a request may move from one status to another
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no further transition is accepted
func IsTerminalStatus(status string) bool {
	return len(transitions[status]) == 0
}

// ComponentRequest represents a borrow request against one catalog component
type ComponentRequest struct {
	ID                 string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID             string     `gorm:"type:uuid;not null;index" json:"userId"`
	ComponentID        string     `gorm:"type:uuid;not null;index" json:"componentId"`
	Quantity           int        `gorm:"not null" json:"quantity"`
	Purpose            string     `gorm:"type:text;not null" json:"purpose"`
	ExpectedReturnDate time.Time  `gorm:"not null" json:"expectedReturnDate"`
	Status             string     `gorm:"default:'pending';index" json:"status"`
	RequestDate        time.Time  `gorm:"not null" json:"requestDate"`
	ApprovedBy         *string    `gorm:"type:uuid" json:"approvedBy,omitempty"`
	ApprovedDate       *time.Time `json:"approvedDate,omitempty"`
	IssuedDate         *time.Time `json:"issuedDate,omitempty"`
	ReturnedDate       *time.Time `json:"returnedDate,omitempty"`
	Notes              *string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Requester *Profile   `gorm:"foreignKey:UserID" json:"requester,omitempty"`
	Component *Component `gorm:"foreignKey:ComponentID" json:"component,omitempty"`
}

// TableName specifies the table name for ComponentRequest model
func (ComponentRequest) TableName() string {
	return "component_requests"
}

// ComponentReturn records the outcome of handing issued stock back in
type ComponentReturn struct {
	ID               string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RequestID        string     `gorm:"type:uuid;not null;index" json:"requestId"`
	UserID           string     `gorm:"type:uuid;not null" json:"userId"`
	ComponentID      string     `gorm:"type:uuid;not null;index" json:"componentId"`
	QuantityReturned int        `gorm:"not null" json:"quantityReturned"`
	Condition        string     `gorm:"default:'good'" json:"condition"`
	ReturnDate       time.Time  `gorm:"not null" json:"returnDate"`
	VerifiedBy       *string    `gorm:"type:uuid" json:"verifiedBy,omitempty"`
	Notes            *string    `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for ComponentReturn model
func (ComponentReturn) TableName() string {
	return "component_returns"
}
