package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Event is a club workshop, competition or showcase members can register for
type Event struct {
	ID                     string                      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title                  string                      `gorm:"not null" json:"title"`
	Description            string                      `gorm:"type:text;not null" json:"description"`
	Date                   time.Time                   `gorm:"not null;index" json:"date"`
	Time                   string                      `json:"time"`
	Location               string                      `json:"location"`
	MaxParticipants        int                         `gorm:"default:0" json:"maxParticipants"`
	RegisteredParticipants datatypes.JSONSlice[string] `json:"registeredParticipants"`
	ImageURL               *string                     `json:"imageUrl,omitempty"`
	Tags                   datatypes.JSONSlice[string] `json:"tags"`
	CreatedBy              string                      `gorm:"type:uuid" json:"createdBy"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}

// IsFull reports whether registration has reached the participant cap.
// A cap of 0 means unlimited.
func (e *Event) IsFull() bool {
	return e.MaxParticipants > 0 && len(e.RegisteredParticipants) >= e.MaxParticipants
}

// IsRegistered reports whether the user already holds a spot
func (e *Event) IsRegistered(userID string) bool {
	for _, id := range e.RegisteredParticipants {
		if id == userID {
			return true
		}
	}
	return false
}
