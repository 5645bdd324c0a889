package models

import "time"

// SiteContent is one editable text fragment of the public pages, keyed by a
// dotted path like "hero.title".
type SiteContent struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedBy *string   `gorm:"type:uuid" json:"updatedBy,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for SiteContent model
func (SiteContent) TableName() string {
	return "site_content"
}
