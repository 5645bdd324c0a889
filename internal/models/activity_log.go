package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only audit trail of mutations
type ActivityLog struct {
	ID        string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    *string        `gorm:"type:uuid;index" json:"userId,omitempty"`
	Action    string         `gorm:"not null" json:"action"`
	Entity    string         `gorm:"column:table_name;not null" json:"tableName"`
	RecordID  *string        `json:"recordId,omitempty"`
	OldValues datatypes.JSON `json:"oldValues,omitempty"`
	NewValues datatypes.JSON `json:"newValues,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for ActivityLog model
func (ActivityLog) TableName() string {
	return "activity_logs"
}
