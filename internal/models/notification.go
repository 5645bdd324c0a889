package models

import "time"

// Notification type values
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification is a per-user message shown in the portal and pushed over the
// websocket feed. A nil UserID means a broadcast to every signed-in member.
type Notification struct {
	ID        string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    *string `gorm:"type:uuid;index" json:"userId,omitempty"`
	Type      string  `gorm:"default:'info'" json:"type"`
	Title     string  `gorm:"not null" json:"title"`
	Message   string  `gorm:"type:text;not null" json:"message"`
	IsRead    bool    `gorm:"default:false" json:"isRead"`
	ActionURL *string `json:"actionUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for Notification model
func (Notification) TableName() string {
	return "notifications"
}
