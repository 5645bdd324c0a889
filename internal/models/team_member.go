package models

import (
	"time"

	"gorm.io/gorm"
)

// TeamMember is a public club contact shown on the team page
type TeamMember struct {
	ID        string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name      string  `gorm:"not null" json:"name"`
	Role      string  `gorm:"not null" json:"role"`
	Email     string  `gorm:"not null" json:"email"`
	Phone     *string `json:"phone,omitempty"`
	ImageURL  *string `json:"imageUrl,omitempty"`
	Bio       *string `gorm:"type:text" json:"bio,omitempty"`
	IsActive  bool    `gorm:"default:true" json:"isActive"`
	SortOrder int     `gorm:"default:0" json:"sortOrder"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for TeamMember model
func (TeamMember) TableName() string {
	return "team_members"
}
