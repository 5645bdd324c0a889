package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project difficulty values
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Project is a member project showcased on the portal. Submissions start as
// pending and are published once an admin approves them.
type Project struct {
	ID           string                      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Title        string                      `gorm:"not null" json:"title"`
	Description  string                      `gorm:"type:text;not null" json:"description"`
	ImageURL     *string                     `json:"imageUrl,omitempty"`
	Contributors datatypes.JSONSlice[string] `json:"contributors"`
	Tags         datatypes.JSONSlice[string] `json:"tags"`
	Difficulty   string                      `gorm:"default:'beginner'" json:"difficulty"`
	Status       string                      `gorm:"default:'pending';index" json:"status"`
	GithubURL    *string                     `json:"githubUrl,omitempty"`
	DemoURL      *string                     `json:"demoUrl,omitempty"`
	CreatedBy    string                      `gorm:"type:uuid" json:"createdBy"`
	ReviewedBy   *string                     `gorm:"type:uuid" json:"reviewedBy,omitempty"`
	ReviewedDate *time.Time                  `json:"reviewedDate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Project model
func (Project) TableName() string {
	return "projects"
}
