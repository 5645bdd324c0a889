package content

import (
	"github.com/circuitology-club/portalgo/internal/models"
	"gorm.io/gorm"
)

// defaults is the content every fresh install (and every reset) starts with
var defaults = map[string]string{
	"hero.title":          "Welcome to Circuitology Club",
	"hero.subtitle":       "Where Innovation Meets Electronics",
	"hero.description":    "Join our community of electronics enthusiasts and makers. Access components, learn new skills, and bring your ideas to life.",
	"about.title":         "About Our Club",
	"about.description":   "The Circuitology Club is a vibrant community of electronics enthusiasts, engineers, and makers. We provide resources, mentorship, and opportunities for hands-on learning in the field of electronics and embedded systems.",
	"mission.title":       "Our Mission",
	"mission.description": "To foster innovation and learning in electronics through hands-on projects, component access, and collaborative learning.",
	"contact.title":       "Get in Touch",
	"contact.description": "Have questions or need help with your project? Our team is here to assist you.",
	"events.title":        "Upcoming Events",
	"events.description":  "Join our exciting workshops, competitions, and showcases to enhance your electronics skills.",
	"special.title":       "Special Components",
	"special.description": "Advanced equipment and components for specialized projects and research.",
}

// Store manages the editable page text of the portal
type Store struct {
	db *gorm.DB
}

// NewStore creates a content store
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Defaults returns a copy of the default content map
func Defaults() map[string]string {
	out := make(map[string]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// All returns the full content map. Keys never written keep their default
// value, so the page always has text to render.
func (s *Store) All() (map[string]string, error) {
	var rows []models.SiteContent
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := Defaults()
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Get returns the value for one key, falling back to the default
func (s *Store) Get(key string) (string, error) {
	var row models.SiteContent
	err := s.db.First(&row, "key = ?", key).Error
	if err == gorm.ErrRecordNotFound {
		return defaults[key], nil
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

// Set overwrites one key. Last writer wins.
func (s *Store) Set(key, value, updatedBy string) error {
	row := models.SiteContent{Key: key, Value: value}
	if updatedBy != "" {
		row.UpdatedBy = &updatedBy
	}
	return s.db.Save(&row).Error
}

// Reset restores the hardcoded default map wholesale
func (s *Store) Reset() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.SiteContent{}).Error; err != nil {
			return err
		}
		for key, value := range defaults {
			if err := tx.Create(&models.SiteContent{Key: key, Value: value}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
