package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrQuantityInvariant is returned when component counters do not add up
// (available + issued + damaged must equal total, all non-negative).
var ErrQuantityInvariant = errors.New("component quantities violate available + issued + damaged == total")

// Component represents a catalog item with stock counters
type Component struct {
	ID                string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name              string         `gorm:"not null;index" json:"name"`
	Category          string         `gorm:"not null;index" json:"category"`
	Description       string         `gorm:"type:text;not null" json:"description"`
	Specifications    datatypes.JSON `json:"specifications"`
	TotalQuantity     int            `gorm:"default:0" json:"totalQuantity"`
	AvailableQuantity int            `gorm:"default:0" json:"availableQuantity"`
	IssuedQuantity    int            `gorm:"default:0" json:"issuedQuantity"`
	DamagedQuantity   int            `gorm:"default:0" json:"damagedQuantity"`
	LowStockThreshold int            `gorm:"default:5" json:"lowStockThreshold"`
	Location          *string        `json:"location,omitempty"`
	ImageURL          *string        `json:"imageUrl,omitempty"`
	CreatedBy         *string        `gorm:"type:uuid" json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for Component model
func (Component) TableName() string {
	return "components"
}

// IsLowStock reports whether available stock is at or below the threshold
func (c *Component) IsLowStock() bool {
	return c.AvailableQuantity <= c.LowStockThreshold
}

// CheckQuantities validates the stock counter invariant
func (c *Component) CheckQuantities() error {
	if c.TotalQuantity < 0 || c.AvailableQuantity < 0 || c.IssuedQuantity < 0 || c.DamagedQuantity < 0 {
		return ErrQuantityInvariant
	}
	if c.AvailableQuantity+c.IssuedQuantity+c.DamagedQuantity != c.TotalQuantity {
		return ErrQuantityInvariant
	}
	return nil
}

// ApplyIssue moves quantity from available to issued stock
func (c *Component) ApplyIssue(quantity int) error {
	if quantity <= 0 || quantity > c.AvailableQuantity {
		return ErrInsufficientStock
	}
	c.AvailableQuantity -= quantity
	c.IssuedQuantity += quantity
	return c.CheckQuantities()
}

// ApplyReturn moves quantity out of issued stock according to the returned
// condition: good stock becomes available again, damaged stock is tracked
// separately, missing stock shrinks the total.
func (c *Component) ApplyReturn(quantity int, condition string) error {
	if quantity <= 0 || quantity > c.IssuedQuantity {
		return ErrInsufficientStock
	}
	c.IssuedQuantity -= quantity
	switch condition {
	case ReturnConditionGood:
		c.AvailableQuantity += quantity
	case ReturnConditionDamaged:
		c.DamagedQuantity += quantity
	case ReturnConditionMissing:
		c.TotalQuantity -= quantity
	default:
		return errors.New("unknown return condition: " + condition)
	}
	return c.CheckQuantities()
}
