package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category labels transactions. Deleting a category detaches its
// transactions (category_id set to null) rather than removing them.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:256;not null;default:Untitled"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
