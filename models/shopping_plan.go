package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingPlan groups shopping items and can be materialized into a single
// transaction against a chosen account.
type ShoppingPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Datetime  time.Time `gorm:"not null"`
	Title     string    `gorm:"size:256;not null;default:Untitled"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time
	Items     []ShoppingItem `gorm:"foreignKey:ShoppingPlanID"`
}

func (p *ShoppingPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
