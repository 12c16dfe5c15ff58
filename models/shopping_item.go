package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShoppingItem is a planned purchase. Total is computed at write time as
// amount*quantity - discount + tax and persisted; every update must
// recompute and overwrite it. Amount, discount, tax and total are miliunits,
// quantity is a plain count.
type ShoppingItem struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name           string       `gorm:"column:item;size:256;not null;default:Untitled"`
	Amount         int64        `gorm:"not null;default:0"`
	Quantity       int64        `gorm:"not null;default:1"`
	Discount       int64        `gorm:"not null;default:0"`
	Tax            int64        `gorm:"not null;default:0"`
	Total          int64        `gorm:"not null;default:0"`
	ShoppingPlanID uuid.UUID    `gorm:"type:uuid;index;not null"`
	ShoppingPlan   ShoppingPlan `gorm:"foreignKey:ShoppingPlanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt      time.Time
}

func (i *ShoppingItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
