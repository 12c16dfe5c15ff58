package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetCategory is an allocation bucket inside a budget plan. Amount is the
// allocated budget in miliunits; spend against it is derived from the
// transactions that reference the category.
type BudgetCategory struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"size:256;not null;default:Uncategorized"`
	Amount       int64      `gorm:"not null;default:0"`
	BudgetPlanID uuid.UUID  `gorm:"type:uuid;index;not null"`
	BudgetPlan   BudgetPlan `gorm:"foreignKey:BudgetPlanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt    time.Time
}

func (c *BudgetCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
