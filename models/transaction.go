package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction is a signed money movement in miliunits: positive amounts are
// income, negative amounts are expense. It always belongs to an account and
// may optionally reference a category, a shopping plan or a budget category;
// those links are severed (set to null) when the referenced row disappears,
// while deleting the owning account removes the transaction itself.
type Transaction struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Datetime         time.Time  `gorm:"not null"`
	Description      string     `gorm:"size:256;not null;default:Untitled"`
	Amount           int64      `gorm:"not null;default:0"`
	AccountID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	Account          Account    `gorm:"foreignKey:AccountID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CategoryID       *uuid.UUID `gorm:"type:uuid"`
	Category         *Category  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	ShoppingPlanID   *uuid.UUID `gorm:"type:uuid;index"`
	ShoppingPlan     *ShoppingPlan `gorm:"foreignKey:ShoppingPlanID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	BudgetCategoryID *uuid.UUID `gorm:"type:uuid;index"`
	BudgetCategory   *BudgetCategory `gorm:"foreignKey:BudgetCategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt        time.Time
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
