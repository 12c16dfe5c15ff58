package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BudgetPlan groups budget categories. Plan lists are served newest first.
type BudgetPlan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title      string    `gorm:"size:256;not null;default:Untitled"`
	UserID     uuid.UUID `gorm:"type:uuid;index;not null"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt  time.Time
	Categories []BudgetCategory `gorm:"foreignKey:BudgetPlanID"`
}

func (p *BudgetPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
