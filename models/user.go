package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User owns every other entity, directly or through a parent.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"size:256;not null;unique"`
	Email          string    `gorm:"size:256"`
	HashedPassword []byte    `gorm:"not null"`
	Accounts       []Account       `gorm:"foreignKey:UserID"`
	Categories     []Category      `gorm:"foreignKey:UserID"`
	ShoppingPlans  []ShoppingPlan  `gorm:"foreignKey:UserID"`
	BudgetPlans    []BudgetPlan    `gorm:"foreignKey:UserID"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
