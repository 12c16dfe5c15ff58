package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account holds money movements. InitialBalance is stored in miliunits
// (display value times 1000) like every other monetary column.
type Account struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"size:256;not null"`
	InitialBalance int64     `gorm:"not null;default:0"`
	UserID         uuid.UUID `gorm:"type:uuid;index;not null"`
	User           User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt      time.Time
	Transactions   []Transaction `gorm:"foreignKey:AccountID"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
