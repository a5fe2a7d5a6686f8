package models

import (
	"time"

	"pocketbudget/internal/uuid"

	"gorm.io/gorm"
)

// Base holds the id and timestamps of database rows. Only users and audit
// entries are persisted; budgets and expenses live in the session store.
type Base struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
}

// BeforeCreate assigns a UUIDv7 when the row has no id yet.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}
