package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Base struct {
	gorm.Model
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name   string    `gorm:"type:varchar(255);not null" json:"name"`
	Tables []Table   `gorm:"foreignKey:BaseID" json:"tables"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
