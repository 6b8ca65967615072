package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Row struct {
	gorm.Model
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Order   int       `gorm:"not null;default:0" json:"order"`
	TableID uuid.UUID `gorm:"type:uuid;not null;index" json:"table_id"`
}

func (r *Row) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
