package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewFilter holds one filter condition of a view. Value is null for the
// operators that take no operand (is empty / is not empty).
type ViewFilter struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ViewID   uuid.UUID `gorm:"type:uuid;not null;index" json:"view_id"`
	ColumnID uuid.UUID `gorm:"type:uuid;not null" json:"column_id"`
	Operator string    `gorm:"type:varchar(32);not null" json:"operator"`
	Value    *string   `gorm:"type:text" json:"value"`
}

func (f *ViewFilter) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
