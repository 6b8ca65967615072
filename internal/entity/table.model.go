package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_table_name_base" json:"name"`
	BaseID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_table_name_base" json:"base_id"`
	Columns []Column  `gorm:"foreignKey:TableID" json:"columns"`
	Views   []View    `gorm:"foreignKey:TableID" json:"views"`
}

func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
