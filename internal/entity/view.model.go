package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// View is one saved filter/sort/hidden-column configuration over a table's
// rows. A table can have any number of views, each independent.
type View struct {
	gorm.Model
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name"`
	TableID uuid.UUID `gorm:"type:uuid;not null;index" json:"table_id"`
}

func (v *View) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
