package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ColumnTypeText   = "text"
	ColumnTypeNumber = "number"
)

// Column type is immutable after creation; there is no migration path
// between text and number.
type Column struct {
	gorm.Model
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"type:varchar(255);not null" json:"name"`
	Type    string    `gorm:"type:varchar(10);not null" json:"type"`
	Order   int       `gorm:"not null;default:0" json:"order"`
	TableID uuid.UUID `gorm:"type:uuid;not null;index" json:"table_id"`
}

func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *Column) IsNumber() bool {
	return c.Type == ColumnTypeNumber
}
