package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cell is one (row, column) intersection. Values are always stored as text
// and interpreted per the column's type at query time. At most one cell may
// exist per (row_id, column_id); writes go through an upsert on that key.
type Cell struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Value    *string   `gorm:"type:text" json:"value"`
	RowID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cell_row_column" json:"row_id"`
	ColumnID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cell_row_column" json:"column_id"`
}

func (c *Cell) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
