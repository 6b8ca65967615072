package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ViewSort is one sort key of a view. SortOrder ranks multi-column sorts,
// lower values take priority.
type ViewSort struct {
	gorm.Model
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ViewID    uuid.UUID `gorm:"type:uuid;not null;index" json:"view_id"`
	ColumnID  uuid.UUID `gorm:"type:uuid;not null" json:"column_id"`
	Direction string    `gorm:"type:varchar(4);not null" json:"direction"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
}

func (s *ViewSort) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
