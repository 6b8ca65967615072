package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViewHiddenColumn marks a column as hidden in one view. Presence of a
// record means hidden; unhiding deletes the record.
type ViewHiddenColumn struct {
	gorm.Model
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ViewID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hidden_view_column" json:"view_id"`
	ColumnID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_hidden_view_column" json:"column_id"`
}

func (h *ViewHiddenColumn) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
