package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/kj4c/airtable/internal/entity"
)

// UpsertCell writes a cell value as a single atomic insert-or-update on the
// (row_id, column_id) key. Concurrent edits to the same cell resolve
// last-write-wins instead of tripping the uniqueness constraint.
func (s *Store) UpsertCell(ctx context.Context, rowID, columnID uuid.UUID, value string) (*entity.Cell, error) {
	cell := entity.Cell{
		RowID:    rowID,
		ColumnID: columnID,
		Value:    &value,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "row_id"}, {Name: "column_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"value":      value,
			"updated_at": time.Now(),
		}),
	}).Create(&cell).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cell: %w", err)
	}

	// On conflict the insert candidate's id is discarded, so read back the
	// surviving record.
	var saved entity.Cell
	if err := s.db.WithContext(ctx).Where("row_id = ? AND column_id = ?", rowID, columnID).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to read back cell: %w", err)
	}
	return &saved, nil
}
