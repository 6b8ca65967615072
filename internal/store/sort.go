package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kj4c/airtable/internal/entity"
)

// SortUpdate is a partial sort edit.
type SortUpdate struct {
	ColumnID  *uuid.UUID
	Direction *string
	SortOrder *int
}

func (s *Store) CreateSort(ctx context.Context, viewID, columnID uuid.UUID, direction string, sortOrder int) (*entity.ViewSort, error) {
	if direction != entity.SortAsc && direction != entity.SortDesc {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, direction)
	}

	viewSort := entity.ViewSort{
		ViewID:    viewID,
		ColumnID:  columnID,
		Direction: direction,
		SortOrder: sortOrder,
	}
	if err := s.db.WithContext(ctx).Create(&viewSort).Error; err != nil {
		return nil, fmt.Errorf("failed to create sort: %w", err)
	}
	return &viewSort, nil
}

func (s *Store) ListSorts(ctx context.Context, viewID uuid.UUID) ([]entity.ViewSort, error) {
	var sorts []entity.ViewSort
	if err := s.db.WithContext(ctx).Where("view_id = ?", viewID).Order("sort_order ASC").Find(&sorts).Error; err != nil {
		return nil, fmt.Errorf("failed to list sorts: %w", err)
	}
	return sorts, nil
}

func (s *Store) UpdateSort(ctx context.Context, sortID uuid.UUID, update SortUpdate) error {
	updates := map[string]any{}
	if update.ColumnID != nil {
		updates["column_id"] = *update.ColumnID
	}
	if update.Direction != nil {
		if *update.Direction != entity.SortAsc && *update.Direction != entity.SortDesc {
			return fmt.Errorf("%w: %q", ErrInvalidDirection, *update.Direction)
		}
		updates["direction"] = *update.Direction
	}
	if update.SortOrder != nil {
		updates["sort_order"] = *update.SortOrder
	}
	if len(updates) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&entity.ViewSort{}).Where("id = ?", sortID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update sort: %w", err)
	}
	return nil
}

func (s *Store) DeleteSort(ctx context.Context, sortID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&entity.ViewSort{}, "id = ?", sortID).Error; err != nil {
		return fmt.Errorf("failed to delete sort: %w", err)
	}
	return nil
}
