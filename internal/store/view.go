package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/kj4c/airtable/internal/entity"
)

func (s *Store) CreateView(ctx context.Context, tableID uuid.UUID, name string) (*entity.View, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	view := entity.View{Name: name, TableID: tableID}
	if err := s.db.WithContext(ctx).Create(&view).Error; err != nil {
		return nil, fmt.Errorf("failed to create view: %w", err)
	}
	return &view, nil
}

func (s *Store) ListViews(ctx context.Context, tableID uuid.UUID) ([]entity.View, error) {
	var views []entity.View
	if err := s.db.WithContext(ctx).Where("table_id = ?", tableID).Order("created_at ASC").Find(&views).Error; err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}
	return views, nil
}

// HideColumn marks a column hidden in one view. Hiding an already hidden
// column is a no-op rather than a constraint violation.
func (s *Store) HideColumn(ctx context.Context, viewID, columnID uuid.UUID) error {
	hidden := entity.ViewHiddenColumn{ViewID: viewID, ColumnID: columnID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "view_id"}, {Name: "column_id"}},
		DoNothing: true,
	}).Create(&hidden).Error
	if err != nil {
		return fmt.Errorf("failed to hide column: %w", err)
	}
	return nil
}

// UnhideColumn deletes the hidden marker outright so a later hide can reuse
// the (view_id, column_id) key.
func (s *Store) UnhideColumn(ctx context.Context, viewID, columnID uuid.UUID) error {
	err := s.db.WithContext(ctx).Unscoped().
		Where("view_id = ? AND column_id = ?", viewID, columnID).
		Delete(&entity.ViewHiddenColumn{}).Error
	if err != nil {
		return fmt.Errorf("failed to unhide column: %w", err)
	}
	return nil
}
