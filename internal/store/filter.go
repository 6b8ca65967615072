package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kj4c/airtable/internal/entity"
	"github.com/kj4c/airtable/internal/query"
)

// FilterWithColumn is a view filter joined with its column's name and type,
// the shape the filter editor renders.
type FilterWithColumn struct {
	ID         uuid.UUID `json:"id"`
	ViewID     uuid.UUID `json:"view_id"`
	ColumnID   uuid.UUID `json:"column_id"`
	Operator   string    `json:"operator"`
	Value      *string   `json:"value"`
	ColumnName string    `json:"column_name"`
	ColumnType string    `json:"column_type"`
}

// FilterUpdate is a partial filter edit. Value is only applied when SetValue
// is true, so callers can distinguish "clear the value" from "leave it".
type FilterUpdate struct {
	ColumnID *uuid.UUID
	Operator *string
	Value    *string
	SetValue bool
}

func (s *Store) CreateFilter(ctx context.Context, viewID, columnID uuid.UUID, operator string, value *string) (*entity.ViewFilter, error) {
	if !query.IsValidOperator(operator) {
		return nil, fmt.Errorf("%w: %q", query.ErrUnsupportedOperator, operator)
	}
	if !query.OperatorNeedsValue(operator) {
		value = nil
	}

	filter := entity.ViewFilter{
		ViewID:   viewID,
		ColumnID: columnID,
		Operator: operator,
		Value:    value,
	}
	if err := s.db.WithContext(ctx).Create(&filter).Error; err != nil {
		return nil, fmt.Errorf("failed to create filter: %w", err)
	}
	return &filter, nil
}

func (s *Store) ListFilters(ctx context.Context, viewID uuid.UUID) ([]FilterWithColumn, error) {
	var filters []FilterWithColumn
	err := s.db.WithContext(ctx).
		Table("view_filters").
		Select("view_filters.id, view_filters.view_id, view_filters.column_id, view_filters.operator, view_filters.value, columns.name AS column_name, columns.type AS column_type").
		Joins("JOIN columns ON view_filters.column_id = columns.id").
		Where("view_filters.view_id = ? AND view_filters.deleted_at IS NULL", viewID).
		Scan(&filters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list filters: %w", err)
	}
	return filters, nil
}

// UpdateFilter applies a partial edit. Switching to a value-less operator
// clears the stored value, whatever the patch says.
func (s *Store) UpdateFilter(ctx context.Context, filterID uuid.UUID, update FilterUpdate) error {
	updates := map[string]any{}
	if update.ColumnID != nil {
		updates["column_id"] = *update.ColumnID
	}
	if update.Operator != nil {
		if !query.IsValidOperator(*update.Operator) {
			return fmt.Errorf("%w: %q", query.ErrUnsupportedOperator, *update.Operator)
		}
		updates["operator"] = *update.Operator
	}
	if update.SetValue {
		updates["value"] = update.Value
	}
	if update.Operator != nil && !query.OperatorNeedsValue(*update.Operator) {
		updates["value"] = nil
	}
	if len(updates) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&entity.ViewFilter{}).Where("id = ?", filterID).Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update filter: %w", err)
	}
	return nil
}

func (s *Store) DeleteFilter(ctx context.Context, filterID uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&entity.ViewFilter{}, "id = ?", filterID).Error; err != nil {
		return fmt.Errorf("failed to delete filter: %w", err)
	}
	return nil
}
