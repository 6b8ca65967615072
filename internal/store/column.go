package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kj4c/airtable/internal/entity"
)

// CreateColumn appends a column at the end of the table's display order and
// backfills an empty cell for every existing row, so the pivot step never
// has to invent values for rows that predate the column.
func (s *Store) CreateColumn(ctx context.Context, tableID uuid.UUID, name, columnType string) (*entity.Column, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if columnType != entity.ColumnTypeText && columnType != entity.ColumnTypeNumber {
		return nil, fmt.Errorf("%w: %q", ErrInvalidColumnType, columnType)
	}

	var column entity.Column
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		nextOrder, err := nextOrderValue(tx, &entity.Column{}, tableID)
		if err != nil {
			return err
		}

		column = entity.Column{
			Name:    name,
			Type:    columnType,
			Order:   nextOrder,
			TableID: tableID,
		}
		if err := tx.Create(&column).Error; err != nil {
			return fmt.Errorf("failed to create column: %w", err)
		}

		var rows []entity.Row
		if err := tx.Where("table_id = ?", tableID).Find(&rows).Error; err != nil {
			return fmt.Errorf("failed to load rows for backfill: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}

		empty := ""
		cells := make([]entity.Cell, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, entity.Cell{
				RowID:    row.ID,
				ColumnID: column.ID,
				Value:    &empty,
			})
		}
		if err := tx.CreateInBatches(cells, cellBatchSize).Error; err != nil {
			return fmt.Errorf("failed to backfill cells: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (s *Store) ListColumns(ctx context.Context, tableID uuid.UUID) ([]entity.Column, error) {
	var columns []entity.Column
	if err := s.db.WithContext(ctx).Where("table_id = ?", tableID).Order(`"order" ASC`).Find(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	return columns, nil
}

// nextOrderValue computes max(order)+1 within a table, 0 when empty. Works
// for both rows and columns, which share the order convention.
func nextOrderValue(tx *gorm.DB, model any, tableID uuid.UUID) (int, error) {
	var next int
	err := tx.Model(model).
		Where("table_id = ?", tableID).
		Select(`COALESCE(MAX("order"), -1) + 1`).
		Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("failed to compute next order: %w", err)
	}
	return next, nil
}
