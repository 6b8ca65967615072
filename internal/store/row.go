package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kj4c/airtable/internal/entity"
)

// Row and cell inserts are chunked so a bulk generation never produces an
// oversized single statement.
const (
	rowBatchSize  = 500
	cellBatchSize = 500
)

// BulkInsertError reports a bulk generation that stopped partway. Batches
// committed before the failure stay committed.
type BulkInsertError struct {
	Inserted int
	Err      error
}

func (e *BulkInsertError) Error() string {
	return fmt.Sprintf("bulk insert stopped after %d rows: %v", e.Inserted, e.Err)
}

func (e *BulkInsertError) Unwrap() error {
	return e.Err
}

type BulkInsertResult struct {
	RowsRequested int `json:"rows_requested"`
	RowsInserted  int `json:"rows_inserted"`
}

// CreateRow appends a row at the end of the table's insertion order and
// backfills one cell per existing column. With seedSample set the cells get
// type-appropriate random values instead of empty strings.
func (s *Store) CreateRow(ctx context.Context, tableID uuid.UUID, seedSample bool) (*entity.Row, error) {
	var row entity.Row
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		nextOrder, err := nextOrderValue(tx, &entity.Row{}, tableID)
		if err != nil {
			return err
		}

		row = entity.Row{Order: nextOrder, TableID: tableID}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create row: %w", err)
		}

		var columns []entity.Column
		if err := tx.Where("table_id = ?", tableID).Find(&columns).Error; err != nil {
			return fmt.Errorf("failed to load columns for backfill: %w", err)
		}
		if len(columns) == 0 {
			return nil
		}

		cells := make([]entity.Cell, 0, len(columns))
		for _, column := range columns {
			value := ""
			if seedSample {
				value = sampleValue(column.Type)
			}
			v := value
			cells = append(cells, entity.Cell{
				RowID:    row.ID,
				ColumnID: column.ID,
				Value:    &v,
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
	return &row, nil
}

// InsertBulkRows generates count rows with sample data, committing in
// batches. A failing batch stops the loop; earlier batches are not rolled
// back and the returned result reports how many rows actually landed.
func (s *Store) InsertBulkRows(ctx context.Context, tableID uuid.UUID, count int) (*BulkInsertResult, error) {
	if count <= 0 {
		return nil, ErrInvalidRowCount
	}

	var columns []entity.Column
	if err := s.db.WithContext(ctx).Where("table_id = ?", tableID).Find(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to load columns: %w", err)
	}
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}

	nextOrder, err := nextOrderValue(s.db.WithContext(ctx), &entity.Row{}, tableID)
	if err != nil {
		return nil, err
	}

	result := &BulkInsertResult{RowsRequested: count}
	for batchStart := 0; batchStart < count; batchStart += rowBatchSize {
		batchCount := rowBatchSize
		if remaining := count - batchStart; remaining < batchCount {
			batchCount = remaining
		}

		// Each batch commits atomically, rows together with their cells.
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			rows := make([]entity.Row, batchCount)
			for i := range rows {
				rows[i] = entity.Row{
					Order:   nextOrder + batchStart + i,
					TableID: tableID,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert row batch: %w", err)
			}

			cells := make([]entity.Cell, 0, len(rows)*len(columns))
			for _, row := range rows {
				for _, column := range columns {
					v := sampleValue(column.Type)
					cells = append(cells, entity.Cell{
						RowID:    row.ID,
						ColumnID: column.ID,
						Value:    &v,
					})
				}
			}
			if err := tx.CreateInBatches(cells, cellBatchSize).Error; err != nil {
				return fmt.Errorf("failed to insert cell batch: %w", err)
			}
			return nil
		})
		if err != nil {
			s.logger.Error("bulk insert batch failed",
				zap.String("table_id", tableID.String()),
				zap.Int("rows_inserted", result.RowsInserted),
				zap.Error(err))
			return result, &BulkInsertError{Inserted: result.RowsInserted, Err: err}
		}
		result.RowsInserted += batchCount
	}
	return result, nil
}

func sampleValue(columnType string) string {
	if columnType == entity.ColumnTypeNumber {
		return strconv.Itoa(gofakeit.Number(0, 1000))
	}
	return gofakeit.LoremIpsumWord() + " " + gofakeit.LoremIpsumWord()
}
