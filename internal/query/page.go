package query

import (
	"github.com/google/uuid"

	"github.com/kj4c/airtable/internal/entity"
)

// RowData is one wide row: the "id" key plus one key per visible column id,
// each holding that row's cell value ("" when no cell exists).
type RowData map[string]any

type ColumnMeta struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Type  string    `json:"type"`
	Order int       `json:"order"`
}

type PageMeta struct {
	TotalRowCount int64 `json:"totalRowCount"`
}

type PageResult struct {
	Data       []RowData    `json:"data"`
	Columns    []ColumnMeta `json:"columns"`
	NextCursor *int         `json:"nextCursor"`
	Meta       PageMeta     `json:"meta"`
}

func generateColumnMeta(cols []entity.Column) []ColumnMeta {
	meta := make([]ColumnMeta, 0, len(cols))
	for _, col := range cols {
		meta = append(meta, ColumnMeta{
			ID:    col.ID,
			Name:  col.Name,
			Type:  col.Type,
			Order: col.Order,
		})
	}
	return meta
}

// generateRows pivots EAV cells back into wide rows. Every returned row has
// the same key set: "id" plus every visible column id. A missing cell is
// substituted with "" so no key is ever omitted.
func generateRows(rows []entity.Row, cols []entity.Column, cells []entity.Cell) []RowData {
	cellsByRow := make(map[uuid.UUID][]entity.Cell, len(rows))
	for _, cell := range cells {
		cellsByRow[cell.RowID] = append(cellsByRow[cell.RowID], cell)
	}

	data := make([]RowData, 0, len(rows))
	for _, row := range rows {
		rowData := RowData{"id": row.ID.String()}
		for _, col := range cols {
			rowData[col.ID.String()] = ""
		}
		for _, cell := range cellsByRow[row.ID] {
			if _, ok := rowData[cell.ColumnID.String()]; !ok {
				continue
			}
			if cell.Value != nil {
				rowData[cell.ColumnID.String()] = *cell.Value
			}
		}
		data = append(data, rowData)
	}
	return data
}
