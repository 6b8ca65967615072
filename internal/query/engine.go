package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/kj4c/airtable/internal/entity"
)

var ErrViewNotFound = errors.New("view not found")

const defaultPageSize = 100

// Engine resolves pages of view data: it combines a view's stored filters,
// sorts and hidden columns with an optional search string into one ordered,
// offset-paginated row query over the cell store, then pivots the matching
// cells back into wide rows.
type Engine struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewEngine(db *gorm.DB, logger *zap.Logger) *Engine {
	return &Engine{db: db, logger: logger}
}

// GetTableData resolves one page of a view. The cursor is a row offset into
// the filtered, ordered result; NextCursor carries the next offset while more
// rows remain. The four loads and the row/cell/count queries are independent
// round trips with no shared snapshot, so interleaved view edits can produce
// a torn read. That is accepted for interactive views.
func (e *Engine) GetTableData(ctx context.Context, viewID uuid.UUID, limit, cursor int, search string) (*PageResult, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if cursor < 0 {
		cursor = 0
	}

	var view entity.View
	if err := e.db.WithContext(ctx).First(&view, "id = ?", viewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
		}
		return nil, fmt.Errorf("failed to load view: %w", err)
	}

	var (
		filters []entity.ViewFilter
		sorts   []entity.ViewSort
		hidden  []entity.ViewHiddenColumn
		columns []entity.Column
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.db.WithContext(gctx).Where("view_id = ?", view.ID).Find(&filters).Error
	})
	g.Go(func() error {
		return e.db.WithContext(gctx).Where("view_id = ?", view.ID).Find(&sorts).Error
	})
	g.Go(func() error {
		return e.db.WithContext(gctx).Where("view_id = ?", view.ID).Find(&hidden).Error
	})
	g.Go(func() error {
		return e.db.WithContext(gctx).Where("table_id = ?", view.TableID).Find(&columns).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load view configuration: %w", err)
	}

	colByID := make(map[uuid.UUID]entity.Column, len(columns))
	for _, col := range columns {
		colByID[col.ID] = col
	}
	visible := visibleColumns(columns, hidden)

	var total int64
	countQuery, err := e.matchingRows(ctx, view.TableID, filters, visible, colByID, search)
	if err != nil {
		return nil, err
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count matching rows: %w", err)
	}

	rowQuery, err := e.matchingRows(ctx, view.TableID, filters, visible, colByID, search)
	if err != nil {
		return nil, err
	}
	for _, expr := range sortExpressions(sorts, colByID) {
		rowQuery = rowQuery.Order(expr)
	}

	var pageRows []entity.Row
	if err := rowQuery.Offset(cursor).Limit(limit).Find(&pageRows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}

	cells, err := e.cellsForRows(ctx, pageRows, visible)
	if err != nil {
		return nil, err
	}

	var nextCursor *int
	if int64(cursor+limit) < total {
		next := cursor + limit
		nextCursor = &next
	}

	return &PageResult{
		Data:       generateRows(pageRows, visible, cells),
		Columns:    generateColumnMeta(visible),
		NextCursor: nextCursor,
		Meta:       PageMeta{TotalRowCount: total},
	}, nil
}

// visibleColumns drops hidden columns and any column literally named
// "order" (a presentation convention), and orders the rest by their display
// order.
func visibleColumns(columns []entity.Column, hidden []entity.ViewHiddenColumn) []entity.Column {
	hiddenIDs := make(map[uuid.UUID]bool, len(hidden))
	for _, h := range hidden {
		hiddenIDs[h.ColumnID] = true
	}

	visible := make([]entity.Column, 0, len(columns))
	for _, col := range columns {
		if hiddenIDs[col.ID] || col.Name == "order" {
			continue
		}
		visible = append(visible, col)
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Order < visible[j].Order
	})
	return visible
}

// matchingRows builds the filtered row query shared by the page fetch and
// the total count. Each active filter becomes an EXISTS predicate over the
// cell store, ANDed together: a row is shown only when it satisfies every
// active filter. The search string ORs an EXISTS predicate per visible
// column and is ANDed with the filters.
func (e *Engine) matchingRows(ctx context.Context, tableID uuid.UUID, filters []entity.ViewFilter, visible []entity.Column, colByID map[uuid.UUID]entity.Column, search string) (*gorm.DB, error) {
	q := e.db.WithContext(ctx).Model(&entity.Row{}).Where("rows.table_id = ?", tableID)

	for _, f := range filters {
		if !IsValidOperator(f.Operator) {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, f.Operator)
		}
		col, ok := colByID[f.ColumnID]
		if !ok {
			e.logger.Warn("filter references unknown column, skipping",
				zap.String("filter_id", f.ID.String()),
				zap.String("column_id", f.ColumnID.String()))
			continue
		}
		if !filterActive(f, col) {
			continue
		}
		cond, args, err := BuildOperatorCondition("cells.value", f.Operator, f.Value, col.IsNumber())
		if err != nil {
			return nil, err
		}
		q = q.Where(
			"EXISTS (SELECT 1 FROM cells WHERE cells.row_id = rows.id AND cells.column_id = ? AND cells.deleted_at IS NULL AND ("+cond+"))",
			append([]any{f.ColumnID}, args...)...,
		)
	}

	if search != "" {
		pattern := containsPattern(search)
		conds := make([]string, 0, len(visible))
		args := make([]any, 0, len(visible)*2)
		for _, col := range visible {
			conds = append(conds, "EXISTS (SELECT 1 FROM cells WHERE cells.row_id = rows.id AND cells.column_id = ? AND cells.deleted_at IS NULL AND LOWER(cells.value) LIKE ?)")
			args = append(args, col.ID, pattern)
		}
		if len(conds) == 0 {
			q = q.Where("1 = 0")
		} else {
			q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
		}
	}

	return q, nil
}

// filterActive reports whether a stored filter should be applied. Filters
// whose operator requires a value but whose value is blank are inactive, as
// are numeric comparisons whose value does not parse as a number (an
// uncastable operand can never match a row).
func filterActive(f entity.ViewFilter, col entity.Column) bool {
	if !OperatorNeedsValue(f.Operator) {
		return true
	}
	if f.Value == nil || strings.TrimSpace(*f.Value) == "" {
		return false
	}
	if col.IsNumber() {
		switch f.Operator {
		case OpEquals, OpNotEquals, OpGreaterThan, OpLessThan, OpIs:
			if _, err := strconv.ParseFloat(strings.TrimSpace(*f.Value), 64); err != nil {
				return false
			}
		}
	}
	return true
}

// sortExpressions renders the view's sorts into ORDER BY expressions. Each
// sort contributes two keys: an is-empty key so rows without a value for the
// sorted column always land last regardless of direction, then the cell
// value itself, cast when the column is numeric. Sorts chain as successive
// tie-breaks in ascending sort_order priority. The row's own insertion order
// is always the final tie-break so pagination walks a total order; it is
// also the entire ordering when the view has no sorts.
func sortExpressions(sorts []entity.ViewSort, colByID map[uuid.UUID]entity.Column) []string {
	ordered := make([]entity.ViewSort, len(sorts))
	copy(ordered, sorts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})

	var exprs []string
	for _, s := range ordered {
		col, ok := colByID[s.ColumnID]
		if !ok {
			continue
		}
		sub := fmt.Sprintf("(SELECT cells.value FROM cells WHERE cells.row_id = rows.id AND cells.column_id = '%s' AND cells.deleted_at IS NULL LIMIT 1)", s.ColumnID)
		exprs = append(exprs, fmt.Sprintf("CASE WHEN %s IS NULL OR TRIM(%s) = '' THEN 1 ELSE 0 END ASC", sub, sub))

		valueExpr := sub
		if col.IsNumber() {
			valueExpr = NumericCastExpr(sub)
		}
		direction := "ASC"
		if s.Direction == entity.SortDesc {
			direction = "DESC"
		}
		exprs = append(exprs, valueExpr+" "+direction)
	}
	return append(exprs, `rows."order" ASC`)
}

func (e *Engine) cellsForRows(ctx context.Context, rows []entity.Row, visible []entity.Column) ([]entity.Cell, error) {
	if len(rows) == 0 || len(visible) == 0 {
		return nil, nil
	}
	rowIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		rowIDs = append(rowIDs, r.ID)
	}
	columnIDs := make([]uuid.UUID, 0, len(visible))
	for _, c := range visible {
		columnIDs = append(columnIDs, c.ID)
	}

	var cells []entity.Cell
	if err := e.db.WithContext(ctx).Where("row_id IN ? AND column_id IN ?", rowIDs, columnIDs).Find(&cells).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cells: %w", err)
	}
	return cells, nil
}
