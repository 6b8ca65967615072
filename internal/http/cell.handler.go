package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kj4c/airtable/internal/appcontext"
)

// InsertCell upserts a cell value. The write is atomic on the
// (row_id, column_id) key, so concurrent edits of the same cell resolve
// last-write-wins.
func InsertCell(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RowID    string `json:"row_id" binding:"required"`
			ColumnID string `json:"column_id" binding:"required"`
			Value    string `json:"value"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		rowID, err := uuid.Parse(req.RowID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid row ID"})
			return
		}
		columnID, err := uuid.Parse(req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
			return
		}

		cell, err := ctx.Store.UpsertCell(c.Request.Context(), rowID, columnID, req.Value)
		if err != nil {
			ctx.Logger.Error("Failed to upsert cell", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert cell"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cell": cell})
	}
}
