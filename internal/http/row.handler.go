package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kj4c/airtable/internal/appcontext"
	"github.com/kj4c/airtable/internal/store"
)

func CreateRow(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TableID        string `json:"table_id" binding:"required"`
			SeedSampleData bool   `json:"seed_sample_data"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		tableID, err := uuid.Parse(req.TableID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
			return
		}

		row, err := ctx.Store.CreateRow(c.Request.Context(), tableID, req.SeedSampleData)
		if err != nil {
			ctx.Logger.Error("Failed to create row", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create row"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"row": row})
	}
}

// InsertBulkRows generates N sample rows. The loop is synchronous and
// best-effort: on a failed batch the response still reports how many rows
// were committed before the failure.
func InsertBulkRows(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			TableID string `json:"table_id" binding:"required"`
			Count   int    `json:"count" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		tableID, err := uuid.Parse(req.TableID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
			return
		}

		result, err := ctx.Store.InsertBulkRows(c.Request.Context(), tableID, req.Count)
		if err != nil {
			if errors.Is(err, store.ErrInvalidRowCount) || errors.Is(err, store.ErrNoColumns) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			var bulkErr *store.BulkInsertError
			if errors.As(err, &bulkErr) {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":  "Bulk insert stopped before completion",
					"result": result,
				})
				return
			}

			ctx.Logger.Error("Failed to bulk insert rows", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bulk insert rows"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"result": result})
	}
}
