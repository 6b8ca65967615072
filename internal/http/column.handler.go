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

func CreateColumn(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name    string `json:"name" binding:"required"`
			Type    string `json:"type" binding:"required"`
			TableID string `json:"table_id" binding:"required"`
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

		column, err := ctx.Store.CreateColumn(c.Request.Context(), tableID, req.Name, req.Type)
		if err != nil {
			if errors.Is(err, store.ErrEmptyName) || errors.Is(err, store.ErrInvalidColumnType) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to create column", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create column"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"column": column})
	}
}

func GetColumnsByTableID(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID, err := uuid.Parse(c.Param("tableID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
			return
		}

		columns, err := ctx.Store.ListColumns(c.Request.Context(), tableID)
		if err != nil {
			ctx.Logger.Error("Failed to fetch columns", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch columns"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"columns": columns})
	}
}
