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

func CreateView(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name    string `json:"name" binding:"required"`
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

		view, err := ctx.Store.CreateView(c.Request.Context(), tableID, req.Name)
		if err != nil {
			if errors.Is(err, store.ErrEmptyName) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to create view", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create view"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"view": view})
	}
}

func GetViewsByTableID(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID, err := uuid.Parse(c.Param("tableID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid table ID"})
			return
		}

		views, err := ctx.Store.ListViews(c.Request.Context(), tableID)
		if err != nil {
			ctx.Logger.Error("Failed to fetch views", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch views"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"views": views})
	}
}

func HideColumn(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		var req struct {
			ColumnID string `json:"column_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		columnID, err := uuid.Parse(req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
			return
		}

		if err := ctx.Store.HideColumn(c.Request.Context(), viewID, columnID); err != nil {
			ctx.Logger.Error("Failed to hide column", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hide column"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"hidden": true})
	}
}

func UnhideColumn(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}
		columnID, err := uuid.Parse(c.Param("columnID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
			return
		}

		if err := ctx.Store.UnhideColumn(c.Request.Context(), viewID, columnID); err != nil {
			ctx.Logger.Error("Failed to unhide column", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unhide column"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"hidden": false})
	}
}
