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

func CreateSort(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ViewID    string `json:"view_id" binding:"required"`
			ColumnID  string `json:"column_id" binding:"required"`
			Direction string `json:"direction" binding:"required"`
			SortOrder int    `json:"sort_order"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		viewID, err := uuid.Parse(req.ViewID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}
		columnID, err := uuid.Parse(req.ColumnID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
			return
		}

		viewSort, err := ctx.Store.CreateSort(c.Request.Context(), viewID, columnID, req.Direction, req.SortOrder)
		if err != nil {
			if errors.Is(err, store.ErrInvalidDirection) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to create sort", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create sort"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"sort": viewSort})
	}
}

func GetSortsByViewID(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		sorts, err := ctx.Store.ListSorts(c.Request.Context(), viewID)
		if err != nil {
			ctx.Logger.Error("Failed to fetch sorts", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sorts"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"sorts": sorts})
	}
}

func UpdateSort(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sortID, err := uuid.Parse(c.Param("sortID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort ID"})
			return
		}

		var req struct {
			ColumnID  *string `json:"column_id"`
			Direction *string `json:"direction"`
			SortOrder *int    `json:"sort_order"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		update := store.SortUpdate{
			Direction: req.Direction,
			SortOrder: req.SortOrder,
		}
		if req.ColumnID != nil {
			columnID, err := uuid.Parse(*req.ColumnID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
				return
			}
			update.ColumnID = &columnID
		}

		if err := ctx.Store.UpdateSort(c.Request.Context(), sortID, update); err != nil {
			if errors.Is(err, store.ErrInvalidDirection) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to update sort", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update sort"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func DeleteSort(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		sortID, err := uuid.Parse(c.Param("sortID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort ID"})
			return
		}

		if err := ctx.Store.DeleteSort(c.Request.Context(), sortID); err != nil {
			ctx.Logger.Error("Failed to delete sort", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete sort"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
