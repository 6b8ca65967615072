package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kj4c/airtable/internal/appcontext"
	"github.com/kj4c/airtable/internal/query"
	"github.com/kj4c/airtable/internal/store"
)

func CreateFilter(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ViewID   string  `json:"view_id" binding:"required"`
			ColumnID string  `json:"column_id" binding:"required"`
			Operator string  `json:"operator" binding:"required"`
			Value    *string `json:"value"`
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

		filter, err := ctx.Store.CreateFilter(c.Request.Context(), viewID, columnID, req.Operator, req.Value)
		if err != nil {
			if errors.Is(err, query.ErrUnsupportedOperator) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to create filter", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create filter"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"filter": filter})
	}
}

func GetFiltersByViewID(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		filters, err := ctx.Store.ListFilters(c.Request.Context(), viewID)
		if err != nil {
			ctx.Logger.Error("Failed to fetch filters", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch filters"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"filters": filters})
	}
}

func UpdateFilter(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		filterID, err := uuid.Parse(c.Param("filterID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter ID"})
			return
		}

		// Bound as raw fields so an explicit "value": null (clear the
		// value) stays distinguishable from an absent value key.
		var raw map[string]json.RawMessage
		if err := c.ShouldBindJSON(&raw); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		update := store.FilterUpdate{}
		if rawColumnID, ok := raw["column_id"]; ok {
			var idStr string
			if err := json.Unmarshal(rawColumnID, &idStr); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
				return
			}
			columnID, err := uuid.Parse(idStr)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid column ID"})
				return
			}
			update.ColumnID = &columnID
		}
		if rawOperator, ok := raw["operator"]; ok {
			var operator string
			if err := json.Unmarshal(rawOperator, &operator); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid operator"})
				return
			}
			update.Operator = &operator
		}
		if rawValue, ok := raw["value"]; ok {
			update.SetValue = true
			if err := json.Unmarshal(rawValue, &update.Value); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid value"})
				return
			}
		}

		if err := ctx.Store.UpdateFilter(c.Request.Context(), filterID, update); err != nil {
			if errors.Is(err, query.ErrUnsupportedOperator) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to update filter", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update filter"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"updated": true})
	}
}

func DeleteFilter(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		filterID, err := uuid.Parse(c.Param("filterID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter ID"})
			return
		}

		if err := ctx.Store.DeleteFilter(c.Request.Context(), filterID); err != nil {
			ctx.Logger.Error("Failed to delete filter", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete filter"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
