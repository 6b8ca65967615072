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

func CreateTable(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name   string `json:"name" binding:"required"`
			BaseID string `json:"base_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		baseID, err := uuid.Parse(req.BaseID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base ID"})
			return
		}

		table, err := ctx.Store.CreateTable(c.Request.Context(), baseID, req.Name)
		if err != nil {
			if errors.Is(err, store.ErrEmptyName) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to create table", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create table"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"table": table})
	}
}

func GetTablesByBaseID(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		baseID, err := uuid.Parse(c.Param("baseID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid base ID"})
			return
		}

		tables, err := ctx.Store.ListTables(c.Request.Context(), baseID)
		if err != nil {
			ctx.Logger.Error("Failed to fetch tables", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tables"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"tables": tables})
	}
}
