package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kj4c/airtable/internal/appcontext"
	"github.com/kj4c/airtable/internal/store"
)

func CreateBase(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		base, err := ctx.Store.CreateBase(c.Request.Context(), req.Name)
		if err != nil {
			if errors.Is(err, store.ErrEmptyName) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			ctx.Logger.Error("Failed to create base", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create base"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"base": base})
	}
}

func GetBases(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		bases, err := ctx.Store.ListBases(c.Request.Context())
		if err != nil {
			ctx.Logger.Error("Failed to fetch bases", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bases"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"bases": bases})
	}
}
