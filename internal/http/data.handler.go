package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kj4c/airtable/internal/appcontext"
	"github.com/kj4c/airtable/internal/query"
)

// GetTableData is the page-resolution endpoint: one view, one offset, one
// optional search string in, one page of wide rows out.
func GetTableData(ctx *appcontext.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewID, err := uuid.Parse(c.Param("viewID"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid view ID"})
			return
		}

		limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		cursor, err := strconv.Atoi(c.DefaultQuery("cursor", "0"))
		if err != nil || cursor < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cursor"})
			return
		}
		search := c.Query("search")

		page, err := ctx.Engine.GetTableData(c.Request.Context(), viewID, limit, cursor, search)
		if err != nil {
			switch {
			case errors.Is(err, query.ErrViewNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "View not found"})
			case errors.Is(err, query.ErrUnsupportedOperator):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				ctx.Logger.Error("Failed to resolve table data", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve table data"})
			}
			return
		}

		c.JSON(http.StatusOK, page)
	}
}
