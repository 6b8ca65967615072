package http

import (
	"github.com/gin-gonic/gin"

	"github.com/kj4c/airtable/internal/appcontext"
	"github.com/kj4c/airtable/internal/http/middleware"
)

type APIService struct {
	engine  *gin.Engine
	context *appcontext.Context
}

func NewHTTPService(ctx *appcontext.Context) *APIService {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORSMiddleware())

	service := &APIService{
		engine:  engine,
		context: ctx,
	}
	service.setupRoutes()
	return service
}

func (h *APIService) Engine() *gin.Engine {
	return h.engine
}

func (h *APIService) setupRoutes() {
	v1 := h.engine.Group("/api/v1")
	h.setupBaseRoutes(v1)
	h.setupTableRoutes(v1)
	h.setupColumnRoutes(v1)
	h.setupRowRoutes(v1)
	h.setupCellRoutes(v1)
	h.setupViewRoutes(v1)
	h.setupFilterRoutes(v1)
	h.setupSortRoutes(v1)
}

func (h *APIService) setupBaseRoutes(group *gin.RouterGroup) {
	bases := group.Group("/bases")

	bases.POST("/", CreateBase(h.context))
	bases.GET("/", GetBases(h.context))
	bases.GET("/:baseID/tables", GetTablesByBaseID(h.context))
}

func (h *APIService) setupTableRoutes(group *gin.RouterGroup) {
	tables := group.Group("/tables")

	tables.POST("/", CreateTable(h.context))
	tables.GET("/:tableID/columns", GetColumnsByTableID(h.context))
	tables.GET("/:tableID/views", GetViewsByTableID(h.context))
}

func (h *APIService) setupColumnRoutes(group *gin.RouterGroup) {
	columns := group.Group("/columns")

	columns.POST("/", CreateColumn(h.context))
}

func (h *APIService) setupRowRoutes(group *gin.RouterGroup) {
	rows := group.Group("/rows")

	rows.POST("/", CreateRow(h.context))
	rows.POST("/bulk", InsertBulkRows(h.context))
}

func (h *APIService) setupCellRoutes(group *gin.RouterGroup) {
	cells := group.Group("/cells")

	cells.POST("/", InsertCell(h.context))
}

func (h *APIService) setupViewRoutes(group *gin.RouterGroup) {
	views := group.Group("/views")

	views.POST("/", CreateView(h.context))
	views.GET("/:viewID/data", GetTableData(h.context))
	views.GET("/:viewID/filters", GetFiltersByViewID(h.context))
	views.GET("/:viewID/sorts", GetSortsByViewID(h.context))
	views.POST("/:viewID/hidden-columns", HideColumn(h.context))
	views.DELETE("/:viewID/hidden-columns/:columnID", UnhideColumn(h.context))
}

func (h *APIService) setupFilterRoutes(group *gin.RouterGroup) {
	filters := group.Group("/filters")

	filters.POST("/", CreateFilter(h.context))
	filters.PATCH("/:filterID", UpdateFilter(h.context))
	filters.DELETE("/:filterID", DeleteFilter(h.context))
}

func (h *APIService) setupSortRoutes(group *gin.RouterGroup) {
	sorts := group.Group("/sorts")

	sorts.POST("/", CreateSort(h.context))
	sorts.PATCH("/:sortID", UpdateSort(h.context))
	sorts.DELETE("/:sortID", DeleteSort(h.context))
}
