package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kj4c/airtable/internal/appcontext"
	"github.com/kj4c/airtable/internal/config"
	apihttp "github.com/kj4c/airtable/internal/http"
	"github.com/kj4c/airtable/internal/query"
	"github.com/kj4c/airtable/internal/store"
)

func newTestService(t *testing.T) *apihttp.APIService {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	logger := zap.NewNop()
	ctx := &appcontext.Context{
		DB:     db,
		Logger: logger,
		Store:  store.New(db, logger),
		Engine: query.NewEngine(db, logger),
	}
	return apihttp.NewHTTPService(ctx)
}

func doJSON(t *testing.T, service *apihttp.APIService, method, path string, body any) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	service.Engine().ServeHTTP(w, req)

	parsed := map[string]json.RawMessage{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func extractID(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var obj struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &obj))
	require.NotEmpty(t, obj.ID)
	return obj.ID
}

func TestEndToEnd_TableDataFlow(t *testing.T) {
	service := newTestService(t)

	w, body := doJSON(t, service, http.MethodPost, "/api/v1/bases/", gin.H{"name": "crm"})
	require.Equal(t, http.StatusCreated, w.Code)
	baseID := extractID(t, body["base"])

	w, body = doJSON(t, service, http.MethodPost, "/api/v1/tables/", gin.H{"name": "contacts", "base_id": baseID})
	require.Equal(t, http.StatusCreated, w.Code)
	tableID := extractID(t, body["table"])

	w, body = doJSON(t, service, http.MethodPost, "/api/v1/columns/", gin.H{"name": "Name", "type": "text", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	nameColID := extractID(t, body["column"])

	w, body = doJSON(t, service, http.MethodPost, "/api/v1/columns/", gin.H{"name": "Age", "type": "number", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	ageColID := extractID(t, body["column"])

	var rowIDs []string
	for range [3]int{} {
		w, body = doJSON(t, service, http.MethodPost, "/api/v1/rows/", gin.H{"table_id": tableID})
		require.Equal(t, http.StatusCreated, w.Code)
		rowIDs = append(rowIDs, extractID(t, body["row"]))
	}

	for i, name := range []string{"alice", "bob", "carol"} {
		w, _ = doJSON(t, service, http.MethodPost, "/api/v1/cells/", gin.H{"row_id": rowIDs[i], "column_id": nameColID, "value": name})
		require.Equal(t, http.StatusOK, w.Code)
		w, _ = doJSON(t, service, http.MethodPost, "/api/v1/cells/", gin.H{"row_id": rowIDs[i], "column_id": ageColID, "value": fmt.Sprintf("%d", (i+1)*10)})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, body = doJSON(t, service, http.MethodPost, "/api/v1/views/", gin.H{"name": "grid", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	viewID := extractID(t, body["view"])

	// Only rows with Age > 15, sorted by the filter column.
	w, _ = doJSON(t, service, http.MethodPost, "/api/v1/filters/", gin.H{
		"view_id": viewID, "column_id": ageColID, "operator": ">", "value": "15",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, service, http.MethodGet, "/api/v1/views/"+viewID+"/data?limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page query.PageResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Data, 2)
	assert.Equal(t, int64(2), page.Meta.TotalRowCount)
	assert.Equal(t, "bob", page.Data[0][nameColID])
	assert.Equal(t, "carol", page.Data[1][nameColID])
	require.Len(t, page.Columns, 2)
	assert.Nil(t, page.NextCursor)
}

func TestGetTableData_UnknownViewReturns404(t *testing.T) {
	service := newTestService(t)

	w, _ := doJSON(t, service, http.MethodGet, "/api/v1/views/6a42e6a8-6f6e-4f11-a2bb-6f1f7d3c0b6d/data", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetTableData_RejectsBadPagination(t *testing.T) {
	service := newTestService(t)

	w, _ := doJSON(t, service, http.MethodGet, "/api/v1/views/6a42e6a8-6f6e-4f11-a2bb-6f1f7d3c0b6d/data?limit=nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, service, http.MethodGet, "/api/v1/views/6a42e6a8-6f6e-4f11-a2bb-6f1f7d3c0b6d/data?cursor=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateFilter_RejectsUnknownOperator(t *testing.T) {
	service := newTestService(t)

	w, body := doJSON(t, service, http.MethodPost, "/api/v1/bases/", gin.H{"name": "crm"})
	require.Equal(t, http.StatusCreated, w.Code)
	baseID := extractID(t, body["base"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/tables/", gin.H{"name": "contacts", "base_id": baseID})
	require.Equal(t, http.StatusCreated, w.Code)
	tableID := extractID(t, body["table"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/columns/", gin.H{"name": "Name", "type": "text", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	columnID := extractID(t, body["column"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/views/", gin.H{"name": "grid", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	viewID := extractID(t, body["view"])

	w, _ = doJSON(t, service, http.MethodPost, "/api/v1/filters/", gin.H{
		"view_id": viewID, "column_id": columnID, "operator": "like", "value": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateColumn_RejectsBadType(t *testing.T) {
	service := newTestService(t)

	w, body := doJSON(t, service, http.MethodPost, "/api/v1/bases/", gin.H{"name": "crm"})
	require.Equal(t, http.StatusCreated, w.Code)
	baseID := extractID(t, body["base"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/tables/", gin.H{"name": "contacts", "base_id": baseID})
	require.Equal(t, http.StatusCreated, w.Code)
	tableID := extractID(t, body["table"])

	w, _ = doJSON(t, service, http.MethodPost, "/api/v1/columns/", gin.H{"name": "Flag", "type": "boolean", "table_id": tableID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHiddenColumn_RoundTrip(t *testing.T) {
	service := newTestService(t)

	w, body := doJSON(t, service, http.MethodPost, "/api/v1/bases/", gin.H{"name": "crm"})
	require.Equal(t, http.StatusCreated, w.Code)
	baseID := extractID(t, body["base"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/tables/", gin.H{"name": "contacts", "base_id": baseID})
	require.Equal(t, http.StatusCreated, w.Code)
	tableID := extractID(t, body["table"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/columns/", gin.H{"name": "Name", "type": "text", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	columnID := extractID(t, body["column"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/views/", gin.H{"name": "grid", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	viewID := extractID(t, body["view"])

	w, _ = doJSON(t, service, http.MethodPost, "/api/v1/views/"+viewID+"/hidden-columns", gin.H{"column_id": columnID})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, service, http.MethodGet, "/api/v1/views/"+viewID+"/data", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page query.PageResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.Columns)

	w, _ = doJSON(t, service, http.MethodDelete, "/api/v1/views/"+viewID+"/hidden-columns/"+columnID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, service, http.MethodGet, "/api/v1/views/"+viewID+"/data", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	require.Len(t, page.Columns, 1)
}

func TestUpdateFilter_NullValueClearsIt(t *testing.T) {
	service := newTestService(t)

	w, body := doJSON(t, service, http.MethodPost, "/api/v1/bases/", gin.H{"name": "crm"})
	require.Equal(t, http.StatusCreated, w.Code)
	baseID := extractID(t, body["base"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/tables/", gin.H{"name": "contacts", "base_id": baseID})
	require.Equal(t, http.StatusCreated, w.Code)
	tableID := extractID(t, body["table"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/columns/", gin.H{"name": "Name", "type": "text", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	columnID := extractID(t, body["column"])
	w, body = doJSON(t, service, http.MethodPost, "/api/v1/views/", gin.H{"name": "grid", "table_id": tableID})
	require.Equal(t, http.StatusCreated, w.Code)
	viewID := extractID(t, body["view"])

	w, body = doJSON(t, service, http.MethodPost, "/api/v1/filters/", gin.H{
		"view_id": viewID, "column_id": columnID, "operator": "=", "value": "bob",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	filterID := extractID(t, body["filter"])

	w, _ = doJSON(t, service, http.MethodPatch, "/api/v1/filters/"+filterID, gin.H{"value": nil})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, service, http.MethodGet, "/api/v1/views/"+viewID+"/filters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var filters []store.FilterWithColumn
	require.NoError(t, json.Unmarshal(body["filters"], &filters))
	require.Len(t, filters, 1)
	assert.Nil(t, filters[0].Value)
	assert.Equal(t, "=", filters[0].Operator)

	// An update that omits the value key leaves it alone.
	w, _ = doJSON(t, service, http.MethodPatch, "/api/v1/filters/"+filterID, gin.H{"value": "alice"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, service, http.MethodPatch, "/api/v1/filters/"+filterID, gin.H{"operator": "!="})
	require.Equal(t, http.StatusOK, w.Code)

	w, body = doJSON(t, service, http.MethodGet, "/api/v1/views/"+viewID+"/filters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(body["filters"], &filters))
	require.Len(t, filters, 1)
	require.NotNil(t, filters[0].Value)
	assert.Equal(t, "alice", *filters[0].Value)
	assert.Equal(t, "!=", filters[0].Operator)
}
