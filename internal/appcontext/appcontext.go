package appcontext

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kj4c/airtable/internal/query"
	"github.com/kj4c/airtable/internal/store"
)

type Context struct {
	DB     *gorm.DB
	Logger *zap.Logger

	Store  *store.Store
	Engine *query.Engine
}
