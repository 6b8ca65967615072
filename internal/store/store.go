package store

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrEmptyName         = errors.New("name must not be empty")
	ErrInvalidColumnType = errors.New("column type must be text or number")
	ErrInvalidDirection  = errors.New("sort direction must be asc or desc")
	ErrNoColumns         = errors.New("table has no columns")
	ErrInvalidRowCount   = errors.New("row count must be positive")
)

// Store holds every mutation the UI performs against the data model. Reads
// that feed the query engine live in internal/query; everything here is
// simple create/update/delete plumbing plus the cell-backfill invariants.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

func New(db *gorm.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}
