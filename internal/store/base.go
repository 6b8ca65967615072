package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kj4c/airtable/internal/entity"
)

func (s *Store) CreateBase(ctx context.Context, name string) (*entity.Base, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	base := entity.Base{Name: name}
	if err := s.db.WithContext(ctx).Create(&base).Error; err != nil {
		return nil, fmt.Errorf("failed to create base: %w", err)
	}
	return &base, nil
}

func (s *Store) ListBases(ctx context.Context) ([]entity.Base, error) {
	var bases []entity.Base
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&bases).Error; err != nil {
		return nil, fmt.Errorf("failed to list bases: %w", err)
	}
	return bases, nil
}

func (s *Store) CreateTable(ctx context.Context, baseID uuid.UUID, name string) (*entity.Table, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	table := entity.Table{Name: name, BaseID: baseID}
	if err := s.db.WithContext(ctx).Create(&table).Error; err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &table, nil
}

func (s *Store) ListTables(ctx context.Context, baseID uuid.UUID) ([]entity.Table, error) {
	var tables []entity.Table
	if err := s.db.WithContext(ctx).Where("base_id = ?", baseID).Order("created_at ASC").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}
