package document

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store defines the interface for document snapshot persistence
type Store interface {
	Get(ctx context.Context, id string) (*Document, error)
	CreateIfAbsent(ctx context.Context, id string, defaultData string) (*Document, error)
	Persist(ctx context.Context, id string, data string) error
}

// StoreImpl implements Store on top of gorm
type StoreImpl struct {
	db *gorm.DB
}

// NewStore creates a new document store
func NewStore(db *gorm.DB) Store {
	return &StoreImpl{db: db}
}

// Get fetches a document by id
func (s *StoreImpl) Get(ctx context.Context, id string) (*Document, error) {
	var doc Document
	err := s.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateIfAbsent inserts a document seeded with defaultData unless one
// already exists. Concurrent callers racing on the same id end up with a
// single row; everyone reads back whatever won.
func (s *StoreImpl) CreateIfAbsent(ctx context.Context, id string, defaultData string) (*Document, error) {
	now := time.Now().UTC()
	doc := Document{
		ID:        id,
		Data:      defaultData,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&doc).Error
	if err != nil {
		return nil, err
	}

	// re-read so a lost race still returns the existing row
	return s.Get(ctx, id)
}

// Persist overwrites the stored payload, last write wins. The row is
// upserted so a save against a document missing from storage still lands.
func (s *StoreImpl) Persist(ctx context.Context, id string, data string) error {
	now := time.Now().UTC()
	doc := Document{
		ID:        id,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&doc).Error
}
