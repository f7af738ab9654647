package repository

import (
	"errors"
	"time"

	"github.com/fadilmartias/careermate-api/internal/model"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmbeddingRepository struct {
	db *gorm.DB
}

func NewEmbeddingRepository(db *gorm.DB) *EmbeddingRepository {
	return &EmbeddingRepository{db}
}

// FindEmbedding returns the cached vector for hash. A miss is not an error.
func (r *EmbeddingRepository) FindEmbedding(hash string) ([]float32, bool, error) {
	var entry model.EmbeddingCache
	err := r.db.First(&entry, "content_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return entry.Embedding.Slice(), true, nil
}

func (r *EmbeddingRepository) SaveEmbedding(hash, modelName string, values []float32) error {
	entry := model.EmbeddingCache{
		ID:          uuid.New(),
		ContentHash: hash,
		Model:       modelName,
		Embedding:   pgvector.NewVector(values),
		CreatedAt:   time.Now(),
	}
	// concurrent requests may embed the same text; first writer wins
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "content_hash"}},
		DoNothing: true,
	}).Create(&entry).Error
}
