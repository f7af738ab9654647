package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingCache memoises one embedding per (model, text) pair. ContentHash is
// the hex sha256 of the model name and the exact text that was embedded.
type EmbeddingCache struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ContentHash string          `gorm:"type:char(64);uniqueIndex" json:"content_hash"`
	Model       string          `gorm:"type:varchar(100)" json:"model"`
	Embedding   pgvector.Vector `gorm:"type:vector" json:"embedding"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (e *EmbeddingCache) TableName() string {
	return "embedding_cache"
}
