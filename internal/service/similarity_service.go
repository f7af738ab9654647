package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash/fnv"
	"log"
	"math"
	"strings"
	"unicode"
)

// Embedder turns text into a dense vector. Implementations must be
// deterministic for a fixed model and input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	ModelName() string
}

// EmbeddingStore is the persistence side of CachedEmbedder.
type EmbeddingStore interface {
	FindEmbedding(hash string) ([]float32, bool, error)
	SaveEmbedding(hash, model string, values []float32) error
}

type SimilarityService struct {
	embedder Embedder
}

func NewSimilarityService(embedder Embedder) *SimilarityService {
	return &SimilarityService{embedder: embedder}
}

// Similarity returns the cosine similarity of the two texts' embeddings.
// A blank side scores 0 so an unreadable resume degrades into a low score
// instead of an error.
func (s *SimilarityService) Similarity(ctx context.Context, resumeText, jobDescription string) (float64, error) {
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobDescription) == "" {
		return 0, nil
	}

	resumeVec, err := s.embedder.Embed(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed resume: %w", err)
	}
	jobVec, err := s.embedder.Embed(ctx, jobDescription)
	if err != nil {
		return 0, fmt.Errorf("failed to embed job description: %w", err)
	}
	return CosineSimilarity(resumeVec, jobVec), nil
}

// CosineSimilarity returns 0 for mismatched or zero-length vectors.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ATSScore converts a similarity into the 0-100 display value rounded to two
// decimals.
func ATSScore(similarity float64) float64 {
	score := math.Round(similarity*100*100) / 100
	return math.Max(0, math.Min(100, score))
}

// LexicalEmbedder is the offline embedder used when no embedding API is
// configured: stop-word filtered term frequencies, feature-hashed into a
// fixed number of buckets.
type LexicalEmbedder struct {
	Dimensions int
}

func NewLexicalEmbedder() *LexicalEmbedder {
	return &LexicalEmbedder{Dimensions: 1024}
}

func (e *LexicalEmbedder) ModelName() string {
	return fmt.Sprintf("lexical-tf-%d", e.Dimensions)
}

func (e *LexicalEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.Dimensions)
	for _, token := range Tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[h.Sum32()%uint32(e.Dimensions)]++
	}
	return vec, nil
}

// Tokenize lower-cases text, splits on anything that is not a letter, digit,
// '+' or '#', and drops English stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

var stopWords = func() map[string]struct{} {
	words := strings.Fields(`a about above after again against all am an and any are as at be because been
		before being below between both but by can could did do does doing down during each few for from
		further had has have having he her here hers herself him himself his how i if in into is it its
		itself just me more most my myself no nor not now of off on once only or other our ours ourselves
		out over own same she should so some such than that the their theirs them themselves then there
		these they this those through to too under until up very was we were what when where which while
		who whom why will with would you your yours yourself yourselves`)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// CachedEmbedder memoises another Embedder in an EmbeddingStore. Store
// failures are logged and never fail the request.
type CachedEmbedder struct {
	next  Embedder
	store EmbeddingStore
}

func NewCachedEmbedder(next Embedder, store EmbeddingStore) *CachedEmbedder {
	return &CachedEmbedder{next: next, store: store}
}

func (c *CachedEmbedder) ModelName() string {
	return c.next.ModelName()
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	hash := contentHash(c.next.ModelName(), text)

	if values, ok, err := c.store.FindEmbedding(hash); err != nil {
		log.Printf("embedding cache lookup failed: %v", err)
	} else if ok {
		return values, nil
	}

	values, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.store.SaveEmbedding(hash, c.next.ModelName(), values); err != nil {
		log.Printf("embedding cache write failed: %v", err)
	}
	return values, nil
}

func contentHash(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}
