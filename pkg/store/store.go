// Package store defines the vector index capability used for retrieval
// augmented analysis of article chunks.
package store

import (
	"context"

	"rasid/pkg/article"
)

// Chunk is the unit stored in and returned from the vector index.
type Chunk struct {
	ID           string `json:"id"`
	Text         string `json:"text"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	Date         string `json:"date"`
	Language     string `json:"language"`
	ArticleIndex int    `json:"article_index"`
	ChunkIndex   int    `json:"chunk_index"`
}

// ChunkStore indexes article chunks and answers similarity queries.
// Reindex is destructive: the previous index contents are discarded.
type ChunkStore interface {
	Reindex(ctx context.Context, articles []article.Article) (int, error)
	Query(ctx context.Context, query string, k int) ([]Chunk, error)
	Count(ctx context.Context) (int, error)
}
