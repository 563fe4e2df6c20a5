// Package pgx implements the chunk store on PostgreSQL with pgvector
// similarity search.
package pgx

import (
	"context"
	"fmt"
	"sync"

	"rasid/internal/util"
	"rasid/pkg/ai"
	"rasid/pkg/article"
	"rasid/pkg/logger"
	"rasid/pkg/store"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"golang.org/x/sync/errgroup"
)

// insertBatchSize bounds the number of chunks embedded and written per
// round trip during a reindex.
const insertBatchSize = 500

// embedWorkers limits parallel embedding requests during indexing.
const embedWorkers = 4

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// VectorStore implements store.ChunkStore. Writes are serialized with a
// mutex; reads go straight to the pool.
type VectorStore struct {
	conn     pgxIConn
	aiClient ai.AnalysisAIClient
	dbLock   sync.Mutex
}

// NewVectorStore creates a VectorStore on an existing connection or pool.
func NewVectorStore(conn pgxIConn, aiClient ai.AnalysisAIClient) *VectorStore {
	return &VectorStore{
		conn:     conn,
		aiClient: aiClient,
	}
}

// Reindex rebuilds the chunk index from the given articles inside one
// transaction. The previous contents are dropped, so a failed run
// leaves the old index in place. Returns the number of chunks written.
func (s *VectorStore) Reindex(ctx context.Context, articles []article.Article) (int, error) {
	chunks := store.BuildChunks(articles)
	logger.Info("reindexing chunk store", "articles", len(articles), "chunks", len(chunks))

	embeddings, err := s.embedChunks(ctx, chunks)
	if err != nil {
		return 0, err
	}

	s.dbLock.Lock()
	defer s.dbLock.Unlock()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE article_chunks`); err != nil {
		return 0, fmt.Errorf("failed to clear chunk table: %w", err)
	}

	for start := 0; start < len(chunks); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		batch := &pgxv5.Batch{}
		for i := start; i < end; i++ {
			c := chunks[i]
			batch.Queue(
				`INSERT INTO article_chunks
					(id, text, title, url, date, language, article_index, chunk_index, embedding)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				c.ID, util.SanitizePostgresText(c.Text), util.SanitizePostgresText(c.Title),
				c.URL, c.Date, c.Language,
				c.ArticleIndex, c.ChunkIndex, pgvector.NewVector(embeddings[i]),
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return 0, fmt.Errorf("failed to insert chunk batch %d-%d: %w", start, end, err)
		}
		logger.Debug("indexed chunk batch", "from", start, "to", end, "total", len(chunks))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit reindex: %w", err)
	}
	return len(chunks), nil
}

// embedChunks generates embeddings for all chunks, batching requests and
// running a bounded number of batches in parallel.
func (s *VectorStore) embedChunks(ctx context.Context, chunks []store.Chunk) ([][]float32, error) {
	embeddings := make([][]float32, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(embedWorkers)

	for start := 0; start < len(chunks); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		g.Go(func() error {
			inputs := make([][]byte, end-start)
			for i := start; i < end; i++ {
				inputs[i-start] = []byte(chunks[i].Text)
			}
			batch, err := s.aiClient.GenerateEmbeddings(gctx, inputs)
			if err != nil {
				return fmt.Errorf("failed to embed chunks %d-%d: %w", start, end, err)
			}
			copy(embeddings[start:end], batch)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return embeddings, nil
}

// Query embeds the query text and returns the k nearest chunks by
// cosine distance.
func (s *VectorStore) Query(ctx context.Context, query string, k int) ([]store.Chunk, error) {
	if k <= 0 {
		return nil, nil
	}

	embedding, err := s.aiClient.GenerateEmbedding(ctx, []byte(query))
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	rows, err := s.conn.Query(ctx,
		`SELECT id, text, title, url, date, language, article_index, chunk_index
		 FROM article_chunks
		 ORDER BY embedding <=> $1
		 LIMIT $2`,
		pgvector.NewVector(embedding), k,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []store.Chunk
	for rows.Next() {
		var c store.Chunk
		if err := rows.Scan(
			&c.ID, &c.Text, &c.Title, &c.URL, &c.Date, &c.Language,
			&c.ArticleIndex, &c.ChunkIndex,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Count returns the number of indexed chunks.
func (s *VectorStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.conn.QueryRow(ctx, `SELECT count(*) FROM article_chunks`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}
