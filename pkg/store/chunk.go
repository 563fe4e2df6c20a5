package store

import (
	"fmt"
	"strings"

	"rasid/pkg/article"
)

const (
	// DefaultChunkSize and DefaultChunkOverlap are in words. Overlapping
	// word windows keep cross-sentence context retrievable in Arabic text.
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200

	// minChunkRunes drops fragments too short to embed meaningfully.
	minChunkRunes = 50
	// minArticleRunes skips stub articles entirely.
	minArticleRunes = 100
)

// ChunkText splits text into overlapping word windows. Chunks at or
// under minChunkRunes are dropped.
func ChunkText(text string, size, overlap int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	// An overlap at or above the window size would make the step zero or
	// negative, so fall back to the default size:overlap ratio.
	if overlap < 0 || overlap >= size {
		overlap = size * DefaultChunkOverlap / DefaultChunkSize
	}

	words := strings.Fields(text)
	var chunks []string
	for i := 0; i < len(words); i += size - overlap {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")
		if len([]rune(chunk)) > minChunkRunes {
			chunks = append(chunks, chunk)
		}
	}
	return chunks
}

// BuildChunks turns articles into indexable chunks with metadata.
// Articles with fewer than minArticleRunes of content are skipped.
// IDs are deterministic per (article position, chunk position) so a
// rebuild over the same input produces the same ids.
func BuildChunks(articles []article.Article) []Chunk {
	var chunks []Chunk
	for i, art := range articles {
		if len([]rune(art.Content)) < minArticleRunes {
			continue
		}
		language := art.Language
		if language == "" {
			language = "ar"
		}
		for j, text := range ChunkText(art.Content, DefaultChunkSize, DefaultChunkOverlap) {
			chunks = append(chunks, Chunk{
				ID:           fmt.Sprintf("article_%d_chunk_%d", i, j),
				Text:         text,
				Title:        art.Title,
				URL:          art.URL,
				Date:         art.Date,
				Language:     language,
				ArticleIndex: i,
				ChunkIndex:   j,
			})
		}
	}
	return chunks
}
