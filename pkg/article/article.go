package article

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Article is one scraped publication. Articles are immutable once
// ingested; everything downstream works on copies or bounded prefixes.
type Article struct {
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	Content    string      `json:"content"`
	Date       string      `json:"date"`
	Author     *Author     `json:"author,omitempty"`
	References []Reference `json:"references,omitempty"`
	Category   string      `json:"category,omitempty"`
	Language   string      `json:"language"`
}

// Author holds the byline information extracted from an article page.
type Author struct {
	Name     string `json:"name,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Position string `json:"position,omitempty"`
}

// Reference is a footnote entry from an article, with any links it carries.
type Reference struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Links []string `json:"links,omitempty"`
}

// LoadFile reads a JSON array of articles from path.
func LoadFile(path string) ([]Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read articles file: %w", err)
	}

	var articles []Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("failed to parse articles file: %w", err)
	}
	return articles, nil
}

// SaveFile writes articles as an indented JSON array, creating the parent
// directory when missing.
func SaveFile(path string, articles []Article) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode articles: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write articles file: %w", err)
	}
	return nil
}
