// Package search provides the client for the external semantic search index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/chrisns/govreposcrape-sub006/pkg/core"
)

// Config holds configuration for the search index client.
type Config struct {
	Addresses []string `mapstructure:"addresses"`
	APIKey    string   `mapstructure:"api_key"` //nolint:gosec // config field, not a secret value
	Index     string   `mapstructure:"index"`
}

// Client queries the external search index over its HTTP API. The index's
// ranking algorithm is opaque; matches are returned in the order supplied.
type Client struct {
	es    *elasticsearch.Client
	index string
}

// New creates a search index client from the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.Index == "" {
		return nil, fmt.Errorf("search index name must be specified")
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	return &Client{es: es, index: cfg.Index}, nil
}

// searchResponse mirrors the subset of the index response the client consumes.
type searchResponse struct {
	Hits struct {
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Score  float64 `json:"_score"`
			Source struct {
				Content string `json:"content"`
				Locator string `json:"locator"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search submits the query text to the index and returns up to limit matches
// in index order. Scores are normalized to [0,1] against the response's
// max_score when present; no re-ranking is applied.
func (c *Client) Search(ctx context.Context, text string, limit int) ([]core.Match, error) {
	body, err := json.Marshal(map[string]any{
		"size": limit,
		"query": map[string]any{
			"match": map[string]any{
				"content": map[string]any{"query": text},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search index returned %s", res.Status())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	matches := make([]core.Match, 0, len(sr.Hits.Hits))

	for _, hit := range sr.Hits.Hits {
		score := hit.Score
		if sr.Hits.MaxScore != nil && *sr.Hits.MaxScore > 0 {
			score = hit.Score / *sr.Hits.MaxScore
		}

		matches = append(matches, core.Match{
			Text:    hit.Source.Content,
			Score:   score,
			Locator: hit.Source.Locator,
		})
	}

	return matches, nil
}
