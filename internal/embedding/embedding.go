/*
Copyright © 2023 Zak Reynolds <zak.reynolds@zakjr.com>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program. If not, see <http://www.gnu.org/licenses/>.
*/

// Package embedding keeps named collections of embedded text and answers
// similarity queries against them.
package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrInvalidCollection = errors.New("invalid collection name")
	ErrNotFound          = errors.New("no such entry")
)

// Store is the capability the cli needs from a collection backend.
type Store interface {
	Add(ctx context.Context, collection, text string, metadata map[string]any) (string, error)
	Query(ctx context.Context, collection, text string, opts QueryOptions) ([]Match, error)
	Remove(ctx context.Context, collection, id string) error
}

type Entry struct {
	ID       string         `json:"id" yaml:"id"`
	Text     string         `json:"text" yaml:"text"`
	Vector   []float32      `json:"vector,omitempty" yaml:"-"`
	Metadata map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

type Match struct {
	Entry `yaml:",inline"`
	Score float64 `json:"score" yaml:"score"`
}

type QueryOptions struct {
	// MaxResults <= 0 means DefaultMaxResults.
	MaxResults int
	// Threshold drops matches scoring below it.
	Threshold float64
}

const DefaultMaxResults = 10

// Embedder turns text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type OpenAIEmbedder struct {
	api   *openai.Client
	model openai.EmbeddingModel
}

func NewOpenAIEmbedder(apiKey, baseURL string) *OpenAIEmbedder {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		api:   openai.NewClientWithConfig(cfg),
		model: openai.AdaEmbeddingV2,
	}
}

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.api.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input:          []string{text},
		Model:          e.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != 1 {
		return nil, fmt.Errorf("embedding result length %d not correct", len(resp.Data))
	}
	return resp.Data[0].Embedding, nil
}
