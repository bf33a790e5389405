package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ashumnni/juris-ai/domain/entities"
	"github.com/ashumnni/juris-ai/domain/repositories"
)

const (
	newsSystemInstruction = "You are a legal news curator. Use Google Search to find current events. " +
		"Format the response as a JSON array of news items. Ensure URLs are valid."

	newsPrompt = "Fetch 4 of the most significant legal news stories or regulatory updates " +
		"from the last 24 hours. Focus on US Courts and major tech regulations."
)

var newsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":   {Type: genai.TypeString},
			"summary": {Type: genai.TypeString},
			"source":  {Type: genai.TypeString},
			"url":     {Type: genai.TypeString},
			"category": {
				Type: genai.TypeString,
				Enum: []string{"Regulatory", "Litigation", "Corporate", "Tech"},
			},
		},
		Required: []string{"title", "summary", "source", "url", "category"},
	},
}

// Curator implements the NewsCurator interface with search grounding
type Curator struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

var _ repositories.NewsCurator = (*Curator)(nil)

// NewCurator creates a news curator backed by the given model
func NewCurator(client *genai.Client, logger *zap.Logger, model string) *Curator {
	return &Curator{client: client, logger: logger, model: model}
}

// TrendingNews returns the most significant recent legal news items. An
// unparseable response degrades to an empty list rather than an error.
func (c *Curator) TrendingNews(ctx context.Context) ([]entities.NewsItem, error) {
	contents := []*genai.Content{genai.NewContentFromText(newsPrompt, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(newsSystemInstruction, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    newsSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("trending news request: %w", err)
	}

	items, err := parseNews(responseText(resp))
	if err != nil {
		c.logger.Warn("Failed to parse legal news, returning empty list", zap.Error(err))
		return []entities.NewsItem{}, nil
	}

	c.logger.Info("Trending news fetched", zap.Int("items", len(items)))
	return items, nil
}

func parseNews(raw string) ([]entities.NewsItem, error) {
	var items []entities.NewsItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("parse news items: %w", err)
	}
	if items == nil {
		items = []entities.NewsItem{}
	}
	return items, nil
}
