package gemini

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/ashumnni/juris-ai/domain/entities"
	"github.com/ashumnni/juris-ai/domain/repositories"
)

const researcherSystemInstruction = "You are a professional legal researcher. " +
	"Use Google Search to find current precedents, statutes, and legal interpretations. " +
	"Always cite your sources."

// noFindingsAnswer is returned when the model produced no text at all
const noFindingsAnswer = "No research findings available."

// Researcher implements the LegalResearcher interface with search grounding
type Researcher struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

var _ repositories.LegalResearcher = (*Researcher)(nil)

// NewResearcher creates a legal researcher backed by the given model
func NewResearcher(client *genai.Client, logger *zap.Logger, model string) *Researcher {
	return &Researcher{client: client, logger: logger, model: model}
}

// Research answers a free-text query with cited sources
func (r *Researcher) Research(ctx context.Context, query string) (*entities.ResearchResult, error) {
	contents := []*genai.Content{genai.NewContentFromText(query, genai.RoleUser)}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(researcherSystemInstruction, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return nil, fmt.Errorf("legal research request: %w", err)
	}

	answer := responseText(resp)
	if answer == "" {
		answer = noFindingsAnswer
	}
	sources := extractSources(resp)

	r.logger.Info("Research completed",
		zap.Int("sources", len(sources)),
		zap.Int("answerLength", len(answer)))

	return &entities.ResearchResult{Answer: answer, Sources: sources}, nil
}

// extractSources collects the web grounding citations of the first candidate.
// Chunks without web metadata are skipped; missing fields get placeholders so
// every returned source is renderable.
func extractSources(resp *genai.GenerateContentResponse) []entities.GroundingSource {
	sources := []entities.GroundingSource{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		source := entities.GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI}
		if source.Title == "" {
			source.Title = "Legal Source"
		}
		if source.URI == "" {
			source.URI = "#"
		}
		sources = append(sources, source)
	}
	return sources
}
