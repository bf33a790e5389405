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

const rewriterSystemInstruction = "You are a master legal drafter. " +
	"Rewrite the provided clause according to the instructions while maintaining legal validity. " +
	"Provide the original, the suggested new text, and a brief explanation of the changes."

var suggestionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"original":    {Type: genai.TypeString},
		"suggestion":  {Type: genai.TypeString},
		"explanation": {Type: genai.TypeString},
	},
	Required: []string{"original", "suggestion", "explanation"},
}

// Rewriter implements the ClauseRewriter interface
type Rewriter struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

var _ repositories.ClauseRewriter = (*Rewriter)(nil)

// NewRewriter creates a clause rewriter backed by the given model
func NewRewriter(client *genai.Client, logger *zap.Logger, model string) *Rewriter {
	return &Rewriter{client: client, logger: logger, model: model}
}

// Rewrite redrafts a clause according to the given instruction
func (r *Rewriter) Rewrite(ctx context.Context, title, originalText, instruction string) (*entities.DraftingSuggestion, error) {
	prompt := fmt.Sprintf("Instruction: %s\n\nClause: %s\nText: %s", instruction, title, originalText)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(rewriterSystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    suggestionSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("clause rewrite request: %w", err)
	}

	var suggestion entities.DraftingSuggestion
	if err := json.Unmarshal([]byte(responseText(resp)), &suggestion); err != nil {
		r.logger.Error("Clause rewrite response unparseable",
			zap.String("model", r.model),
			zap.Error(err))
		return nil, fmt.Errorf("parse drafting suggestion: %w", err)
	}

	r.logger.Info("Clause rewritten", zap.String("clause", title))
	return &suggestion, nil
}
