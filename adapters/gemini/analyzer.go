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

const analyzerSystemInstruction = "You are a senior legal counsel specialized in contract law. " +
	"Provide meticulous analysis focusing on liabilities, risks, and obligations."

// contractSchema constrains the model output to the contract analysis shape
var contractSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"title":         {Type: genai.TypeString},
		"effectiveDate": {Type: genai.TypeString},
		"parties": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {Type: genai.TypeString},
					"role": {Type: genai.TypeString},
				},
			},
		},
		"terminationNotice": {Type: genai.TypeString},
		"governingLaw":      {Type: genai.TypeString},
		"riskLevel": {
			Type: genai.TypeString,
			Enum: []string{"Low", "Medium", "High", "Critical"},
		},
		"keyClauses": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":     {Type: genai.TypeString},
					"summary":   {Type: genai.TypeString},
					"riskScore": {Type: genai.TypeNumber},
				},
			},
		},
		"summary": {Type: genai.TypeString},
	},
}

// Analyzer implements the ContractAnalyzer interface using Gemini structured
// output.
type Analyzer struct {
	client *genai.Client
	logger *zap.Logger
	model  string
}

var _ repositories.ContractAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates a contract analyzer backed by the given model
func NewAnalyzer(client *genai.Client, logger *zap.Logger, model string) *Analyzer {
	return &Analyzer{client: client, logger: logger, model: model}
}

// Analyze extracts structured key information from raw document text
func (a *Analyzer) Analyze(ctx context.Context, text string) (*entities.ContractAnalysis, error) {
	prompt := fmt.Sprintf("Analyze this legal document and extract key information in a structured format: \n\n %s", text)
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(analyzerSystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    contractSchema,
	})
	if err != nil {
		return nil, fmt.Errorf("contract analysis request: %w", err)
	}

	analysis, err := parseAnalysis(responseText(resp))
	if err != nil {
		a.logger.Error("Contract analysis response unparseable",
			zap.String("model", a.model),
			zap.Error(err))
		return nil, err
	}

	a.logger.Info("Contract analyzed",
		zap.String("riskLevel", string(analysis.RiskLevel)),
		zap.Int("clauses", len(analysis.KeyClauses)))
	return analysis, nil
}

func parseAnalysis(raw string) (*entities.ContractAnalysis, error) {
	var analysis entities.ContractAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("parse contract analysis: %w", err)
	}
	if err := analysis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contract analysis: %w", err)
	}
	return &analysis, nil
}
