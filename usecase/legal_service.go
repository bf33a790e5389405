package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/ashumnni/juris-ai/domain/entities"
	"github.com/ashumnni/juris-ai/domain/repositories"
	"github.com/ashumnni/juris-ai/internal/retry"
)

// ErrEmptyInput is returned when a request carries no usable text
var ErrEmptyInput = errors.New("input text is empty")

// LegalService orchestrates the downstream legal intelligence calls, applying
// a retry budget per operation. Document analysis and news curation retry on
// transient failures; drafting and research fail fast so the caller can
// adjust the request.
type LegalService struct {
	analyzer   repositories.ContractAnalyzer
	rewriter   repositories.ClauseRewriter
	researcher repositories.LegalResearcher
	curator    repositories.NewsCurator
	logger     *zap.Logger

	retryPolicy retry.Policy
}

// NewLegalService creates a legal service with the default retry policy
func NewLegalService(
	analyzer repositories.ContractAnalyzer,
	rewriter repositories.ClauseRewriter,
	researcher repositories.LegalResearcher,
	curator repositories.NewsCurator,
	logger *zap.Logger,
) *LegalService {
	return &LegalService{
		analyzer:    analyzer,
		rewriter:    rewriter,
		researcher:  researcher,
		curator:     curator,
		logger:      logger,
		retryPolicy: retry.DefaultPolicy(),
	}
}

// WithRetryPolicy overrides the default retry budget and returns the service
func (s *LegalService) WithRetryPolicy(p retry.Policy) *LegalService {
	s.retryPolicy = p
	return s
}

// AnalyzeContract extracts structured key information from document text
func (s *LegalService) AnalyzeContract(ctx context.Context, text string) (*entities.ContractAnalysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	return retry.Do(ctx, s.logger, "analyzeContract", s.retryPolicy,
		func(ctx context.Context) (*entities.ContractAnalysis, error) {
			return s.analyzer.Analyze(ctx, text)
		})
}

// RewriteClause redrafts a clause according to the given instruction
func (s *LegalService) RewriteClause(ctx context.Context, title, originalText, instruction string) (*entities.DraftingSuggestion, error) {
	if strings.TrimSpace(originalText) == "" {
		return nil, ErrEmptyInput
	}
	return s.rewriter.Rewrite(ctx, title, originalText, instruction)
}

// Research answers a free-text legal query with cited sources
func (s *LegalService) Research(ctx context.Context, query string) (*entities.ResearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyInput
	}
	return s.researcher.Research(ctx, query)
}

// TrendingNews returns the most significant recent legal news items
func (s *LegalService) TrendingNews(ctx context.Context) ([]entities.NewsItem, error) {
	return retry.Do(ctx, s.logger, "trendingNews", s.retryPolicy,
		func(ctx context.Context) ([]entities.NewsItem, error) {
			return s.curator.TrendingNews(ctx)
		})
}
