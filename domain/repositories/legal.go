package repositories

import (
	"context"

	"github.com/ashumnni/juris-ai/domain/entities"
)

// ContractAnalyzer abstracts the document analysis service
type ContractAnalyzer interface {
	// Analyze extracts structured key information from raw document text
	Analyze(ctx context.Context, text string) (*entities.ContractAnalysis, error)
}

// ClauseRewriter abstracts the clause drafting service
type ClauseRewriter interface {
	// Rewrite redrafts a clause according to the given instruction
	Rewrite(ctx context.Context, title, originalText, instruction string) (*entities.DraftingSuggestion, error)
}

// LegalResearcher abstracts the research service
type LegalResearcher interface {
	// Research answers a free-text query with cited sources
	Research(ctx context.Context, query string) (*entities.ResearchResult, error)
}

// NewsCurator abstracts the legal news service
type NewsCurator interface {
	// TrendingNews returns the most significant recent legal news items
	TrendingNews(ctx context.Context) ([]entities.NewsItem, error)
}
