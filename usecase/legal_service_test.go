package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ashumnni/juris-ai/domain/entities"
	"github.com/ashumnni/juris-ai/internal/retry"
)

type mockAnalyzer struct {
	calls  int
	failN  int
	result *entities.ContractAnalysis
}

func (m *mockAnalyzer) Analyze(ctx context.Context, text string) (*entities.ContractAnalysis, error) {
	m.calls++
	if m.calls <= m.failN {
		return nil, errors.New("model overloaded")
	}
	return m.result, nil
}

type mockRewriter struct {
	calls int
	err   error
}

func (m *mockRewriter) Rewrite(ctx context.Context, title, originalText, instruction string) (*entities.DraftingSuggestion, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &entities.DraftingSuggestion{Original: originalText, Suggestion: "redrafted"}, nil
}

type mockResearcher struct {
	calls int
}

func (m *mockResearcher) Research(ctx context.Context, query string) (*entities.ResearchResult, error) {
	m.calls++
	return &entities.ResearchResult{Answer: "findings"}, nil
}

type mockCurator struct {
	calls int
	failN int
	items []entities.NewsItem
}

func (m *mockCurator) TrendingNews(ctx context.Context) ([]entities.NewsItem, error) {
	m.calls++
	if m.calls <= m.failN {
		return nil, errors.New("search unavailable")
	}
	return m.items, nil
}

func fastPolicy() retry.Policy {
	return retry.Policy{MaxRetries: 2, InitialInterval: time.Millisecond, Multiplier: 2}
}

func newTestService(analyzer *mockAnalyzer, rewriter *mockRewriter, researcher *mockResearcher, curator *mockCurator) *LegalService {
	return NewLegalService(analyzer, rewriter, researcher, curator, zap.NewNop()).
		WithRetryPolicy(fastPolicy())
}

func TestAnalyzeContractRetriesTransientFailures(t *testing.T) {
	analyzer := &mockAnalyzer{failN: 2, result: &entities.ContractAnalysis{RiskLevel: entities.RiskLow}}
	svc := newTestService(analyzer, &mockRewriter{}, &mockResearcher{}, &mockCurator{})

	result, err := svc.AnalyzeContract(context.Background(), "agreement text")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if result.RiskLevel != entities.RiskLow {
		t.Errorf("unexpected result %+v", result)
	}
	if analyzer.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", analyzer.calls)
	}
}

func TestAnalyzeContractGivesUpAfterBudget(t *testing.T) {
	analyzer := &mockAnalyzer{failN: 10}
	svc := newTestService(analyzer, &mockRewriter{}, &mockResearcher{}, &mockCurator{})

	if _, err := svc.AnalyzeContract(context.Background(), "agreement text"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if analyzer.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", analyzer.calls)
	}
}

func TestAnalyzeContractRejectsEmptyInput(t *testing.T) {
	analyzer := &mockAnalyzer{}
	svc := newTestService(analyzer, &mockRewriter{}, &mockResearcher{}, &mockCurator{})

	if _, err := svc.AnalyzeContract(context.Background(), "   \n"); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if analyzer.calls != 0 {
		t.Errorf("analyzer should not be called for empty input, got %d calls", analyzer.calls)
	}
}

func TestRewriteClauseDoesNotRetry(t *testing.T) {
	rewriter := &mockRewriter{err: errors.New("bad instruction")}
	svc := newTestService(&mockAnalyzer{}, rewriter, &mockResearcher{}, &mockCurator{})

	if _, err := svc.RewriteClause(context.Background(), "Indemnification", "original text", "tighten it"); err == nil {
		t.Fatal("expected rewrite error to surface")
	}
	if rewriter.calls != 1 {
		t.Errorf("rewrite must not retry, got %d calls", rewriter.calls)
	}
}

func TestTrendingNewsRetries(t *testing.T) {
	curator := &mockCurator{failN: 1, items: []entities.NewsItem{{Title: "Ruling"}}}
	svc := newTestService(&mockAnalyzer{}, &mockRewriter{}, &mockResearcher{}, curator)

	items, err := svc.TrendingNews(context.Background())
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expected 1 item, got %d", len(items))
	}
	if curator.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", curator.calls)
	}
}

func TestResearchPassesThrough(t *testing.T) {
	researcher := &mockResearcher{}
	svc := newTestService(&mockAnalyzer{}, &mockRewriter{}, researcher, &mockCurator{})

	result, err := svc.Research(context.Background(), "statute of limitations")
	if err != nil {
		t.Fatalf("research failed: %v", err)
	}
	if result.Answer != "findings" {
		t.Errorf("unexpected answer %q", result.Answer)
	}
	if researcher.calls != 1 {
		t.Errorf("expected 1 call, got %d", researcher.calls)
	}
}
