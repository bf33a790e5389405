package entities

// GroundingSource is a cited web source backing a research answer
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// ResearchResult is the answer to a free-text legal research query
type ResearchResult struct {
	Answer  string            `json:"answer"`
	Sources []GroundingSource `json:"sources"`
}

// NewsCategory classifies a legal news item
type NewsCategory string

const (
	NewsRegulatory NewsCategory = "Regulatory"
	NewsLitigation NewsCategory = "Litigation"
	NewsCorporate  NewsCategory = "Corporate"
	NewsTech       NewsCategory = "Tech"
)

// NewsItem is one curated legal news story
type NewsItem struct {
	Title    string       `json:"title"`
	Summary  string       `json:"summary"`
	Source   string       `json:"source"`
	URL      string       `json:"url"`
	Category NewsCategory `json:"category"`
}

// Deadline is an upcoming docket or compliance deadline shown on the dashboard
type Deadline struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Priority string `json:"priority"`
	Type     string `json:"type"`
}

// WatchedCase is a litigation matter tracked on the dashboard
type WatchedCase struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	LastUpdated     string `json:"lastUpdated"`
	Court           string `json:"court"`
	CaseNumber      string `json:"caseNumber"`
	Judge           string `json:"judge"`
	PartiesDetailed string `json:"partiesDetailed"`
	Summary         string `json:"summary"`
}
