package entities

import "errors"

// RiskLevel is the overall risk classification assigned to a contract
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// Party is a named participant in a contract
type Party struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Clause is a key clause extracted from a contract, scored 1-10 by risk
type Clause struct {
	Title     string  `json:"title"`
	Summary   string  `json:"summary"`
	RiskScore float64 `json:"riskScore"`
}

// ContractAnalysis is the structured result of analyzing a legal document
type ContractAnalysis struct {
	Title             string    `json:"title"`
	EffectiveDate     string    `json:"effectiveDate"`
	Parties           []Party   `json:"parties"`
	TerminationNotice string    `json:"terminationNotice"`
	GoverningLaw      string    `json:"governingLaw"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	KeyClauses        []Clause  `json:"keyClauses"`
	Summary           string    `json:"summary"`
}

// DraftingSuggestion is a proposed rewrite of a single clause
type DraftingSuggestion struct {
	Original    string `json:"original"`
	Suggestion  string `json:"suggestion"`
	Explanation string `json:"explanation"`
}

// Validate validates the analysis result returned by the model
func (a *ContractAnalysis) Validate() error {
	switch a.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
	default:
		return errors.New("invalid risk level: " + string(a.RiskLevel))
	}
	for _, c := range a.KeyClauses {
		if c.RiskScore < 0 || c.RiskScore > 10 {
			return errors.New("clause risk score out of range: " + c.Title)
		}
	}
	return nil
}
