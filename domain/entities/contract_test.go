package entities

import "testing"

func TestContractAnalysisValidation(t *testing.T) {
	analysis := &ContractAnalysis{
		Title:     "Master Services Agreement",
		RiskLevel: RiskMedium,
		KeyClauses: []Clause{
			{Title: "Limitation of Liability", Summary: "Caps liability at fees paid", RiskScore: 7},
			{Title: "Termination", Summary: "30 day notice either party", RiskScore: 3},
		},
	}

	if err := analysis.Validate(); err != nil {
		t.Errorf("Valid analysis should not have validation errors, got: %v", err)
	}

	analysis.RiskLevel = RiskLevel("Severe")
	if err := analysis.Validate(); err == nil {
		t.Error("Analysis with unknown risk level should have validation error")
	}

	analysis.RiskLevel = RiskHigh
	analysis.KeyClauses[0].RiskScore = 11
	if err := analysis.Validate(); err == nil {
		t.Error("Analysis with out-of-range clause score should have validation error")
	}
}
