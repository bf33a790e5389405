package api

import (
	"github.com/ashumnni/juris-ai/domain/entities"
)

// Static dashboard content until docket and case-tracking integrations land.
// TODO: replace with a docket feed once the PACER integration is wired up.
var upcomingDeadlines = []entities.Deadline{
	{ID: "1", Title: "SEC Form 10-K Filing", Date: "2025-05-15", Priority: "High", Type: "Filing"},
	{ID: "2", Title: "Smith vs. GlobalCorp Hearing", Date: "2025-05-18", Priority: "High", Type: "Hearing"},
	{ID: "3", Title: "Vendor MSA Review", Date: "2025-05-20", Priority: "Medium", Type: "Review"},
	{ID: "4", Title: "Internal Policy Audit", Date: "2025-05-25", Priority: "Low", Type: "Meeting"},
}

var watchedCases = []entities.WatchedCase{
	{
		ID:              "c1",
		Name:            "US v. Alphabet Inc (Antitrust)",
		Status:          "Trial Phase",
		LastUpdated:     "6h ago",
		Court:           "District Court DC",
		CaseNumber:      "1:20-cv-03010",
		Judge:           "Hon. Amit Mehta",
		PartiesDetailed: "United States of America (Plaintiff) vs. Alphabet Inc. (Defendant)",
		Summary:         "Landmark antitrust litigation focused on search distribution agreements and market dominance in digital advertising.",
	},
	{
		ID:              "c2",
		Name:            "Nvidia v. AI-Chips Patent",
		Status:          "Discovery",
		LastUpdated:     "1d ago",
		Court:           "Delaware Chancery",
		CaseNumber:      "CH-2024-0012-L",
		Judge:           "Vice Chancellor J. Travis Laster",
		PartiesDetailed: "Nvidia Corporation vs. AI-Chips Global Tech Ltd.",
		Summary:         "High-stakes intellectual property dispute regarding specialized semiconductor architecture for neural networks.",
	},
	{
		ID:              "c3",
		Name:            "Twitter (X) v. European Union",
		Status:          "Compliance Review",
		LastUpdated:     "2h ago",
		Court:           "CJEU",
		CaseNumber:      "C-242/24 P",
		Judge:           "Advocate General Maciej Szpunar",
		PartiesDetailed: "X Corp (Appellant) vs. European Commission (Appellee)",
		Summary:         "Appeal regarding content moderation penalties under the Digital Services Act (DSA) framework.",
	},
}
