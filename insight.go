package moneybook

import "time"

// maxInsights bounds how many advisory reports the book retains.
const maxInsights = 50

// Insight is a saved advisory report produced by the external analysis
// service from the book's aggregates. The book stores it verbatim; the
// numbers it talks about are never recomputed from its text.
type Insight struct {
	ID                string    `json:"id"`
	Date              time.Time `json:"date"`
	Analysis          string    `json:"analysis"`
	AssetAnalysis     string    `json:"assetAnalysis,omitempty"`
	CategoryBreakdown string    `json:"categoryBreakdown,omitempty"`
	Suggestions       []string  `json:"suggestions"`
	SavingGoalAdvice  string    `json:"savingGoalAdvice,omitempty"`
	Tips              string    `json:"tips"`
}
