package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minlog/moneybook"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

const systemInstruction = `
You are a personal finance advisor for a Korean household budget. You
receive the user's current financial position: net worth, holdings, and
this month's cashflow, all in KRW.

Write a short, concrete, encouraging report. Quote the figures you were
given, never invent new ones, never recompute totals. Answer in the
structured format you were asked for.
`

// insightSchema constrains the model's answer to the report shape the
// book stores.
var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analysis": {
			Type:        genai.TypeString,
			Description: "Two or three sentences on the overall financial position.",
		},
		"assetAnalysis": {
			Type:        genai.TypeString,
			Description: "One paragraph on the asset and liability mix.",
		},
		"categoryBreakdown": {
			Type:        genai.TypeString,
			Description: "One paragraph on this month's spending by category.",
		},
		"suggestions": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Two or three concrete actions for next month.",
		},
		"savingGoalAdvice": {
			Type:        genai.TypeString,
			Description: "A realistic saving target given this month's balance.",
		},
		"tips": {
			Type:        genai.TypeString,
			Description: "One short general money habit tip.",
		},
	},
	Required: []string{"analysis", "suggestions", "tips"},
}

// Advisor generates insight reports through the Gemini API.
type Advisor struct {
	client *genai.Client
}

// New creates an advisor. The API key is taken from the environment, see
// the genai client documentation.
func New(ctx context.Context) (*Advisor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create the Gemini client: %w", err)
	}
	return &Advisor{client: client}, nil
}

// Generate asks the model for an insight report on the given facts. The
// returned insight is not yet saved to any book.
func (a *Advisor) Generate(ctx context.Context, facts *Facts) (*moneybook.Insight, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    insightSchema,
	}
	resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(facts.Prompt()), config)
	if err != nil {
		return nil, fmt.Errorf("could not generate the insight: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from model %s", model)
	}

	in := &moneybook.Insight{Date: time.Now().UTC()}
	if err := json.Unmarshal([]byte(text), in); err != nil {
		return nil, fmt.Errorf("model returned invalid report: %w", err)
	}
	return in, nil
}
