// Package analysis scores a candidate's fit for a job via a generative model.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/option"
)

// DefaultModel is the Gemini model used when none is configured
const DefaultModel = "gemini-2.0-flash"

// MatchAnalysis is the structured result of one analyze call. The score is
// a relative ranking signal only; repeated calls with identical input are
// not guaranteed to produce the same output.
type MatchAnalysis struct {
	Score              int      `json:"score"`
	Reasoning          string   `json:"reasoning"`
	MissingSkills      []string `json:"missingSkills"`
	InterviewQuestions []string `json:"interviewQuestions"`
}

// MeetsAllRequirements reports whether the model found no missing skills
func (m *MatchAnalysis) MeetsAllRequirements() bool {
	return len(m.MissingSkills) == 0
}

// matchSchema is the shape the model response must satisfy; all four keys
// are required or the call is treated as failed.
const matchSchema = `{
	"type": "object",
	"properties": {
		"score": {"type": "number", "minimum": 0, "maximum": 100},
		"reasoning": {"type": "string"},
		"missingSkills": {"type": "array", "items": {"type": "string"}},
		"interviewQuestions": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["score", "reasoning", "missingSkills", "interviewQuestions"]
}`

// Client calls Gemini to analyze candidate/job matches
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini-backed analyzer
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Analyze sends one synchronous request scoring the résumé against the job
// requirements. The caller treats any error as an absent result; absence is
// not distinguished from low confidence.
func (c *Client) Analyze(ctx context.Context, requirements []string, resumeText string) (*MatchAnalysis, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.1)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildPrompt(requirements, resumeText)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return nil, err
	}

	return ParseMatchAnalysis(cleanJSONBlock(text))
}

// Close releases resources held by the client
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// ParseMatchAnalysis validates a raw model response against the required
// shape and decodes it.
func ParseMatchAnalysis(raw string) (*MatchAnalysis, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(matchSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate analysis response: %w", err)
	}
	if !result.Valid() {
		var messages []string
		for _, desc := range result.Errors() {
			messages = append(messages, desc.String())
		}
		return nil, fmt.Errorf("analysis response does not match expected shape: %s", strings.Join(messages, "; "))
	}

	// Score arrives as a JSON number; round rather than truncate
	var wire struct {
		Score              float64  `json:"score"`
		Reasoning          string   `json:"reasoning"`
		MissingSkills      []string `json:"missingSkills"`
		InterviewQuestions []string `json:"interviewQuestions"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	analysis := &MatchAnalysis{
		Score:              int(math.Round(wire.Score)),
		Reasoning:          wire.Reasoning,
		MissingSkills:      wire.MissingSkills,
		InterviewQuestions: wire.InterviewQuestions,
	}
	if analysis.MissingSkills == nil {
		analysis.MissingSkills = []string{}
	}
	return analysis, nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}

// cleanJSONBlock removes markdown code block wrappers from JSON
func cleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
