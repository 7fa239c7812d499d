// Package summary asks a language model for a structured analysis of a free-form leader report.
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/huangsam/leaderlens/schema"
)

// ParseErrorMessage is stored in AnalysisResult.Error when the model output is not valid JSON.
const ParseErrorMessage = "Failed to parse JSON"

// ErrMissingAPIKey is returned when a summarizer is built without credentials.
var ErrMissingAPIKey = errors.New("llm api key is required for summaries (set LEADERLENS_LLM_API_KEY)")

// Summarizer turns report text into a structured analysis.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (schema.AnalysisResult, error)
}

// Options configures an LLMSummarizer.
type Options struct {
	Model   string
	BaseURL string
	APIKey  string
}

// LLMSummarizer is a Summarizer backed by an OpenAI-compatible chat endpoint.
type LLMSummarizer struct {
	llm llms.Model
}

var _ Summarizer = &LLMSummarizer{} // Compile-time check

// NewLLMSummarizer creates a summarizer for the configured endpoint.
func NewLLMSummarizer(opts Options) (*LLMSummarizer, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	llm, err := openai.New(
		openai.WithBaseURL(opts.BaseURL),
		openai.WithModel(opts.Model),
		openai.WithToken(opts.APIKey),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return NewWithModel(llm), nil
}

// NewWithModel wraps an existing model.
func NewWithModel(llm llms.Model) *LLMSummarizer {
	return &LLMSummarizer{llm: llm}
}

// Summarize sends the report text to the model. Transport failures are errors;
// output that is not valid JSON is returned raw with an error note instead.
func (s *LLMSummarizer) Summarize(ctx context.Context, text string) (schema.AnalysisResult, error) {
	if strings.TrimSpace(text) == "" {
		return schema.AnalysisResult{}, errors.New("report text is empty")
	}
	raw, err := llms.GenerateFromSinglePrompt(ctx, s.llm, BuildPrompt(text), llms.WithTemperature(0.2))
	if err != nil {
		return schema.AnalysisResult{}, fmt.Errorf("llm request failed: %w", err)
	}
	return ParseAnalysis(raw), nil
}

const promptTemplate = `Analyze this leader report and provide structured feedback:

%s

Provide JSON output with:
{
  "summary": "brief summary",
  "strengths": ["list of strengths"],
  "areasForImprovement": ["list of areas"],
  "keyMetrics": {"metric": "value"},
  "overallScore": 0-100,
  "recommendations": ["list of recommendations"]
}
`

// BuildPrompt embeds the report text into the analysis instructions.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}

// ParseAnalysis decodes the model output. A surrounding markdown code fence is ignored.
// It never fails: unparsable output comes back as Raw with ParseErrorMessage.
func ParseAnalysis(raw string) schema.AnalysisResult {
	body := stripFence(raw)
	if !strings.HasPrefix(body, "{") {
		return schema.AnalysisResult{Raw: raw, Error: ParseErrorMessage}
	}
	var analysis schema.ReportAnalysis
	dec := json.NewDecoder(strings.NewReader(body))
	if err := dec.Decode(&analysis); err != nil || dec.More() {
		return schema.AnalysisResult{Raw: raw, Error: ParseErrorMessage}
	}
	return schema.AnalysisResult{Analysis: &analysis}
}

// stripFence removes a ```json ... ``` wrapper if present.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:] // drop the language tag line
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
