package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/leaderlens/core"
	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/internal/summary"
)

// newSummarizer builds the summarizer from the validated config.
func newSummarizer() (summary.Summarizer, error) {
	s, err := summary.NewLLMSummarizer(summary.Options{
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// summarizeCmd asks a language model for a structured analysis of one report.
var summarizeCmd = &cobra.Command{
	Use:   "summarize <report-file>",
	Short: "Summarize a report with a language model",
	Long: `Send the text of one report to an OpenAI-compatible chat endpoint and print
a structured analysis: summary, strengths, areas for improvement, key metrics,
an overall score and recommendations.

When the model does not answer with valid JSON, its raw reply is printed with
an error note.

Requires: llm-api-key (set LEADERLENS_LLM_API_KEY rather than passing the flag)

Examples:
  # Summarize with the default model
  LEADERLENS_LLM_API_KEY=... leaderlens summarize q2.json

  # Use another endpoint and model, printing JSON
  leaderlens summarize notes.txt --llm-base-url http://localhost:11434/v1 --llm-model llama3 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		s, err := newSummarizer()
		if err != nil {
			contract.LogFatal("Cannot create summarizer", err)
		}
		if err := core.ExecuteSummarize(rootCtx, cfg, s); err != nil {
			contract.LogFatal("Cannot summarize report", err)
		}
	},
}
