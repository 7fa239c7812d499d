package outwriter

import (
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/leaderlens/internal/contract"
	"github.com/huangsam/leaderlens/schema"
)

// WriteAnalysisResults prints a report analysis as JSON or as a readable summary.
// Unparsed model output is printed verbatim below the parse error.
func WriteAnalysisResults(w io.Writer, result schema.AnalysisResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, result)
	}

	if !result.Parsed() {
		_, err := fmt.Fprintf(w, "⚠️  %s\n\n%s\n", result.Error, result.Raw)
		return err
	}

	a := result.Analysis
	var sb strings.Builder
	sb.WriteString("📋 Report Analysis\n")
	sb.WriteString("==================\n\n")
	fmt.Fprintf(&sb, "%s\n\n", a.Summary)
	fmt.Fprintf(&sb, "Overall Score: %.*f\n", cfg.Precision, a.OverallScore)

	writeBullets(&sb, "💪 Strengths", a.Strengths)
	writeBullets(&sb, "🎯 Areas For Improvement", a.AreasForImprovement)
	writeBullets(&sb, "💡 Recommendations", a.Recommendations)

	if len(a.KeyMetrics) > 0 {
		sb.WriteString("\n📈 Key Metrics\n")
		for _, name := range sortedKeys(a.KeyMetrics) {
			fmt.Fprintf(&sb, "   %s: %v\n", name, a.KeyMetrics[name])
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeBullets(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "   - %s\n", item)
	}
}
