package outwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/leaderlens/schema"
)

func TestWriteAnalysisResults(t *testing.T) {
	analysis := schema.AnalysisResult{Analysis: &schema.ReportAnalysis{
		Summary:             "Solid quarter overall.",
		Strengths:           []string{"Delivery"},
		AreasForImprovement: []string{"Hiring"},
		KeyMetrics:          map[string]any{"nps": 45.0, "attrition": "low"},
		OverallScore:        8.5,
		Recommendations:     []string{"Promote Alice"},
	}}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteAnalysisResults(&buf, analysis, testConfig(schema.TextOut)))

		output := buf.String()
		assert.Contains(t, output, "Solid quarter overall.")
		assert.Contains(t, output, "Overall Score: 8.50")
		assert.Contains(t, output, "   - Delivery\n")
		assert.Contains(t, output, "   - Hiring\n")
		assert.Contains(t, output, "   - Promote Alice\n")
		assert.Contains(t, output, "   attrition: low\n   nps: 45\n")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteAnalysisResults(&buf, analysis, testConfig(schema.JSONOut)))
		assert.Contains(t, buf.String(), `"summary": "Solid quarter overall."`)
		assert.Contains(t, buf.String(), `"areasForImprovement"`)
	})

	t.Run("unparsed", func(t *testing.T) {
		raw := schema.AnalysisResult{Raw: "not json", Error: "Failed to parse JSON"}
		var buf bytes.Buffer
		require.NoError(t, WriteAnalysisResults(&buf, raw, testConfig(schema.TextOut)))
		assert.Contains(t, buf.String(), "Failed to parse JSON")
		assert.Contains(t, buf.String(), "not json")
	})
}
