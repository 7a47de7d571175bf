package services

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/sahilchouksey/paper-insight-api/services/llm"
	"github.com/sahilchouksey/paper-insight-api/utils/testpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaperPipelineAgainstLiveModel(t *testing.T) {
	// Check if integration tests are enabled
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=true to run.")
	}

	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		t.Skip("LLM_API_KEY not set")
	}

	baseURL := os.Getenv("LLM_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai/v1"
	}
	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	client, err := llm.NewClient(llm.Config{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
		TopP:    1,
		Timeout: 2 * time.Minute,
	})
	require.NoError(t, err)

	extractor, err := NewTextExtractor(ExtractorLedongthuc)
	require.NoError(t, err)

	svc := NewPaperService(client, extractor)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pdf := testpdf.Build(
		"Phase 1: Problem statement and literature survey.",
		"Phase 2: System design with a layered architecture.",
		"Phase 3: Implementation and evaluation on 200 samples.",
	)

	doc, err := svc.Prepare(ctx, pdf)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.ChunksProcessed)
	assert.NotEmpty(t, doc.CombinedContent)

	marks, err := svc.EstimateMarks(ctx, doc.CombinedContent)
	require.NoError(t, err)
	for _, phase := range []PhaseScore{marks.P1, marks.P2, marks.P3} {
		assert.GreaterOrEqual(t, phase.Score, 0.0)
		assert.LessOrEqual(t, phase.Score, 10.0)
	}

	analysis, err := svc.Analyze(ctx, doc.CombinedContent)
	require.NoError(t, err)
	assert.NotEmpty(t, analysis)
}
