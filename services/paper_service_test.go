package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sahilchouksey/paper-insight-api/services/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type completionCall struct {
	System  string
	User    string
	Request openai.ChatCompletionRequest
}

// fakeCompleter answers from a script and records every call
type fakeCompleter struct {
	calls   []completionCall
	respond func(call completionCall) (string, error)
}

func (f *fakeCompleter) SimpleCompletion(_ context.Context, systemPrompt, userPrompt string, options ...llm.Option) (string, error) {
	call := completionCall{System: systemPrompt, User: userPrompt}
	for _, opt := range options {
		opt(&call.Request)
	}
	f.calls = append(f.calls, call)
	if f.respond == nil {
		return fmt.Sprintf("summary %d", len(f.calls)), nil
	}
	return f.respond(call)
}

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) ExtractText(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func TestSummarizeChunkUsesBoundedLowTemperatureCall(t *testing.T) {
	completer := &fakeCompleter{}
	svc := NewPaperService(completer, fakeExtractor{})

	out, err := svc.SummarizeChunk(context.Background(), "chunk body", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "summary 1", out)

	require.Len(t, completer.calls, 1)
	call := completer.calls[0]
	assert.Contains(t, call.User, "part 2 of 3")
	assert.Contains(t, call.User, "chunk body")
	assert.Equal(t, 500, call.Request.MaxTokens)
	assert.InDelta(t, 0.1, call.Request.Temperature, 0.0001)
}

func TestSummarizeChunksKeepsOrderAndStopsOnError(t *testing.T) {
	completer := &fakeCompleter{respond: func(call completionCall) (string, error) {
		if strings.Contains(call.User, "boom") {
			return "", errors.New("rate limited")
		}
		return "sum:" + call.User[strings.LastIndex(call.User, "\n")+1:], nil
	}}
	svc := NewPaperService(completer, fakeExtractor{})

	summaries, err := svc.SummarizeChunks(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"sum:a", "sum:b", "sum:c"}, summaries)

	completer.calls = nil
	_, err = svc.SummarizeChunks(context.Background(), []string{"a", "boom", "c"})
	require.Error(t, err)
	assert.Len(t, completer.calls, 2, "no chunk is requested after a failure")

	var completionErr *CompletionError
	require.True(t, errors.As(err, &completionErr))
	assert.Equal(t, "chunk", completionErr.Stage)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestAggregateShortJoinMakesNoCall(t *testing.T) {
	completer := &fakeCompleter{}
	svc := NewPaperService(completer, fakeExtractor{})

	out, err := svc.Aggregate(context.Background(), []string{"first", "second"})
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond", out)
	assert.Empty(t, completer.calls)

	exact := strings.Repeat("x", AggregateThreshold)
	out, err = svc.Aggregate(context.Background(), []string{exact})
	require.NoError(t, err)
	assert.Equal(t, exact, out)
	assert.Empty(t, completer.calls)
}

func TestAggregateLongJoinMakesExactlyOneReduceCall(t *testing.T) {
	completer := &fakeCompleter{respond: func(completionCall) (string, error) {
		return strings.Repeat("still long ", 500), nil
	}}
	svc := NewPaperService(completer, fakeExtractor{})

	summaries := []string{strings.Repeat("a", 600), strings.Repeat("b", 600)}
	out, err := svc.Aggregate(context.Background(), summaries)
	require.NoError(t, err)

	require.Len(t, completer.calls, 1)
	assert.Equal(t, strings.Repeat("still long ", 500), out)
	assert.Contains(t, completer.calls[0].User, strings.Join(summaries, "\n\n"))
	assert.Equal(t, 1000, completer.calls[0].Request.MaxTokens)
}

func TestAggregateReduceFailure(t *testing.T) {
	completer := &fakeCompleter{respond: func(completionCall) (string, error) {
		return "", errors.New("timeout")
	}}
	svc := NewPaperService(completer, fakeExtractor{})

	_, err := svc.Aggregate(context.Background(), []string{strings.Repeat("z", 1001)})
	var completionErr *CompletionError
	require.True(t, errors.As(err, &completionErr))
	assert.Equal(t, "reduce", completionErr.Stage)
}

func TestPrepareRunsWholePipeline(t *testing.T) {
	completer := &fakeCompleter{respond: func(completionCall) (string, error) { return "s", nil }}
	svc := NewPaperService(completer, fakeExtractor{text: strings.Repeat("t", 4500)})

	doc, err := svc.Prepare(context.Background(), []byte("%PDF-"))
	require.NoError(t, err)

	assert.Equal(t, 4500, doc.OriginalTextLength)
	assert.Equal(t, 3, doc.ChunksProcessed)
	assert.Equal(t, "s\n\ns\n\ns", doc.CombinedContent)
	assert.Len(t, completer.calls, 3)
}

func TestPrepareEmptyText(t *testing.T) {
	completer := &fakeCompleter{}
	svc := NewPaperService(completer, fakeExtractor{text: ""})

	doc, err := svc.Prepare(context.Background(), []byte("%PDF-"))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.ChunksProcessed)
	assert.Equal(t, "", doc.CombinedContent)
	assert.Empty(t, completer.calls)
}

func TestPrepareUnavailableBackendSkipsExtraction(t *testing.T) {
	extractor := fakeExtractor{err: errors.New("must not be called")}
	svc := NewPaperService(nil, extractor)

	assert.False(t, svc.Available())
	_, err := svc.Prepare(context.Background(), []byte("%PDF-"))
	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestPrepareExtractionFailure(t *testing.T) {
	cause := &ExtractionError{Backend: ExtractorLedongthuc, Err: errors.New("bad xref")}
	svc := NewPaperService(&fakeCompleter{}, fakeExtractor{err: cause})

	_, err := svc.Prepare(context.Background(), []byte("garbage"))
	var extractionErr *ExtractionError
	require.True(t, errors.As(err, &extractionErr))
}

func TestAnalyzeReturnsRawText(t *testing.T) {
	completer := &fakeCompleter{respond: func(completionCall) (string, error) {
		return "## Summary\nnot validated", nil
	}}
	svc := NewPaperService(completer, fakeExtractor{})

	out, err := svc.Analyze(context.Background(), "combined")
	require.NoError(t, err)
	assert.Equal(t, "## Summary\nnot validated", out)

	user := completer.calls[0].User
	for _, section := range []string{"Summary", "Strengths", "Weaknesses", "Methodology", "Contribution", "Recommendations"} {
		assert.Contains(t, user, section)
	}
}
