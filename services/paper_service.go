package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/paper-insight-api/services/llm"
)

const (
	// AggregateThreshold is the joined-summary length above which one reduce pass runs
	AggregateThreshold = 1000

	summarySeparator = "\n\n"

	chunkMaxTokens    = 500
	reduceMaxTokens   = 1000
	marksMaxTokens    = 1000
	analysisMaxTokens = 2000

	lowTemperature = 0.1
)

// ErrBackendUnavailable is returned when no completion backend was configured at startup
var ErrBackendUnavailable = errors.New("AI service is not available")

// Completer is the slice of the LLM client the pipeline needs
type Completer interface {
	SimpleCompletion(ctx context.Context, systemPrompt, userPrompt string, options ...llm.Option) (string, error)
}

// CompletionError reports a failed call to the completion backend
type CompletionError struct {
	Stage string
	Err   error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("%s completion failed: %v", e.Stage, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// PreparedDocument is the shared result of extract, chunk, summarize and aggregate
type PreparedDocument struct {
	OriginalTextLength int
	ChunksProcessed    int
	CombinedContent    string
}

// PaperService runs the summarization pipeline over uploaded papers
type PaperService struct {
	completer Completer
	extractor TextExtractor
	chunkSize int
}

// NewPaperService creates a new paper service. A nil completer marks the AI backend unavailable.
func NewPaperService(completer Completer, extractor TextExtractor) *PaperService {
	return &PaperService{
		completer: completer,
		extractor: extractor,
		chunkSize: DefaultChunkSize,
	}
}

// Available reports whether a completion backend is configured
func (s *PaperService) Available() bool {
	return s.completer != nil
}

// Prepare extracts the text of a PDF and reduces it to combined chunk summaries
func (s *PaperService) Prepare(ctx context.Context, content []byte) (*PreparedDocument, error) {
	if !s.Available() {
		return nil, ErrBackendUnavailable
	}

	text, err := s.extractor.ExtractText(ctx, content)
	if err != nil {
		return nil, err
	}

	chunks := ChunkText(text, s.chunkSize)
	log.Infof("Paper Service: Extracted %d characters, processing %d chunks", utf8.RuneCountInString(text), len(chunks))

	summaries, err := s.SummarizeChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	combined, err := s.Aggregate(ctx, summaries)
	if err != nil {
		return nil, err
	}

	return &PreparedDocument{
		OriginalTextLength: utf8.RuneCountInString(text),
		ChunksProcessed:    len(chunks),
		CombinedContent:    combined,
	}, nil
}

// SummarizeChunk summarizes one chunk; index is zero-based
func (s *PaperService) SummarizeChunk(ctx context.Context, chunk string, index, total int) (string, error) {
	if !s.Available() {
		return "", ErrBackendUnavailable
	}

	summary, err := s.completer.SimpleCompletion(ctx,
		chunkSystemPrompt,
		fmt.Sprintf(chunkUserPrompt, index+1, total, chunk),
		llm.WithMaxTokens(chunkMaxTokens),
		llm.WithTemperature(lowTemperature),
	)
	if err != nil {
		return "", &CompletionError{Stage: "chunk", Err: err}
	}

	return summary, nil
}

// SummarizeChunks summarizes chunks one after another, keeping their order
func (s *PaperService) SummarizeChunks(ctx context.Context, chunks []string) ([]string, error) {
	summaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := s.SummarizeChunk(ctx, chunk, i, len(chunks))
		if err != nil {
			return nil, fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		log.Debugf("Paper Service: Summarized chunk %d/%d", i+1, len(chunks))
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Aggregate joins chunk summaries and, when the join is too long, compresses it with a single extra call
func (s *PaperService) Aggregate(ctx context.Context, summaries []string) (string, error) {
	joined := strings.Join(summaries, summarySeparator)
	if utf8.RuneCountInString(joined) <= AggregateThreshold {
		return joined, nil
	}

	if !s.Available() {
		return "", ErrBackendUnavailable
	}

	final, err := s.completer.SimpleCompletion(ctx,
		reduceSystemPrompt,
		fmt.Sprintf(reduceUserPrompt, joined),
		llm.WithMaxTokens(reduceMaxTokens),
		llm.WithTemperature(lowTemperature),
	)
	if err != nil {
		return "", &CompletionError{Stage: "reduce", Err: err}
	}

	return final, nil
}

// Analyze requests a six-section structured analysis of the combined content
func (s *PaperService) Analyze(ctx context.Context, combinedContent string) (string, error) {
	if !s.Available() {
		return "", ErrBackendUnavailable
	}

	analysis, err := s.completer.SimpleCompletion(ctx,
		analysisSystemPrompt,
		fmt.Sprintf(analysisUserPrompt, combinedContent),
		llm.WithMaxTokens(analysisMaxTokens),
		llm.WithTemperature(lowTemperature),
	)
	if err != nil {
		return "", &CompletionError{Stage: "analysis", Err: err}
	}

	return analysis, nil
}
