package services

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/paper-insight-api/services/llm"
	"github.com/sahilchouksey/paper-insight-api/utils"
)

const (
	fallbackJustification     = "Unable to parse AI response"
	fallbackOverallAssessment = "Error parsing AI response. Please try again."
)

// PhaseScore is the estimated score of one evaluation phase
type PhaseScore struct {
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

// MarksResult is the phase-wise marks estimate of a report
type MarksResult struct {
	P1                PhaseScore `json:"p1"`
	P2                PhaseScore `json:"p2"`
	P3                PhaseScore `json:"p3"`
	OverallAssessment string     `json:"overall_assessment"`
}

// FallbackMarks is returned when the model's answer cannot be parsed
func FallbackMarks() MarksResult {
	phase := PhaseScore{Score: 0, Justification: fallbackJustification}
	return MarksResult{
		P1:                phase,
		P2:                phase,
		P3:                phase,
		OverallAssessment: fallbackOverallAssessment,
	}
}

// ParseMarks decodes a model response into a MarksResult, falling back on malformed output
func ParseMarks(response string) MarksResult {
	var marks MarksResult
	if err := utils.ExtractJSONTo(response, &marks); err != nil {
		log.Warnf("Paper Service: Could not parse marks response, using fallback: %v", err)
		return FallbackMarks()
	}
	if marks.empty() {
		log.Warnf("Paper Service: Marks response carried no assessment, using fallback")
		return FallbackMarks()
	}
	return marks
}

// empty reports a record with no assessment text at all, as decoded from "null" or "{}"
func (m MarksResult) empty() bool {
	return m.OverallAssessment == "" &&
		m.P1.Justification == "" &&
		m.P2.Justification == "" &&
		m.P3.Justification == ""
}

// EstimateMarks asks the model for phase-wise marks of the combined content
func (s *PaperService) EstimateMarks(ctx context.Context, combinedContent string) (MarksResult, error) {
	if !s.Available() {
		return MarksResult{}, ErrBackendUnavailable
	}

	response, err := s.completer.SimpleCompletion(ctx,
		marksSystemPrompt,
		fmt.Sprintf(marksUserPrompt, combinedContent),
		llm.WithMaxTokens(marksMaxTokens),
		llm.WithTemperature(lowTemperature),
		llm.WithResponseFormatJSON(),
	)
	if err != nil {
		return MarksResult{}, &CompletionError{Stage: "marks", Err: err}
	}

	return ParseMarks(response), nil
}
