package paper

import (
	"errors"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/paper-insight-api/services"
	"github.com/sahilchouksey/paper-insight-api/utils/middleware"
	"github.com/sahilchouksey/paper-insight-api/utils/response"
)

var errNoFile = errors.New("no PDF file uploaded")

// PaperHandler handles summary, marks and analysis requests for uploaded PDFs
type PaperHandler struct {
	paperService *services.PaperService
}

// NewPaperHandler creates a new paper handler
func NewPaperHandler(paperService *services.PaperService) *PaperHandler {
	return &PaperHandler{
		paperService: paperService,
	}
}

// DocumentStats is included in every successful response
type DocumentStats struct {
	OriginalTextLength  int `json:"originalTextLength"`
	ProcessedTextLength int `json:"processedTextLength"`
	ChunksProcessed     int `json:"chunksProcessed"`
}

// SummaryResponse is returned by POST /summarize
type SummaryResponse struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
	DocumentStats
}

// MarksResponse is returned by POST /estimate-marks
type MarksResponse struct {
	Success bool                 `json:"success"`
	Marks   services.MarksResult `json:"marks"`
	DocumentStats
}

// AnalysisResponse is returned by POST /analyze
type AnalysisResponse struct {
	Success  bool   `json:"success"`
	Analysis string `json:"analysis"`
	DocumentStats
}

// Summarize handles POST /summarize
func (h *PaperHandler) Summarize(c *fiber.Ctx) error {
	doc, err := h.prepare(c)
	if err != nil {
		return h.fail(c, "Error summarizing PDF", err)
	}

	return response.JSON(c, SummaryResponse{
		Success:       true,
		Summary:       doc.CombinedContent,
		DocumentStats: statsOf(doc),
	})
}

// EstimateMarks handles POST /estimate-marks
func (h *PaperHandler) EstimateMarks(c *fiber.Ctx) error {
	doc, err := h.prepare(c)
	if err != nil {
		return h.fail(c, "Error estimating marks", err)
	}

	marks, err := h.paperService.EstimateMarks(c.UserContext(), doc.CombinedContent)
	if err != nil {
		return h.fail(c, "Error estimating marks", err)
	}

	return response.JSON(c, MarksResponse{
		Success:       true,
		Marks:         marks,
		DocumentStats: statsOf(doc),
	})
}

// Analyze handles POST /analyze
func (h *PaperHandler) Analyze(c *fiber.Ctx) error {
	doc, err := h.prepare(c)
	if err != nil {
		return h.fail(c, "Error analyzing PDF", err)
	}

	analysis, err := h.paperService.Analyze(c.UserContext(), doc.CombinedContent)
	if err != nil {
		return h.fail(c, "Error analyzing PDF", err)
	}

	return response.JSON(c, AnalysisResponse{
		Success:       true,
		Analysis:      analysis,
		DocumentStats: statsOf(doc),
	})
}

// prepare reads the uploaded file and runs extract, chunk, summarize and aggregate
func (h *PaperHandler) prepare(c *fiber.Ctx) (*services.PreparedDocument, error) {
	path, ok := middleware.GetUploadedFilePath(c)
	if !ok {
		return nil, errNoFile
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return h.paperService.Prepare(c.UserContext(), content)
}

// fail maps pipeline errors to responses
func (h *PaperHandler) fail(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, errNoFile):
		return response.BadRequest(c, "No PDF file uploaded")
	case errors.Is(err, services.ErrBackendUnavailable):
		log.Errorf("%s %s: AI backend not configured", c.Method(), c.Path())
		return response.InternalServerError(c, "AI service is not available", nil)
	default:
		userID, _ := middleware.GetUserID(c)
		log.Errorf("%s %s (user %s): %v", c.Method(), c.Path(), userID, err)
		return response.InternalServerError(c, message, err)
	}
}

func statsOf(doc *services.PreparedDocument) DocumentStats {
	return DocumentStats{
		OriginalTextLength:  doc.OriginalTextLength,
		ProcessedTextLength: doc.OriginalTextLength,
		ChunksProcessed:     doc.ChunksProcessed,
	}
}
