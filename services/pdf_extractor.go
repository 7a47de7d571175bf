package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/gofiber/fiber/v2/log"
	"github.com/ledongthuc/pdf"
)

const (
	// ExtractorLedongthuc is the pure-Go extractor backed by ledongthuc/pdf (MIT license)
	ExtractorLedongthuc = "ledongthuc"
	// ExtractorMuPDF is the MuPDF extractor backed by go-fitz
	ExtractorMuPDF = "mupdf"
)

// TextExtractor turns raw PDF bytes into plain text
type TextExtractor interface {
	ExtractText(ctx context.Context, content []byte) (string, error)
}

// ExtractionError reports that a PDF could not be turned into text
type ExtractionError struct {
	Backend string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from PDF (%s): %v", e.Backend, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewTextExtractor resolves an extraction backend by name.
// Called once at startup so an unknown backend fails the boot, not a request.
func NewTextExtractor(name string) (TextExtractor, error) {
	switch name {
	case "", ExtractorLedongthuc:
		return NewPDFExtractor(), nil
	case ExtractorMuPDF:
		return NewMuPDFExtractor(), nil
	default:
		return nil, fmt.Errorf("unknown PDF extractor %q (supported: %s, %s)", name, ExtractorLedongthuc, ExtractorMuPDF)
	}
}

// PDFExtractor handles PDF text extraction using ledongthuc/pdf
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// sanitizePDF fixes common PDF issues like trailing garbage data
// Many PDFs downloaded from web have HTML or other data appended after %%EOF
// This function truncates the content at the last valid %%EOF marker
func sanitizePDF(content []byte) []byte {
	if len(content) == 0 {
		return content
	}

	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return content
	}

	eofMarker := []byte("%%EOF")
	lastEOF := bytes.LastIndex(content, eofMarker)

	if lastEOF == -1 {
		// truncated, let the parser complain
		return content
	}

	pdfEnd := lastEOF + len(eofMarker)

	// Allow for trailing newlines after %%EOF (valid per PDF spec)
	for pdfEnd < len(content) && (content[pdfEnd] == '\n' || content[pdfEnd] == '\r') {
		pdfEnd++
	}

	if pdfEnd < len(content) {
		extraBytes := len(content) - pdfEnd
		if extraBytes > 10 {
			log.Debugf("PDF Sanitizer: Removing %d bytes of trailing garbage after %%EOF", extraBytes)
			return content[:pdfEnd]
		}
	}

	return content
}

// ExtractText extracts text from PDF bytes
func (p *PDFExtractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	text, err := p.extract(ctx, content)
	if err != nil {
		return "", &ExtractionError{Backend: ExtractorLedongthuc, Err: err}
	}
	return text, nil
}

func (p *PDFExtractor) extract(ctx context.Context, content []byte) (text string, err error) {
	if len(content) == 0 {
		return "", errors.New("empty PDF content")
	}

	// ledongthuc/pdf panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("PDF parser panic: %v", r)
		}
	}()

	content = sanitizePDF(content)

	reader := bytes.NewReader(content)
	pdfReader, err := pdf.NewReader(reader, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to parse PDF: %w", err)
	}

	numPages := pdfReader.NumPage()
	if numPages == 0 {
		return "", errors.New("PDF has no pages")
	}

	log.Debugf("PDF Extractor: Processing PDF with %d pages", numPages)

	var textBuilder strings.Builder

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := pdfReader.Page(i)
		if page.V.IsNull() {
			log.Debugf("PDF Extractor: Page %d is null, skipping", i)
			continue
		}

		// Row extraction keeps the reading order of multi-column layouts
		rows, err := page.GetTextByRow()
		if err != nil {
			plain, plainErr := page.GetPlainText(nil)
			if plainErr != nil {
				log.Warnf("PDF Extractor: Text extraction failed for page %d: %v", i, plainErr)
				continue
			}
			textBuilder.WriteString(plain)
			textBuilder.WriteString("\n")
			continue
		}

		for _, row := range rows {
			var rowText strings.Builder
			for _, word := range row.Content {
				rowText.WriteString(word.S)
			}
			line := strings.TrimSpace(rowText.String())
			if line != "" {
				textBuilder.WriteString(line)
				textBuilder.WriteString("\n")
			}
		}
		textBuilder.WriteString("\n")
	}

	extracted := strings.TrimSpace(textBuilder.String())
	log.Debugf("PDF Extractor: Extracted %d characters from %d pages", len(extracted), numPages)

	return extracted, nil
}

// MuPDFExtractor extracts text with MuPDF through go-fitz
type MuPDFExtractor struct{}

// NewMuPDFExtractor creates a new MuPDF-backed extractor
func NewMuPDFExtractor() *MuPDFExtractor {
	return &MuPDFExtractor{}
}

// ExtractText extracts text from PDF bytes
func (m *MuPDFExtractor) ExtractText(ctx context.Context, content []byte) (string, error) {
	if len(content) == 0 {
		return "", &ExtractionError{Backend: ExtractorMuPDF, Err: errors.New("empty PDF content")}
	}
	// MuPDF happily opens plain text, EPUB and images too
	if !bytes.HasPrefix(content, []byte("%PDF-")) {
		return "", &ExtractionError{Backend: ExtractorMuPDF, Err: errors.New("missing PDF header")}
	}

	doc, err := fitz.NewFromMemory(sanitizePDF(content))
	if err != nil {
		return "", &ExtractionError{Backend: ExtractorMuPDF, Err: fmt.Errorf("cannot open PDF with MuPDF: %w", err)}
	}
	defer doc.Close()

	totalPages := doc.NumPage()
	if totalPages == 0 {
		return "", &ExtractionError{Backend: ExtractorMuPDF, Err: errors.New("PDF has no pages")}
	}

	var textBuilder strings.Builder
	for pageNum := 0; pageNum < totalPages; pageNum++ {
		if err := ctx.Err(); err != nil {
			return "", &ExtractionError{Backend: ExtractorMuPDF, Err: err}
		}

		text, err := doc.Text(pageNum)
		if err != nil {
			log.Warnf("MuPDF Extractor: Failed to extract text from page %d: %v", pageNum+1, err)
			continue
		}

		text = strings.TrimSpace(text)
		if text != "" {
			textBuilder.WriteString(text)
			textBuilder.WriteString("\n\n")
		}
	}

	return strings.TrimSpace(textBuilder.String()), nil
}
