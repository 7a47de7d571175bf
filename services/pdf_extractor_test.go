package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sahilchouksey/paper-insight-api/utils/testpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextExtractor(t *testing.T) {
	ext, err := NewTextExtractor("")
	require.NoError(t, err)
	assert.IsType(t, &PDFExtractor{}, ext)

	ext, err = NewTextExtractor(ExtractorMuPDF)
	require.NoError(t, err)
	assert.IsType(t, &MuPDFExtractor{}, ext)

	_, err = NewTextExtractor("ocr")
	assert.Error(t, err)
}

func TestPDFExtractorExtractsText(t *testing.T) {
	content := testpdf.Build("Attention Is All You Need")

	text, err := NewPDFExtractor().ExtractText(context.Background(), content)
	require.NoError(t, err)
	assert.Contains(t, text, "Attention")
}

func TestMuPDFExtractorExtractsText(t *testing.T) {
	content := testpdf.Build("Attention Is All You Need")

	text, err := NewMuPDFExtractor().ExtractText(context.Background(), content)
	require.NoError(t, err)
	assert.Contains(t, text, "Attention")
}

func TestExtractorsReturnExtractionError(t *testing.T) {
	inputs := map[string][]byte{
		"empty":   nil,
		"not pdf": []byte("this is a plain text file, not a PDF"),
	}

	extractors := map[string]TextExtractor{
		ExtractorLedongthuc: NewPDFExtractor(),
		ExtractorMuPDF:      NewMuPDFExtractor(),
	}

	for backend, ext := range extractors {
		for name, input := range inputs {
			t.Run(backend+"/"+name, func(t *testing.T) {
				_, err := ext.ExtractText(context.Background(), input)
				require.Error(t, err)

				var extractionErr *ExtractionError
				require.True(t, errors.As(err, &extractionErr))
				assert.Equal(t, backend, extractionErr.Backend)
			})
		}
	}
}

func TestSanitizePDFTrimsTrailingGarbage(t *testing.T) {
	content := testpdf.Build("hello")
	dirty := append(append([]byte{}, content...), []byte("<html><body>download page</body></html>")...)

	assert.Equal(t, content, sanitizePDF(dirty))
	assert.Equal(t, content, sanitizePDF(content))
	assert.Equal(t, []byte("plain"), sanitizePDF([]byte("plain")))
}
