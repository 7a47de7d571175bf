package pdfvalidation

import (
	"fmt"
	"mime"
	"mime/multipart"
)

const (
	// PDFMimeType is the only accepted upload content type
	PDFMimeType = "application/pdf"

	// ErrOnlyPDF is the message returned for non-PDF uploads
	ErrOnlyPDF = "Only PDF files are allowed."
)

// PDFLimits defines the validation limits for PDF uploads
type PDFLimits struct {
	MaxFileSizeMB int
}

// DefaultLimits caps uploads at 10MB
var DefaultLimits = PDFLimits{
	MaxFileSizeMB: 10,
}

// MaxBytes returns the size limit in bytes
func (l PDFLimits) MaxBytes() int64 {
	return int64(l.MaxFileSizeMB) * 1024 * 1024
}

// ValidationResult contains the result of PDF validation
type ValidationResult struct {
	Valid    bool
	FileSize int64
	Error    string
}

// ValidatePDFFile checks the declared content type and size of an uploaded file.
// It does not parse the document; broken PDFs surface later as extraction errors.
func ValidatePDFFile(file *multipart.FileHeader, limits PDFLimits) *ValidationResult {
	result := &ValidationResult{
		FileSize: file.Size,
	}

	mediaType, _, err := mime.ParseMediaType(file.Header.Get("Content-Type"))
	if err != nil || mediaType != PDFMimeType {
		result.Error = ErrOnlyPDF
		return result
	}

	if file.Size > limits.MaxBytes() {
		result.Error = fmt.Sprintf("File too large. Maximum size is %dMB.", limits.MaxFileSizeMB)
		return result
	}

	result.Valid = true
	return result
}
