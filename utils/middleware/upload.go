package middleware

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/sahilchouksey/paper-insight-api/utils/pdfvalidation"
	"github.com/sahilchouksey/paper-insight-api/utils/response"
)

const uploadedFileKey = "uploaded_pdf_path"

// UploadConfig configures the PDF upload middleware
type UploadConfig struct {
	Dir        string
	Limits     pdfvalidation.PDFLimits
	FieldNames []string
}

// DefaultUploadFields are the multipart fields checked for the PDF, in order
var DefaultUploadFields = []string{"pdf", "file"}

// PDFUpload validates the uploaded PDF, stores it in the upload directory for the
// lifetime of the request and removes it once the downstream handlers return.
// Requests without a file pass through untouched.
func PDFUpload(config UploadConfig) fiber.Handler {
	if len(config.FieldNames) == 0 {
		config.FieldNames = DefaultUploadFields
	}

	return func(c *fiber.Ctx) error {
		fh := formFile(c, config.FieldNames)
		if fh == nil {
			return c.Next()
		}

		result := pdfvalidation.ValidatePDFFile(fh, config.Limits)
		if !result.Valid {
			return response.BadRequest(c, result.Error)
		}

		if err := os.MkdirAll(config.Dir, 0o755); err != nil {
			return response.InternalServerError(c, "Failed to store uploaded file", err)
		}

		path := filepath.Join(config.Dir, uuid.New().String()+".pdf")
		if err := c.SaveFile(fh, path); err != nil {
			removeUpload(path)
			return response.InternalServerError(c, "Failed to store uploaded file", err)
		}
		defer removeUpload(path)

		c.Locals(uploadedFileKey, path)
		return c.Next()
	}
}

// GetUploadedFilePath returns the temp path of the validated upload
func GetUploadedFilePath(c *fiber.Ctx) (string, bool) {
	path := c.Locals(uploadedFileKey)
	if path == nil {
		return "", false
	}
	p, ok := path.(string)
	return p, ok && p != ""
}

func formFile(c *fiber.Ctx, fields []string) *multipart.FileHeader {
	for _, field := range fields {
		if fh, err := c.FormFile(field); err == nil && fh != nil {
			return fh
		}
	}
	return nil
}

func removeUpload(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("Upload: Failed to remove temp file %s: %v", path, err)
	}
}
