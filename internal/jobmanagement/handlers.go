package jobmanagement

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EvaluateHandler serves POST /evaluate: multipart upload in, result
// workbook out.
type EvaluateHandler struct {
	service *EvaluationService
}

// NewEvaluateHandler wires a handler to an evaluation service.
func NewEvaluateHandler(service *EvaluationService) *EvaluateHandler {
	return &EvaluateHandler{service: service}
}

// Evaluate validates the multipart upload, runs the evaluation and streams
// back the result workbook. The filename is RFC 5987 encoded so Chinese
// filenames survive the Content-Disposition header.
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, &FileValidationError{Reason: "no file provided"})
		return
	}
	valueSetID := c.PostForm("value_set_id")

	if err := h.service.ValidateUpload(fileHeader.Filename, fileHeader.Size); err != nil {
		respondError(c, err)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, &FileProcessingError{Filename: fileHeader.Filename, Err: err})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, MaxUploadBytes))
	if err != nil {
		respondError(c, &FileProcessingError{Filename: fileHeader.Filename, Err: err})
		return
	}

	output, err := h.service.ProcessWorkbook(c.Request.Context(), content, fileHeader.Filename, valueSetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(output.Filename))
	c.Header("Access-Control-Expose-Headers", "Content-Disposition, X-Evaluation-Id")
	c.Header("X-Evaluation-Id", output.RunID.String())
	c.Data(http.StatusOK, xlsxContentType, output.Content)
}

// respondError maps the service error taxonomy to HTTP statuses: 400 for
// upload validation, 422 for files or data the service cannot evaluate,
// 500 for everything else.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *FileValidationError
		processingErr *FileProcessingError
		dataErr       *DataValidationError
		reportErr     *ReportGenerationError
	)

	switch {
	case errors.As(err, &validationErr):
		errorJSON(c, http.StatusBadRequest, "File validation failed", validationErr.Reason, "file_validation_error", validationErr.Filename)
	case errors.As(err, &processingErr):
		errorJSON(c, http.StatusUnprocessableEntity, "File processing failed", processingErr.Error(), "file_processing_error", processingErr.Filename)
	case errors.As(err, &dataErr):
		errorJSON(c, http.StatusUnprocessableEntity, "Data validation failed", dataErr.Error(), "data_validation_error", "")
	case errors.As(err, &reportErr):
		errorJSON(c, http.StatusInternalServerError, "Report generation failed", reportErr.Error(), "report_generation_error", "")
	default:
		log.Printf("Unexpected error during evaluation: %v", err)
		errorJSON(c, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred during evaluation", "unexpected_error", "")
	}
}

func errorJSON(c *gin.Context, status int, errTitle, message, errType, filename string) {
	details := gin.H{"error_type": errType}
	if filename != "" {
		details["filename"] = filename
	}
	c.JSON(status, gin.H{
		"error":   errTitle,
		"message": message,
		"details": details,
	})
}
