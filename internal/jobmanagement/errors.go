package jobmanagement

import "fmt"

// Error types mirror the processing stages: upload validation, workbook
// decoding, data layout validation and report generation. The HTTP layer
// maps each type to a status code.

// FileValidationError rejects an upload before it is opened.
type FileValidationError struct {
	Filename string
	Reason   string
}

func (e *FileValidationError) Error() string {
	return fmt.Sprintf("file validation failed for %q: %s", e.Filename, e.Reason)
}

// FileProcessingError reports a workbook that could not be decoded.
type FileProcessingError struct {
	Filename string
	Err      error
}

func (e *FileProcessingError) Error() string {
	return fmt.Sprintf("failed to process file %q: %v", e.Filename, e.Err)
}

func (e *FileProcessingError) Unwrap() error { return e.Err }

// DataValidationError reports sheet content that does not form an evaluable
// dataset.
type DataValidationError struct {
	Reason string
	Err    error
}

func (e *DataValidationError) Error() string {
	if e.Err == nil {
		return "data validation failed: " + e.Reason
	}
	return fmt.Sprintf("data validation failed: %s: %v", e.Reason, e.Err)
}

func (e *DataValidationError) Unwrap() error { return e.Err }

// ReportGenerationError reports a failure while rendering the result
// workbook.
type ReportGenerationError struct {
	Err error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("failed to generate report: %v", e.Err)
}

func (e *ReportGenerationError) Unwrap() error { return e.Err }
