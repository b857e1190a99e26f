package analysis

import "fmt"

// UnsupportedFileError rejects uploads that are not DOCX.
type UnsupportedFileError struct {
	ContentType string
}

func (e *UnsupportedFileError) Error() string {
	return "Only DOCX files are supported."
}

// FileTooLargeError rejects uploads over the size cap.
type FileTooLargeError struct {
	Size int64
	Max  int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is %d bytes, the maximum is %d", e.Size, e.Max)
}

// ExtractionError means no usable text came out of the document.
type ExtractionError struct {
	Cause error
}

func (e *ExtractionError) Error() string {
	return "Failed to extract text from resume."
}

func (e *ExtractionError) Unwrap() error { return e.Cause }

// APICallError represents a failure calling the model provider.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resume analysis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("resume analysis failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error { return e.Cause }

// ParseError represents model output that failed schema validation or
// decoding.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse analysis response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to parse analysis response: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }
