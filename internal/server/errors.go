// Package server provides the HTTP REST API for the career guidance service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/career-pilot/internal/analysis"
	"github.com/jonathan/career-pilot/internal/jobs"
	"github.com/jonathan/career-pilot/internal/profile"
	"github.com/jonathan/career-pilot/internal/roadmap"
	"github.com/jonathan/career-pilot/internal/suggest"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrMissingAPIKey indicates a model-backed endpoint was called without a
// configured Gemini API key.
type ErrMissingAPIKey struct{}

func (e *ErrMissingAPIKey) Error() string {
	return "GEMINI_API_KEY is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr   *ErrValidation
		fieldErrs       validator.ValidationErrors
		profileNotFound *profile.NotFoundError
		roadmapNotFound *roadmap.NotFoundError
		unsupportedFile *analysis.UnsupportedFileError
		fileTooLarge    *analysis.FileTooLargeError
		extractionErr   *analysis.ExtractionError
		jobsConfigErr   *jobs.ConfigError
		missingKey      *ErrMissingAPIKey
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &unsupportedFile), errors.As(err, &fileTooLarge), errors.As(err, &extractionErr):
		return http.StatusBadRequest
	case errors.As(err, &profileNotFound), errors.As(err, &roadmapNotFound):
		return http.StatusNotFound
	case errors.As(err, &missingKey), errors.As(err, &jobsConfigErr):
		return http.StatusInternalServerError
	case isUpstreamError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// isUpstreamError reports whether the error came from a model or job-search
// call, including responses that failed to parse.
func isUpstreamError(err error) bool {
	var (
		roadmapAPI    *roadmap.APICallError
		roadmapParse  *roadmap.ParseError
		analysisAPI   *analysis.APICallError
		analysisParse *analysis.ParseError
		suggestAPI    *suggest.APICallError
		suggestParse  *suggest.ParseError
		jobsAPI       *jobs.APICallError
		jobsParse     *jobs.ParseError
	)
	return errors.As(err, &roadmapAPI) || errors.As(err, &roadmapParse) ||
		errors.As(err, &analysisAPI) || errors.As(err, &analysisParse) ||
		errors.As(err, &suggestAPI) || errors.As(err, &suggestParse) ||
		errors.As(err, &jobsAPI) || errors.As(err, &jobsParse)
}
