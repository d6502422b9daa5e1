// Package input normalizes and checks user text before any request is built.
package input

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/studiowebux/nlpbrowser/internal/types"
)

// EmptyInputMessage is shown in the error banner when the prompt is blank
const EmptyInputMessage = "Por favor, insira um texto para análise"

// ErrEmptyInput is wrapped by every ValidationError caused by a blank prompt
var ErrEmptyInput = errors.New("empty input")

// ErrInvalidTopK is wrapped when a top-k value is required but not positive
var ErrInvalidTopK = errors.New("invalid top_k")

var validate = validator.New()

// ValidationError is returned when the form content cannot be submitted.
// It never reaches the network layer.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Normalize trims the raw form text and rejects it when nothing is left
func Normalize(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &ValidationError{Field: "prompt", Message: EmptyInputMessage, Err: ErrEmptyInput}
	}
	return text, nil
}

// NewRequest normalizes raw and builds the request body for kind.
// topK is only attached (and checked) when the kind uses it.
func NewRequest(kind types.AnalysisKind, raw string, topK int) (types.AnalysisRequest, error) {
	text, err := Normalize(raw)
	if err != nil {
		return types.AnalysisRequest{}, err
	}

	req := types.AnalysisRequest{Prompt: text}
	if kind.UsesTopK() {
		if topK < 1 {
			return types.AnalysisRequest{}, &ValidationError{
				Field:   "top_k",
				Message: fmt.Sprintf("top_k deve ser um inteiro positivo (recebido %d)", topK),
				Err:     ErrInvalidTopK,
			}
		}
		req.TopK = topK
	}

	if err := validate.Struct(req); err != nil {
		return types.AnalysisRequest{}, &ValidationError{
			Field:   "request",
			Message: fmt.Sprintf("requisição inválida: %v", err),
			Err:     err,
		}
	}

	return req, nil
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
