package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"bookservice/internal/book"
	"bookservice/internal/validation"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding used by a Writer.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type SuccessResponse struct {
	Success bool        `json:"success" yaml:"success"`
	Data    interface{} `json:"data,omitempty" yaml:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty" yaml:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success" yaml:"success"`
	Error   ErrorResponseBody `json:"error" yaml:"error"`
	Meta    interface{}       `json:"meta,omitempty" yaml:"meta,omitempty"`
}

type ErrorResponseBody struct {
	Code    string                  `json:"code" yaml:"code"`
	Message string                  `json:"message" yaml:"message"`
	Details []validation.FieldError `json:"details,omitempty" yaml:"details,omitempty"`
}

// Writer encodes response envelopes onto an io.Writer.
type Writer struct {
	w      io.Writer
	format Format
	runID  string
}

// NewWriter returns a Writer for the given format. runID, when set, is
// attached to every envelope's meta.
func NewWriter(w io.Writer, format Format, runID string) (*Writer, error) {
	switch format {
	case FormatJSON, FormatYAML:
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return &Writer{w: w, format: format, runID: runID}, nil
}

func (o *Writer) buildMeta(customMeta map[string]interface{}) interface{} {
	if o.runID == "" && len(customMeta) == 0 {
		return nil
	}
	meta := make(map[string]interface{}, len(customMeta)+1)
	if o.runID != "" {
		meta["run_id"] = o.runID
	}
	for k, v := range customMeta {
		meta[k] = v
	}
	return meta
}

// Success writes a success envelope.
func (o *Writer) Success(data interface{}, customMeta map[string]interface{}) error {
	return o.encode(SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    o.buildMeta(customMeta),
	})
}

// Error writes an error envelope. Validation errors carry their field details.
func (o *Writer) Error(err error, customMeta map[string]interface{}) error {
	return o.encode(ErrorResponse{
		Success: false,
		Error:   ErrorBody(err),
		Meta:    o.buildMeta(customMeta),
	})
}

// ErrorBody classifies err into an envelope body. Errors may name their own
// code by implementing Code() string.
func ErrorBody(err error) ErrorResponseBody {
	var verr *book.ValidationError
	if errors.As(err, &verr) {
		return ErrorResponseBody{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
			Details: verr.Details,
		}
	}

	var coded interface{ Code() string }
	if errors.As(err, &coded) {
		return ErrorResponseBody{
			Code:    coded.Code(),
			Message: err.Error(),
		}
	}

	return ErrorResponseBody{
		Code:    "INTERNAL_ERROR",
		Message: err.Error(),
	}
}

func (o *Writer) encode(v interface{}) error {
	if o.format == FormatYAML {
		enc := yaml.NewEncoder(o.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
