package model

import "errors"

// ErrInvalidPayload is the marker error for aggregated payload validation
// failures. Field-level details are retrieved via PayloadFieldErrors(err).
var ErrInvalidPayload = errors.New("invalid payload")

// FieldError describes a single offending field in an inbound payload,
// identified by its dotted path from the payload root.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidPayloadError aggregates FieldError instances and unwraps to ErrInvalidPayload.
type invalidPayloadError struct {
	fields []FieldError
}

func (e *invalidPayloadError) Error() string        { return ErrInvalidPayload.Error() }
func (e *invalidPayloadError) Unwrap() error        { return ErrInvalidPayload }
func (e *invalidPayloadError) Fields() []FieldError { return e.fields }

// NewInvalidPayload builds an aggregated validation error if any field errors are present.
func NewInvalidPayload(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidPayloadError{fields: fe}
}

// PayloadFieldErrors extracts field errors from an aggregated validation error.
func PayloadFieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidPayload) {
		return v.Fields()
	}
	return nil
}
