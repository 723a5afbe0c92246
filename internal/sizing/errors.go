package sizing

import "net/http"

// Kind classifies a sizing failure for HTTP mapping.
type Kind string

const (
	// KindInvalidInput is a request that failed validation; no
	// upstream call has been made.
	KindInvalidInput Kind = "invalid_input"
	// KindAddressNotFound means the geocoder answered but found no
	// match for the address.
	KindAddressNotFound Kind = "address_not_found"
	// KindIrradianceUnavailable means the solar-resource response
	// lacked the annual average figure.
	KindIrradianceUnavailable Kind = "irradiance_unavailable"
	// KindUpstreamUnavailable is a network or transport failure
	// against any third-party API.
	KindUpstreamUnavailable Kind = "upstream_unavailable"
)

// Error is a classified sizing failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Field   string // offending request field for validation errors
	Message string
	Err     error // underlying cause, when any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the failure kind to a response status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindInvalidInput, KindAddressNotFound:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// invalid builds a validation error for a specific field.
func invalid(field, message string) *Error {
	return &Error{Kind: KindInvalidInput, Field: field, Message: message}
}
