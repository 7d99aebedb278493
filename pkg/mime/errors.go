package mime

import "errors"

var (
	// ErrInvalidHeaderName is returned when a header name is not an RFC 7230 token
	ErrInvalidHeaderName = errors.New("invalid header name")
	// ErrInvalidHeaderValue is returned when a header value contains control characters
	ErrInvalidHeaderValue = errors.New("invalid header value")
	// ErrEmptyHeaderValueList is returned when a header is assigned no values
	ErrEmptyHeaderValueList = errors.New("header value list can not be empty")
)
