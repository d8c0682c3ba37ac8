package generation

import "errors"

var (
	// ErrInvalidImage indicates the image is not a usable data URI.
	ErrInvalidImage = errors.New("invalid image data uri")
	// ErrMalformedResponse indicates the model returned JSON of the wrong shape.
	ErrMalformedResponse = errors.New("malformed generation response")
	// ErrMissingAPIKey indicates no credential was configured.
	ErrMissingAPIKey = errors.New("missing generation api key")
)
