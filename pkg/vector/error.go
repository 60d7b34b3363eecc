package vector

import "errors"

var (
	// ErrEmbedding is returned when embedding generation fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrConnection is returned when the vector index connection fails.
	ErrConnection = errors.New("vector index connection failed")

	// ErrMalformedPayload is returned when an index result is missing an
	// expected payload attribute.
	ErrMalformedPayload = errors.New("malformed payload")
)
