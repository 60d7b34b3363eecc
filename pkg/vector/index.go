// Package vector provides interfaces and types for vector index access.
package vector

import "context"

// Point represents a stored item with its embedding and payload metadata.
type Point struct {
	// ID is a unique identifier for the point.
	ID string

	// Embedding is the vector representation of the item.
	Embedding []float32

	// Payload is the metadata stored alongside the vector and returned
	// on query.
	Payload map[string]any
}

// Match represents a similarity query result.
type Match struct {
	// ID is the identifier of the matched point.
	ID string

	// Score is the similarity score reported by the index for its
	// configured distance function (cosine here, higher = more similar).
	Score float32

	// Payload is the stored metadata of the matched point.
	Payload map[string]any
}

// Index handles storage and similarity retrieval of vector embeddings.
type Index interface {
	// Recreate drops the collection if it exists and creates a fresh one
	// with the given vector dimension. Used by offline ingestion only.
	Recreate(ctx context.Context, dimension int) error

	// Upsert stores points, overwriting by ID.
	Upsert(ctx context.Context, points []Point) error

	// Query returns at most limit matches with score >= scoreThreshold,
	// ordered descending by score. A nil filter matches everything.
	Query(ctx context.Context, embedding []float32, limit int, scoreThreshold float32, filter *Filter) ([]Match, error)

	// Close releases any resources held by the index.
	Close() error
}
