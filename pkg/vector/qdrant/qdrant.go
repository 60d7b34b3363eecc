// Package qdrant provides a Qdrant vector index driver implementation.
package qdrant

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/outfitterco/outfitter/pkg/vector"
)

const (
	// DefaultCollectionName is the default collection for product embeddings.
	DefaultCollectionName = "product_catalog"
)

// Driver implements vector.Index using Qdrant's gRPC API.
type Driver struct {
	client     *qdrant.Client
	collection string
	logger     *zap.Logger
}

// Config holds configuration for the Qdrant driver.
type Config struct {
	// Host is the Qdrant gRPC host (e.g. "localhost").
	Host string

	// Port is the Qdrant gRPC port. Defaults to 6334 if zero.
	Port int

	// APIKey authenticates against a managed Qdrant instance. Optional.
	APIKey string

	// UseTLS enables TLS for the gRPC connection.
	UseTLS bool

	// Collection is the name of the collection to use.
	// Defaults to DefaultCollectionName if empty.
	Collection string
}

// NewDriver creates a new Qdrant vector index driver.
func NewDriver(c Config, logger *zap.Logger) (*Driver, error) {
	if c.Host == "" {
		return nil, fmt.Errorf("qdrant host is required")
	}

	port := c.Port
	if port == 0 {
		port = 6334
	}

	collection := c.Collection
	if collection == "" {
		collection = DefaultCollectionName
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   c.Host,
		Port:   port,
		APIKey: c.APIKey,
		UseTLS: c.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: creating qdrant client: %v", vector.ErrConnection, err)
	}

	logger.Info("connected to Qdrant",
		zap.String("host", c.Host),
		zap.Int("port", port),
		zap.String("collection", collection),
	)

	return &Driver{
		client:     client,
		collection: collection,
		logger:     logger,
	}, nil
}

// Recreate drops the collection if present and creates a fresh one with
// cosine distance, matching the offline ingestion contract.
func (d *Driver) Recreate(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension %d", dimension)
	}

	exists, err := d.client.CollectionExists(ctx, d.collection)
	if err != nil {
		return fmt.Errorf("%w: checking collection: %v", vector.ErrConnection, err)
	}

	if exists {
		d.logger.Info("deleting existing collection", zap.String("collection", d.collection))
		if err := d.client.DeleteCollection(ctx, d.collection); err != nil {
			return fmt.Errorf("%w: deleting collection: %v", vector.ErrConnection, err)
		}
	}

	err = d.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: d.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: creating collection: %v", vector.ErrConnection, err)
	}

	d.logger.Info("created collection",
		zap.String("collection", d.collection),
		zap.Int("dimension", dimension),
	)

	return nil
}

// Upsert stores points, overwriting by ID. The call waits for the operation
// to complete so subsequent queries see the data.
func (d *Driver) Upsert(ctx context.Context, points []vector.Point) error {
	if len(points) == 0 {
		return nil
	}

	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Embedding...),
			Payload: qdrant.NewValueMap(p.Payload),
		}
	}

	_, err := d.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: d.collection,
		Points:         qdrantPoints,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("%w: upserting %d points: %v", vector.ErrConnection, len(points), err)
	}

	return nil
}

// Query issues a single similarity query with optional filter and score
// threshold. Ordering is whatever the index returns (descending by score).
func (d *Driver) Query(ctx context.Context, embedding []float32, limit int, scoreThreshold float32, filter *vector.Filter) ([]vector.Match, error) {
	points, err := d.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: d.collection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		ScoreThreshold: qdrant.PtrOf(scoreThreshold),
		Filter:         toQdrantFilter(filter),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: querying collection %q: %v", vector.ErrConnection, d.collection, err)
	}

	matches := make([]vector.Match, 0, len(points))
	for _, p := range points {
		matches = append(matches, vector.Match{
			ID:      pointIDString(p.Id),
			Score:   p.Score,
			Payload: payloadToMap(p.Payload),
		})
	}

	return matches, nil
}

// Close releases the underlying gRPC connection.
func (d *Driver) Close() error {
	return d.client.Close()
}

// toQdrantFilter translates the driver-neutral filter predicate into
// Qdrant's native form. A nil filter stays nil so the query is unfiltered.
func toQdrantFilter(f *vector.Filter) *qdrant.Filter {
	if f == nil || len(f.Must) == 0 {
		return nil
	}

	conditions := make([]*qdrant.Condition, 0, len(f.Must))
	for _, c := range f.Must {
		switch {
		case c.Match != nil:
			conditions = append(conditions, qdrant.NewMatch(c.Field, *c.Match))
		case c.Range != nil:
			conditions = append(conditions, qdrant.NewRange(c.Field, &qdrant.Range{
				Gte: c.Range.GTE,
				Lte: c.Range.LTE,
			}))
		}
	}

	return &qdrant.Filter{Must: conditions}
}

// pointIDString renders a point ID as a string regardless of whether it was
// stored as a UUID or a number.
func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return fmt.Sprintf("%d", id.GetNum())
}

// payloadToMap converts a Qdrant payload into plain Go values. Integers are
// widened to float64 so payloads round-trip the same as JSON numbers.
func payloadToMap(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}

	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = valueToAny(value)
	}
	return out
}

func valueToAny(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_IntegerValue:
		return float64(kind.IntegerValue)
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		values := kind.ListValue.GetValues()
		out := make([]any, 0, len(values))
		for _, item := range values {
			out = append(out, valueToAny(item))
		}
		return out
	default:
		return nil
	}
}
