package driven

import "context"

// Distance is the similarity metric used by a collection.
type Distance string

// Supported distance metrics.
const (
	DistanceCosine Distance = "Cosine"
	DistanceDot    Distance = "Dot"
	DistanceEuclid Distance = "Euclid"
)

// PayloadFieldType is the schema of a filterable payload field.
type PayloadFieldType string

// Supported payload field types.
const (
	PayloadFieldKeyword PayloadFieldType = "keyword"
	PayloadFieldBool    PayloadFieldType = "bool"
)

// Point is one vector with its deterministic ID and payload, ready to upsert.
type Point struct {
	// ID is the deterministic point identifier. Re-indexing identical
	// content produces the same ID and overwrites in place.
	ID string

	// Vector is the embedding. Length must match the collection vector size.
	Vector []float32

	// Payload carries the chunk fields for retrieval and filtering.
	Payload map[string]any
}

// ScoredPoint is a similarity search hit.
type ScoredPoint struct {
	// ID is the matched point.
	ID string

	// Score is the similarity score (higher is closer for cosine).
	Score float64

	// Payload is the stored payload, present when requested.
	Payload map[string]any
}

// FieldMatch is one equality predicate over a payload field.
type FieldMatch struct {
	Key   string
	Value any
}

// Filter is a conjunction of equality predicates.
// A nil *Filter means no filtering.
type Filter struct {
	Must []FieldMatch
}

// VectorIndexGateway provides named-collection vector storage with
// similarity search and payload filtering. Backed by Qdrant.
type VectorIndexGateway interface {
	// CollectionExists reports whether the named collection exists.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// CreateCollection creates a collection with the given vector size
	// and distance metric.
	CreateCollection(ctx context.Context, name string, vectorSize int, distance Distance) error

	// CreatePayloadIndex creates a filterable index over a payload field.
	CreatePayloadIndex(ctx context.Context, name, field string, fieldType PayloadFieldType) error

	// Upsert inserts or overwrites points by ID. When wait is true the call
	// returns only after the write is applied. Fails if the request payload
	// exceeds the gateway's per-request ceiling.
	Upsert(ctx context.Context, name string, points []Point, wait bool) error

	// Search returns the points nearest to the query vector, best first.
	// filter may be nil. Payloads are included when withPayload is true.
	Search(ctx context.Context, name string, vector []float32, limit int, filter *Filter, withPayload bool) ([]ScoredPoint, error)

	// Close releases resources.
	Close() error
}
