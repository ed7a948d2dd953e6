package domain

import "context"

// DocumentParser decodes one raw AvailRQ payload into the typed document
// tree. Implementations are shape-only: they report ErrMalformedDocument for
// undecodable input and leave every business rule to the validator.
type DocumentParser interface {
	Parse(data []byte) (AvailabilityDocument, error)
}

// Cache stores rendered response bodies keyed by request digest.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttlSec int) error
}
