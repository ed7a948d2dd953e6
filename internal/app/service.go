package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"hotelavail/internal/domain"
)

// AvailabilityService runs the parse, validate and price pipeline for one
// request document and renders the wire JSON. With a cache attached,
// successful response bodies are reused for byte-identical documents within
// the TTL; rejected and malformed requests are never cached.
type AvailabilityService struct {
	parser    domain.DocumentParser
	validator *RequestValidator
	builder   *ResponseBuilder
	cache     domain.Cache
	cacheTTL  time.Duration
}

// NewAvailabilityService wires the pipeline. cache may be nil to disable
// response caching.
func NewAvailabilityService(p domain.DocumentParser, rules domain.Rules, cache domain.Cache, ttl time.Duration) *AvailabilityService {
	return &AvailabilityService{
		parser:    p,
		validator: NewRequestValidator(rules),
		builder:   NewResponseBuilder(rules),
		cache:     cache,
		cacheTTL:  ttl,
	}
}

// WithValidator swaps the rule validator; tests use it to pin the clock.
func (s *AvailabilityService) WithValidator(v *RequestValidator) *AvailabilityService {
	s.validator = v
	return s
}

// Availability runs the typed pipeline without rendering: parse failures and
// rule violations come back as errors, valid requests as priced offers.
func (s *AvailabilityService) Availability(ctx context.Context, raw []byte) ([]domain.PricedOffer, error) {
	doc, err := s.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	req, err := s.validator.Validate(doc)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(req), nil
}

// AvailabilityJSON renders the wire contract for one request document: the
// indented offer array on success, or a single-line {"error": ...} object
// when a business rule is violated. In the violation case body still carries
// the rendered error response and err carries the violation, so callers
// serving the contract write body whenever it is non-nil and callers that
// care about the outcome inspect err. A nil body means the document could
// not be parsed at all.
func (s *AvailabilityService) AvailabilityJSON(ctx context.Context, raw []byte) ([]byte, error) {
	key := cacheKey(raw)
	if s.cache != nil {
		if body, ok, _ := s.cache.Get(ctx, key); ok {
			return body, nil
		}
	}

	offers, err := s.Availability(ctx, raw)
	if err != nil {
		if domain.IsRuleViolation(err) {
			body, merr := json.Marshal(errorResponse{Error: err.Error()})
			if merr != nil {
				return nil, merr
			}
			return body, err
		}
		return nil, err
	}

	body, err := json.MarshalIndent(offers, "", "  ")
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, body, int(s.cacheTTL.Seconds()))
	}
	return body, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// cacheKey digests the raw document; byte-identical requests share a key.
func cacheKey(raw []byte) string {
	sum := sha1.Sum(raw)
	return "avail:" + hex.EncodeToString(sum[:])
}
