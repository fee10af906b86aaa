package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/dailydose/dailydose/internal/adapters/clients"
	"github.com/dailydose/dailydose/internal/domain"
)

// maxResponseBody caps how much of a success response is decoded. The full
// quote list is the largest payload the API sends.
const maxResponseBody = 8 << 20

// BaseAdapter holds the client plumbing shared by the quote API adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter returns a BaseAdapter for client.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{client: client, serviceName: serviceName}
}

// Client returns the underlying HTTP client.
func (a *BaseAdapter) Client() *clients.Client {
	return a.client
}

// ServiceName returns the downstream name used in errors and health checks.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// Target names what a request fetches, for error mapping.
type Target struct {
	Operation string
	Entity    string
	ID        string
}

// Get fetches path and returns the body on a 2xx. Any other outcome is
// returned as a domain error. The caller closes the body.
func (a *BaseAdapter) Get(ctx context.Context, path string, query url.Values, target Target) (io.ReadCloser, error) {
	resp, err := a.client.Get(ctx, path, query)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, target.Operation, target.Entity, target.ID)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		defer func() { _ = resp.Body.Close() }()
		return nil, MapHTTPError(resp, nil, a.serviceName, target.Operation, target.Entity, target.ID)
	}

	return resp.Body, nil
}

// Fetch combines Get and DecodeResponse. A body that does not decode is
// reported as the service being unavailable.
func Fetch[T any](ctx context.Context, a *BaseAdapter, path string, query url.Values, target Target) (*T, error) {
	body, err := a.Get(ctx, path, query, target)
	if err != nil {
		return nil, err
	}

	out, err := DecodeResponse[T](body)
	if err != nil {
		return nil, domain.NewUnavailableError(a.serviceName, fmt.Errorf("%s: %w", target.Operation, err))
	}

	return out, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, errors.New("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(io.LimitReader(body, maxResponseBody)).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// ValidateRequired returns a ValidationError when value is empty.
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return domain.NewValidationError(fieldName, "is required")
	}

	return nil
}

// Translator converts one external DTO into a domain value.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice translates every item and stops at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, *translated)
	}

	return result, nil
}

// TranslateLenient translates every item and skips the ones that fail.
// skipped receives each dropped index and its error.
func TranslateLenient[E any, D any](items []E, translate Translator[E, D], skipped func(int, error)) []D {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			if skipped != nil {
				skipped(i, err)
			}
			continue
		}

		result = append(result, *translated)
	}

	return result
}
