package dto

import "github.com/dailydose/dailydose/internal/domain"

// QuoteResponse is a quote as the API returns it.
type QuoteResponse struct {
	ID       int64  `json:"id,omitempty"`
	UUID     string `json:"uuid"`
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
	Date     string `json:"date,omitempty"`

	// Favorite is set on endpoints that know the favorites state.
	Favorite *bool `json:"favorite,omitempty"`
}

// FromQuote converts a domain quote.
func FromQuote(q *domain.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}

	return &QuoteResponse{
		ID:       q.ID,
		UUID:     q.UUID,
		Quote:    q.Text,
		Author:   q.Author,
		Category: q.Category,
		Type:     q.Type,
		Date:     q.Date,
	}
}

// FromQuotes converts a list; the result is never nil.
func FromQuotes(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for i := range quotes {
		out = append(out, *FromQuote(&quotes[i]))
	}

	return out
}

// WithFavorite returns a copy of r marked with the favorites state.
func (r QuoteResponse) WithFavorite(fav bool) *QuoteResponse {
	r.Favorite = &fav
	return &r
}

// QuoteRequest is the body of PUT /favorites/{uuid}. The uuid comes from
// the path; a uuid in the body must match it.
type QuoteRequest struct {
	ID       int64  `json:"id"`
	UUID     string `json:"uuid"`
	Quote    string `json:"quote" validate:"required,notblank,max=2000"`
	Author   string `json:"author" validate:"max=200"`
	Category string `json:"category" validate:"max=100"`
	Type     string `json:"type" validate:"max=100"`
	Date     string `json:"date" validate:"max=64"`
}

// ToDomain builds the quote stored under uuid.
func (r *QuoteRequest) ToDomain(uuid string) (domain.Quote, error) {
	if r.UUID != "" && r.UUID != uuid {
		return domain.Quote{}, domain.NewValidationError("uuid", "does not match the path")
	}

	return domain.Quote{
		ID:       r.ID,
		UUID:     uuid,
		Text:     r.Quote,
		Author:   r.Author,
		Category: r.Category,
		Type:     r.Type,
		Date:     r.Date,
	}, nil
}

// CategoryQuery filters quotes by category.
type CategoryQuery struct {
	Category string `form:"category" validate:"max=100"`
}

// CategoryResponse is a quote category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FromCategories converts the category list; the result is never nil.
func FromCategories(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{ID: c.ID, Name: c.Name})
	}

	return out
}

// HomeResponse is the home screen payload. Either quote may be missing
// when its fetch failed.
type HomeResponse struct {
	Today  *QuoteResponse `json:"today,omitempty"`
	Random *QuoteResponse `json:"random,omitempty"`
}

// ToggleResponse reports the favorites state after a toggle.
type ToggleResponse struct {
	UUID     string `json:"uuid"`
	Favorite bool   `json:"favorite"`
}

// CachedQuotesResponse lists the recent-quotes cache, newest first.
type CachedQuotesResponse struct {
	Items []QuoteResponse `json:"items"`
}
