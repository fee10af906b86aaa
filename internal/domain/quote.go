// Package domain contains core business entities and rules.
package domain

// Quote is a quotation fetched from the DailyDose API.
// Quotes are immutable once fetched; the service never edits them locally.
type Quote struct {
	// ID is the legacy numeric identifier. Kept for records written before
	// the API introduced UUIDs.
	ID int64 `json:"id"`

	// UUID is the stable identifier used to key favorites and caches.
	UUID string `json:"uuid"`

	// Text is the quotation itself.
	Text string `json:"quote"`

	// Author is who said or wrote the quote.
	Author string `json:"author"`

	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Key returns the identifier quotes are deduplicated by.
// A quote without a UUID has no key and cannot be stored by key.
func (q *Quote) Key() (string, bool) {
	if q == nil || q.UUID == "" {
		return "", false
	}

	return q.UUID, true
}

// Category is a quote category exposed by the API.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DedupeQuotes removes quotes sharing a UUID. When two entries collide the
// later one wins, but it keeps the position of the first occurrence.
// Quotes without a UUID are dropped.
func DedupeQuotes(quotes []Quote) []Quote {
	index := make(map[string]int, len(quotes))
	out := make([]Quote, 0, len(quotes))

	for i := range quotes {
		key, ok := quotes[i].Key()
		if !ok {
			continue
		}

		if pos, seen := index[key]; seen {
			out[pos] = quotes[i]
			continue
		}

		index[key] = len(out)
		out = append(out, quotes[i])
	}

	return out
}
