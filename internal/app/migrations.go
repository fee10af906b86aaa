package app

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dailydose/dailydose/internal/domain"
)

// favoritesMigration upgrades one historical shape of the favorites value.
// Steps run in order; each one fires only when detect matches the raw value.
type favoritesMigration struct {
	name   string
	detect func(raw []byte) bool
	apply  func(raw []byte) ([]byte, error)
}

// favoritesMigrations lists every upgrade step. Append new steps at the end.
var favoritesMigrations = []favoritesMigration{
	{
		name:   "legacy-array-to-map",
		detect: isJSONArray,
		apply:  favoritesArrayToMap,
	},
}

// decodeFavorites migrates raw to the current shape and decodes it. The
// names of the applied steps are returned so the caller knows to write back.
func decodeFavorites(raw []byte) (map[string]domain.Quote, []string, error) {
	var applied []string

	for _, m := range favoritesMigrations {
		if !m.detect(raw) {
			continue
		}

		next, err := m.apply(raw)
		if err != nil {
			return nil, applied, fmt.Errorf("migration %s: %w", m.name, err)
		}

		raw = next
		applied = append(applied, m.name)
	}

	favorites := make(map[string]domain.Quote)
	if err := json.Unmarshal(raw, &favorites); err != nil {
		return nil, applied, fmt.Errorf("decode favorites: %w", err)
	}

	// A stored JSON null decodes to a nil map.
	if favorites == nil {
		favorites = make(map[string]domain.Quote)
	}

	return favorites, applied, nil
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) > 0 && trimmed[0] == '['
}

// favoritesArrayToMap keys the legacy list by uuid. Elements without a uuid
// or that are not quote objects are dropped; later duplicates win.
func favoritesArrayToMap(raw []byte) ([]byte, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, err
	}

	out := make(map[string]domain.Quote, len(elems))

	for _, elem := range elems {
		var q domain.Quote
		if err := json.Unmarshal(elem, &q); err != nil {
			continue
		}

		if key, ok := q.Key(); ok {
			out[key] = q
		}
	}

	return json.Marshal(out)
}
