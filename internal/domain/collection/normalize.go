package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Normalize parses a collection response body.
// A bare array is used as-is; an object yields its "results" field.
// Any other shape is treated as an empty collection, not an error.
// PRE: body is the raw response body
// POST: returns a non-nil slice, or an error only when body is not valid JSON
func Normalize(body []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode response: unexpected data after JSON value")
	}

	items := payload
	if obj, ok := payload.(map[string]any); ok {
		items = obj["results"]
	}
	arr, ok := items.([]any)
	if !ok {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			// Keep the row so the count matches what the API sent.
			records = append(records, Record{})
			continue
		}
		records = append(records, Record(m))
	}
	return records, nil
}
