package desklineclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// firstArray extracts the item array from a backend response body. The API
// is not consistent about shape: some endpoints return a top-level array,
// others wrap it in an object whose first array-valued property holds the
// items. Property order in the document decides which array wins.
func firstArray(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if trimmed[0] == '[' {
		return json.RawMessage(trimmed), nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("unexpected response shape")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil { // opening brace
		return nil, err
	}
	for dec.More() {
		if _, err := dec.Token(); err != nil { // property name
			return nil, err
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if v := bytes.TrimSpace(value); len(v) > 0 && v[0] == '[' {
			return value, nil
		}
	}

	return nil, fmt.Errorf("no array found in response")
}

// decodeItems unmarshals the first array of a response into listedItems.
func decodeItems(body []byte) ([]listedItem, error) {
	raw, err := firstArray(body)
	if err != nil {
		return nil, err
	}
	var items []listedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode item list: %w", err)
	}
	return items, nil
}
