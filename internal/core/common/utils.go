package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON cleans and unmarshals a JSON string into a type T.
// It handles common LLM quirks like surrounding markdown or extra text.
//
// Every '{' or '[' in the response is tried in order as the start of the
// payload; the first one that decodes as a complete JSON value of type T
// wins. Brackets in the surrounding prose are skipped that way, and a caller
// asking for an object never gets an array.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	lastErr := fmt.Errorf("no JSON value found in response (missing '{' or '[')")
	for offset := 0; offset < len(response); {
		i := strings.IndexAny(response[offset:], "{[")
		if i == -1 {
			break
		}
		start := offset + i
		offset = start + 1

		result, err := decodeAt[T](response[start:])
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return zero, lastErr
}

// decodeAt decodes the first JSON value in s, ignoring whatever follows it.
func decodeAt[T any](s string) (T, error) {
	var result T

	var raw json.RawMessage
	if err := json.NewDecoder(strings.NewReader(s)).Decode(&raw); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, truncate(s, 500))
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w\nData: %s", err, truncate(string(raw), 500))
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
