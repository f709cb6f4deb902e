package util

import "encoding/json"

// Multiple-choice options are persisted as one JSON-encoded string array.
// Every read and write path goes through these two functions; no call
// site encodes or decodes the column itself.

// EncodeOptions serializes an option list for storage. A nil or empty
// list encodes to the empty string so non-choice questions keep a NULL-ish
// column.
func EncodeOptions(options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(options)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeOptions deserializes a stored options column. Absent, empty, or
// malformed values decode to an empty list, never an error: grade review
// must render even when a snapshot predates stricter validation.
func DecodeOptions(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var options []string
	if err := json.Unmarshal([]byte(raw), &options); err != nil {
		return []string{}
	}
	return options
}
