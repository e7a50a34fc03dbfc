package event

import "encoding/json"

// DecodePayload converts an event payload into the concrete type T. Payloads
// published in-process are already the struct and only need a type assertion;
// payloads that crossed a serialization boundary arrive as generic maps and
// take the JSON round-trip instead.
func DecodePayload[T any](payload interface{}) (T, error) {
	if typed, ok := payload.(T); ok {
		return typed, nil
	}

	var decoded T
	raw, err := json.Marshal(payload)
	if err != nil {
		return decoded, err
	}
	return decoded, json.Unmarshal(raw, &decoded)
}
