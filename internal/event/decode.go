package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// DecodePayload returns an event payload as T. Events published in-process
// carry T (or *T) directly, events read back from the journal hold a decoded
// JSON object and are converted by re-encoding it.
func DecodePayload[T any](payload interface{}) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf("nil %T payload", v)
		}
		return *v, nil
	case nil:
		return out, errors.New("event has no payload")
	case json.RawMessage:
		return out, json.Unmarshal(v, &out)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf("re-encode %T payload: %w", payload, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode payload as %T: %w", out, err)
	}
	return out, nil
}
