package paystack

import (
	"encoding/json"
	"fmt"
)

type Event struct {
	Event string     `json:"event"`
	Data  ChargeData `json:"data"`
}

type ChargeData struct {
	Reference       string          `json:"reference"`
	Amount          int64           `json:"amount"`
	Status          string          `json:"status"`
	Currency        string          `json:"currency"`
	GatewayResponse string          `json:"gateway_response"`
	RawMetadata     json.RawMessage `json:"metadata"`
}

// ParseEvent decodes a webhook body. Paystack sends metadata as an object,
// an empty string or null depending on how the charge was created.
func ParseEvent(body []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return Event{}, fmt.Errorf("decoding error: %w", err)
	}

	if event.Event == "" {
		return Event{}, fmt.Errorf("decoding error: missing event type")
	}

	return event, nil
}

// Metadata flattens the charge metadata object into strings. Nested values
// are kept in their JSON form.
func (d ChargeData) Metadata() map[string]string {
	out := map[string]string{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(d.RawMetadata, &fields); err != nil {
		return out
	}

	for key, raw := range fields {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			out[key] = s
			continue
		}
		out[key] = string(raw)
	}

	return out
}
