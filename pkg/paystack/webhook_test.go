package paystack_test

import (
	"testing"

	"github.com/Behyna/hypeconnect/pkg/paystack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	t.Run("parses charge success with object metadata", func(t *testing.T) {
		body := []byte(`{
			"event": "charge.success",
			"data": {
				"reference": "hc_123",
				"amount": 2500000,
				"status": "success",
				"gateway_response": "Approved",
				"metadata": {"bookingId": "B1", "eventId": "E1", "custom_fields": [{"a": 1}]}
			}
		}`)

		event, err := paystack.ParseEvent(body)
		require.NoError(t, err)

		assert.Equal(t, "charge.success", event.Event)
		assert.Equal(t, "hc_123", event.Data.Reference)
		assert.Equal(t, int64(2500000), event.Data.Amount)
		assert.Equal(t, "Approved", event.Data.GatewayResponse)

		metadata := event.Data.Metadata()
		assert.Equal(t, "B1", metadata["bookingId"])
		assert.Equal(t, "E1", metadata["eventId"])
		assert.Equal(t, `[{"a": 1}]`, metadata["custom_fields"])
	})

	t.Run("tolerates empty string metadata", func(t *testing.T) {
		event, err := paystack.ParseEvent([]byte(`{"event":"charge.success","data":{"reference":"r","metadata":""}}`))
		require.NoError(t, err)
		assert.Empty(t, event.Data.Metadata())
	})

	t.Run("tolerates missing metadata", func(t *testing.T) {
		event, err := paystack.ParseEvent([]byte(`{"event":"transfer.success","data":{}}`))
		require.NoError(t, err)
		assert.Empty(t, event.Data.Metadata())
	})

	t.Run("rejects body without event", func(t *testing.T) {
		_, err := paystack.ParseEvent([]byte(`{"data":{}}`))
		assert.Error(t, err)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		_, err := paystack.ParseEvent([]byte(`{"event":`))
		assert.ErrorContains(t, err, "decoding error")
	})
}
