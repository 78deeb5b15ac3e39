// internal/core/domain/envelope.go
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// EnvelopeSchemaVersion is the current persisted cart format. Envelopes with
// any other version are treated the same as corrupt data and replaced by an
// empty cart on load.
const EnvelopeSchemaVersion = 1

// CartEnvelope is the serialized form of a cart written to durable storage.
// The whole snapshot is replaced on every write; there are no partial updates.
type CartEnvelope struct {
	SchemaVersion int        `json:"schema_version"`
	Items         []LineItem `json:"items"`
	SavedAt       time.Time  `json:"saved_at"`
}

// NewCartEnvelope snapshots the cart into its persisted form
func NewCartEnvelope(cart *Cart) CartEnvelope {
	return CartEnvelope{
		SchemaVersion: EnvelopeSchemaVersion,
		Items:         cart.Items(),
		SavedAt:       time.Now().UTC(),
	}
}

// Marshal serializes the envelope to JSON
func (e CartEnvelope) Marshal() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal cart envelope: %w", err)
	}
	return data, nil
}

// UnmarshalCartEnvelope parses a persisted envelope. It returns an error for
// malformed JSON or an unrecognized schema version; callers are expected to
// fall back to an empty cart rather than surface the error.
func UnmarshalCartEnvelope(data []byte) (CartEnvelope, error) {
	var e CartEnvelope
	if err := json.Unmarshal(data, &e); err != nil {
		return CartEnvelope{}, fmt.Errorf("unmarshal cart envelope: %w", err)
	}
	if e.SchemaVersion != EnvelopeSchemaVersion {
		return CartEnvelope{}, fmt.Errorf("unsupported cart envelope schema version %d", e.SchemaVersion)
	}
	return e, nil
}

// Restore rebuilds a cart from the envelope, re-applying cart invariants
func (e CartEnvelope) Restore() *Cart {
	return NewCartFromItems(e.Items)
}
