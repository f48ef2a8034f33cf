package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// MetadataRecord is one NFT metadata document. Edition is the primary key.
type MetadataRecord struct {
	Edition              int         `json:"edition"`
	Name                 string      `json:"name"`
	Description          string      `json:"description"`
	Image                string      `json:"image"`
	DNA                  string      `json:"dna"`
	Stage                uint8       `json:"stage"`
	Frozen               bool        `json:"frozen"`
	SellerFeeBasisPoints uint32      `json:"seller_fee_basis_points"`
	FeeRecipient         string      `json:"fee_recipient"`
	Attributes           []Attribute `json:"attributes"`
}

// UnmarshalJSON accepts legacy documents that store frozen as "true"/"false".
func (m *MetadataRecord) UnmarshalJSON(data []byte) error {
	type plain MetadataRecord
	aux := struct {
		*plain
		Frozen json.RawMessage `json:"frozen"`
	}{plain: (*plain)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	frozen, err := parseFrozen(aux.Frozen)
	if err != nil {
		return fmt.Errorf("edition %d: %w", m.Edition, err)
	}
	m.Frozen = frozen
	return nil
}

func parseFrozen(raw json.RawMessage) (bool, error) {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "false", `"false"`:
		return false, nil
	case "true", `"true"`:
		return true, nil
	default:
		return false, fmt.Errorf("invalid frozen value %s", raw)
	}
}

// FrozenImage is the projection listed by the frozen report.
type FrozenImage struct {
	Edition int    `json:"edition"`
	Image   string `json:"image"`
	Stage   uint8  `json:"stage"`
}

// BlackoutImage replaces every unfrozen image when fading to full opacity.
const BlackoutImage = "https://sg-data.fra1.cdn.digitaloceanspaces.com/black.jpg"
