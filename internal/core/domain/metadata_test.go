package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `{
  "edition": 7,
  "name": "Soul #7",
  "description": "Soul Genesis",
  "image": "https://cdn.example.com/art/2/7.jpg",
  "dna": "abc123",
  "stage": 2,
  "frozen": %s,
  "seller_fee_basis_points": 500,
  "fee_recipient": "fee-wallet",
  "attributes": [{"trait_type": "Eyes", "value": "Gold"}]
}`

func TestMetadataRecord_UnmarshalJSON(t *testing.T) {
	var m MetadataRecord
	require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(sampleRecord, "true")), &m))

	assert.Equal(t, MetadataRecord{
		Edition:              7,
		Name:                 "Soul #7",
		Description:          "Soul Genesis",
		Image:                "https://cdn.example.com/art/2/7.jpg",
		DNA:                  "abc123",
		Stage:                2,
		Frozen:               true,
		SellerFeeBasisPoints: 500,
		FeeRecipient:         "fee-wallet",
		Attributes:           []Attribute{{TraitType: "Eyes", Value: "Gold"}},
	}, m)
}

func TestMetadataRecord_UnmarshalJSON_LegacyFrozen(t *testing.T) {
	tests := map[string]bool{
		`"true"`:  true,
		`"false"`: false,
		`false`:   false,
		`null`:    false,
	}
	for raw, want := range tests {
		var m MetadataRecord
		require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(sampleRecord, raw)), &m), raw)
		assert.Equal(t, want, m.Frozen, raw)
		assert.Equal(t, 7, m.Edition)
	}
}

func TestMetadataRecord_UnmarshalJSON_InvalidFrozen(t *testing.T) {
	var m MetadataRecord
	err := json.Unmarshal([]byte(fmt.Sprintf(sampleRecord, `"yes"`)), &m)
	assert.Error(t, err)
}

func TestMetadataRecord_MarshalWritesBoolean(t *testing.T) {
	var m MetadataRecord
	require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(sampleRecord, `"true"`)), &m))

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"frozen":true`)
	assert.Contains(t, string(out), `"seller_fee_basis_points":500`)
	assert.Contains(t, string(out), `"trait_type":"Eyes"`)
}

func TestParseOpacity(t *testing.T) {
	f, err := ParseOpacity(35)
	require.NoError(t, err)
	assert.Equal(t, Opacity35{}, f)
	assert.Equal(t, "faded35/4/7.jpg", FadedPath(f, 7))

	f, err = ParseOpacity(45)
	require.NoError(t, err)
	assert.Equal(t, Opacity45{}, f)
	assert.Equal(t, "faded45/4/12.jpg", FadedPath(f, 12))

	f, err = ParseOpacity(100)
	require.NoError(t, err)
	assert.Equal(t, Blackout{}, f)

	_, err = ParseOpacity(40)
	assert.ErrorIs(t, err, ErrInvalidOpacity)
}

func TestRestoredPath(t *testing.T) {
	assert.Equal(t, "images/3/7.jpg", RestoredPath(3, 7))
}

func TestRecordError(t *testing.T) {
	err := &RecordError{Operation: "change stage", Edition: 7, Err: ErrMalformedPath}
	assert.ErrorIs(t, err, ErrMalformedPath)
	assert.Equal(t, "change stage: edition 7: "+ErrMalformedPath.Error(), err.Error())
}
