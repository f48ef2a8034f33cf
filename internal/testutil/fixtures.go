package testutil

import (
	"fmt"

	"sg-cli/internal/core/domain"
)

// NewRecord builds a metadata record with an image under art/{stage}/{edition}.jpg.
func NewRecord(edition int, stage uint8, frozen bool) *domain.MetadataRecord {
	return &domain.MetadataRecord{
		Edition:              edition,
		Name:                 fmt.Sprintf("Soul #%d", edition),
		Description:          "Soul Genesis",
		Image:                fmt.Sprintf("https://cdn.example.com/art/%d/%d.jpg", stage, edition),
		DNA:                  fmt.Sprintf("dna-%d", edition),
		Stage:                stage,
		Frozen:               frozen,
		SellerFeeBasisPoints: 500,
		FeeRecipient:         "fee-wallet",
		Attributes: []domain.Attribute{
			{TraitType: "Background", Value: "Blue"},
			{TraitType: "Eyes", Value: "Gold"},
		},
	}
}
