package ports

import (
	"context"

	"sg-cli/internal/core/domain"
)

// FrozenFilter selects records by their frozen flag.
type FrozenFilter string

const (
	FrozenAny    FrozenFilter = ""
	FrozenOnly   FrozenFilter = "frozen"
	UnfrozenOnly FrozenFilter = "unfrozen"
)

type MetadataFilter struct {
	Frozen         FrozenFilter
	OrderByEdition bool
}

// MetadataRepository is the record store gateway. Every call touches at most
// one record; there is no multi-record transaction.
type MetadataRepository interface {
	List(ctx context.Context, filter MetadataFilter) ([]*domain.MetadataRecord, error)
	Create(ctx context.Context, record *domain.MetadataRecord) error
	// Update writes the record back by edition and returns what was stored.
	Update(ctx context.Context, record *domain.MetadataRecord) (*domain.MetadataRecord, error)
	GetCurrentStage(ctx context.Context) (uint8, error)
	SetCurrentStage(ctx context.Context, stage uint8) (uint8, error)
}
