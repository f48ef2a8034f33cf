package testutil

import (
	"context"
	"slices"
	"sort"

	"sg-cli/internal/core/domain"
	ports "sg-cli/internal/core/ports/output"
)

// MemoryMetadataRepo is an in-memory MetadataRepository. List returns
// records in insertion order unless ordering by edition is requested.
// Records are copied in and out so callers never share state with the store.
type MemoryMetadataRepo struct {
	records map[int]*domain.MetadataRecord
	order   []int
	stage   *uint8

	// Updates counts successful Update calls.
	Updates int
	// FailUpdateAt makes Update fail with FailErr for that edition.
	FailUpdateAt *int
	FailErr      error
}

func NewMemoryMetadataRepo(records ...*domain.MetadataRecord) *MemoryMetadataRepo {
	r := &MemoryMetadataRepo{records: map[int]*domain.MetadataRecord{}}
	for _, rec := range records {
		_ = r.Create(context.Background(), rec)
	}
	return r
}

// WithCurrentStage seeds the current stage row.
func (r *MemoryMetadataRepo) WithCurrentStage(stage uint8) *MemoryMetadataRepo {
	r.stage = &stage
	return r
}

func (r *MemoryMetadataRepo) List(_ context.Context, filter ports.MetadataFilter) ([]*domain.MetadataRecord, error) {
	editions := slices.Clone(r.order)
	if filter.OrderByEdition {
		sort.Ints(editions)
	}

	out := []*domain.MetadataRecord{}
	for _, e := range editions {
		rec := r.records[e]
		switch filter.Frozen {
		case ports.FrozenOnly:
			if !rec.Frozen {
				continue
			}
		case ports.UnfrozenOnly:
			if rec.Frozen {
				continue
			}
		}
		out = append(out, clone(rec))
	}
	return out, nil
}

func (r *MemoryMetadataRepo) Create(_ context.Context, record *domain.MetadataRecord) error {
	if _, ok := r.records[record.Edition]; ok {
		return domain.ErrEditionConflict
	}
	r.records[record.Edition] = clone(record)
	r.order = append(r.order, record.Edition)
	return nil
}

func (r *MemoryMetadataRepo) Update(_ context.Context, record *domain.MetadataRecord) (*domain.MetadataRecord, error) {
	if r.FailUpdateAt != nil && *r.FailUpdateAt == record.Edition {
		return nil, r.FailErr
	}
	if _, ok := r.records[record.Edition]; !ok {
		return nil, domain.ErrRecordNotFound
	}
	r.records[record.Edition] = clone(record)
	r.Updates++
	return clone(record), nil
}

func (r *MemoryMetadataRepo) GetCurrentStage(_ context.Context) (uint8, error) {
	if r.stage == nil {
		return 0, domain.ErrCurrentStageMissing
	}
	return *r.stage, nil
}

func (r *MemoryMetadataRepo) SetCurrentStage(_ context.Context, stage uint8) (uint8, error) {
	if r.stage == nil {
		return 0, domain.ErrCurrentStageMissing
	}
	*r.stage = stage
	return stage, nil
}

// Get returns a copy of the stored record, or nil.
func (r *MemoryMetadataRepo) Get(edition int) *domain.MetadataRecord {
	rec, ok := r.records[edition]
	if !ok {
		return nil
	}
	return clone(rec)
}

func clone(rec *domain.MetadataRecord) *domain.MetadataRecord {
	c := *rec
	c.Attributes = slices.Clone(rec.Attributes)
	return &c
}
