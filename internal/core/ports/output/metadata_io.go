package ports

import (
	"context"

	"sg-cli/internal/core/domain"
)

// MetadataFeed loads the external JSON array of records used for bulk import.
type MetadataFeed interface {
	// Fetch reads and parses the records published at source, which is either
	// an http(s) URL or a local file path.
	Fetch(ctx context.Context, source string) ([]*domain.MetadataRecord, error)
}

// SnapshotWriter persists a read-only export of the collection.
type SnapshotWriter interface {
	// Write stores the records and returns the location written to.
	Write(ctx context.Context, records []*domain.MetadataRecord) (string, error)
}
