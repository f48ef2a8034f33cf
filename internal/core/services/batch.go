package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"sg-cli/internal/core/domain"
	ports "sg-cli/internal/core/ports/output"
)

// BatchReport summarises one pass over the collection. Records committed
// before a failure stay written; FailedEdition names the record the pass
// stopped at.
type BatchReport struct {
	Operation     string
	Selected      int
	Committed     int
	FailedEdition *int
}

// transformFunc mutates a record in memory before it is written back.
type transformFunc func(record *domain.MetadataRecord) error

// runBatch selects records, transforms and persists them one at a time and
// stops at the first error.
func runBatch(ctx context.Context, repo ports.MetadataRepository, op string, filter ports.MetadataFilter, transform transformFunc) (*BatchReport, error) {
	report := &BatchReport{Operation: op}

	records, err := repo.List(ctx, filter)
	if err != nil {
		return report, fmt.Errorf("%s: select records: %w", op, err)
	}
	report.Selected = len(records)

	for _, record := range records {
		if err := transform(record); err != nil {
			return report.fail(op, record.Edition, err)
		}

		updated, err := repo.Update(ctx, record)
		if err != nil {
			return report.fail(op, record.Edition, err)
		}
		report.Committed++

		log.WithFields(log.Fields{
			"operation": op,
			"edition":   updated.Edition,
			"stage":     updated.Stage,
			"image":     updated.Image,
		}).Debugf("updated edition %d", updated.Edition)
	}

	return report, nil
}

func (r *BatchReport) fail(op string, edition int, err error) (*BatchReport, error) {
	r.FailedEdition = &edition
	return r, &domain.RecordError{Operation: op, Edition: edition, Err: err}
}
