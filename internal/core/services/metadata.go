package services

import (
	"context"
	"fmt"
	"iter"
	"strings"

	log "github.com/sirupsen/logrus"

	"sg-cli/internal/core/domain"
	"sg-cli/internal/core/pathcodec"
	ports "sg-cli/internal/core/ports/output"
)

const (
	OpChangeStage  = "change stage"
	OpChangeHost   = "change host"
	OpChangeFaded  = "change metadata faded"
	OpRestore      = "restore images"
	OpShowFrozen   = "show frozen"
	OpDumpMetadata = "dump metadata"
	OpInitFrom     = "init from"
)

type MetadataService struct {
	repo     ports.MetadataRepository
	feed     ports.MetadataFeed
	snapshot ports.SnapshotWriter
}

func NewMetadataService(repo ports.MetadataRepository, feed ports.MetadataFeed, snapshot ports.SnapshotWriter) *MetadataService {
	return &MetadataService{repo: repo, feed: feed, snapshot: snapshot}
}

// ChangeStage moves the collection to stage and rewrites every unfrozen
// record's image to the matching stage folder.
func (s *MetadataService) ChangeStage(ctx context.Context, stage uint8) (*BatchReport, error) {
	current, err := s.repo.SetCurrentStage(ctx, stage)
	if err != nil {
		return &BatchReport{Operation: OpChangeStage}, fmt.Errorf("%s: set current stage: %w", OpChangeStage, err)
	}
	log.WithField("stage", current).Debugf("updated current stage to %d", current)

	return runBatch(ctx, s.repo, OpChangeStage, ports.MetadataFilter{Frozen: ports.UnfrozenOnly},
		func(record *domain.MetadataRecord) error {
			image, err := pathcodec.EncodeStage(record.Image, stage)
			if err != nil {
				return err
			}
			record.Image = image
			record.Stage = stage
			return nil
		})
}

// ChangeHost points every image, frozen ones included, at a new host.
func (s *MetadataService) ChangeHost(ctx context.Context, host string) (*BatchReport, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return &BatchReport{Operation: OpChangeHost}, domain.ErrInvalidHost
	}

	return runBatch(ctx, s.repo, OpChangeHost, ports.MetadataFilter{},
		func(record *domain.MetadataRecord) error {
			image, err := pathcodec.ReplaceHost(record.Image, host)
			if err != nil {
				return err
			}
			record.Image = image
			return nil
		})
}

// ChangeMetadataFaded swaps unfrozen images for their faded variant. The
// opacity is validated before the store is touched.
func (s *MetadataService) ChangeMetadataFaded(ctx context.Context, opacity int) (*BatchReport, error) {
	fade, err := domain.ParseOpacity(opacity)
	if err != nil {
		return &BatchReport{Operation: OpChangeFaded}, err
	}

	return runBatch(ctx, s.repo, OpChangeFaded, ports.MetadataFilter{Frozen: ports.UnfrozenOnly},
		func(record *domain.MetadataRecord) error {
			image, err := fadedImage(fade, record)
			if err != nil {
				return err
			}
			record.Image = image
			return nil
		})
}

func fadedImage(fade domain.Fade, record *domain.MetadataRecord) (string, error) {
	switch f := fade.(type) {
	case domain.Blackout:
		return domain.BlackoutImage, nil
	case domain.Opacity35, domain.Opacity45:
		return pathcodec.EncodeFixedPath(record.Image, domain.FadedPath(f, record.Edition))
	default:
		return "", domain.ErrInvalidOpacity
	}
}

// RestoreImages resets images to images/{stage}/{edition}.jpg. Frozen records
// are only restored when force is set.
func (s *MetadataService) RestoreImages(ctx context.Context, force bool) (*BatchReport, error) {
	filter := ports.MetadataFilter{Frozen: ports.UnfrozenOnly}
	if force {
		filter.Frozen = ports.FrozenAny
	}

	return runBatch(ctx, s.repo, OpRestore, filter,
		func(record *domain.MetadataRecord) error {
			image, err := pathcodec.EncodeFixedPath(record.Image, domain.RestoredPath(record.Stage, record.Edition))
			if err != nil {
				return err
			}
			record.Image = image
			return nil
		})
}

// ShowFrozen returns a single-use report of frozen images. The store is
// queried when iteration starts; iterating a second time yields
// ErrReportConsumed.
func (s *MetadataService) ShowFrozen(ctx context.Context) iter.Seq2[domain.FrozenImage, error] {
	consumed := false
	return func(yield func(domain.FrozenImage, error) bool) {
		if consumed {
			yield(domain.FrozenImage{}, domain.ErrReportConsumed)
			return
		}
		consumed = true

		records, err := s.repo.List(ctx, ports.MetadataFilter{Frozen: ports.FrozenOnly})
		if err != nil {
			yield(domain.FrozenImage{}, fmt.Errorf("%s: %w", OpShowFrozen, err))
			return
		}
		for _, r := range records {
			if !yield(domain.FrozenImage{Edition: r.Edition, Image: r.Image, Stage: r.Stage}, nil) {
				return
			}
		}
	}
}

// DumpMetadata exports every record ordered by edition and returns the
// written location.
func (s *MetadataService) DumpMetadata(ctx context.Context) (string, error) {
	records, err := s.repo.List(ctx, ports.MetadataFilter{OrderByEdition: true})
	if err != nil {
		return "", fmt.Errorf("%s: %w", OpDumpMetadata, err)
	}

	path, err := s.snapshot.Write(ctx, records)
	if err != nil {
		return "", fmt.Errorf("%s: %w", OpDumpMetadata, err)
	}

	log.WithFields(log.Fields{"records": len(records), "path": path}).Info("metadata dumped")
	return path, nil
}

// InitFrom imports every record published at source. The first failed insert
// stops the import.
func (s *MetadataService) InitFrom(ctx context.Context, source string) (*BatchReport, error) {
	report := &BatchReport{Operation: OpInitFrom}
	if strings.TrimSpace(source) == "" {
		return report, domain.ErrInvalidSource
	}

	records, err := s.feed.Fetch(ctx, source)
	if err != nil {
		return report, fmt.Errorf("%s: %w", OpInitFrom, err)
	}
	report.Selected = len(records)

	for _, record := range records {
		log.WithField("edition", record.Edition).Infof("inserting metadata: %d", record.Edition)
		if err := s.repo.Create(ctx, record); err != nil {
			return report.fail(OpInitFrom, record.Edition, err)
		}
		report.Committed++
	}

	return report, nil
}

func (s *MetadataService) CurrentStage(ctx context.Context) (uint8, error) {
	return s.repo.GetCurrentStage(ctx)
}
