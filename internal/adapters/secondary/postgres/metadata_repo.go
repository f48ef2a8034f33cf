package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"sg-cli/internal/core/domain"
	ports "sg-cli/internal/core/ports/output"
)

// Records live in metadata(edition integer primary key, data jsonb); the
// collection stage lives in the single-row current_stage(stage smallint).
type metadataRepo struct {
	pool *pgxpool.Pool
}

func NewMetadataRepository(pool *pgxpool.Pool) ports.MetadataRepository {
	return &metadataRepo{pool: pool}
}

// frozenClause compares the text form of data->'frozen', which is the same
// for a JSON boolean and for the legacy "true"/"false" strings.
func frozenClause(f ports.FrozenFilter) string {
	switch f {
	case ports.FrozenOnly:
		return "WHERE data->>'frozen' = 'true'"
	case ports.UnfrozenOnly:
		return "WHERE COALESCE(data->>'frozen', 'false') = 'false'"
	default:
		return ""
	}
}

func (r *metadataRepo) List(ctx context.Context, filter ports.MetadataFilter) ([]*domain.MetadataRecord, error) {
	query := "SELECT edition, data FROM metadata " + frozenClause(filter.Frozen)
	if filter.OrderByEdition {
		query += " ORDER BY edition"
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list metadata: %w", domain.ErrStore, err)
	}
	defer rows.Close()

	records := []*domain.MetadataRecord{}
	for rows.Next() {
		m, err := scanMetadata(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan metadata row: %w", domain.ErrStore, err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate metadata rows: %w", domain.ErrStore, err)
	}

	return records, nil
}

func (r *metadataRepo) Create(ctx context.Context, record *domain.MetadataRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO metadata (edition, data) VALUES ($1, $2)`, int32(record.Edition), data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrEditionConflict
		}
		return fmt.Errorf("%w: create metadata: %w", domain.ErrStore, err)
	}
	return nil
}

func (r *metadataRepo) Update(ctx context.Context, record *domain.MetadataRecord) (*domain.MetadataRecord, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	row := r.pool.QueryRow(ctx,
		`UPDATE metadata SET data = $1 WHERE edition = $2 RETURNING edition, data`,
		data, int32(record.Edition),
	)
	updated, err := scanMetadata(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("%w: update metadata: %w", domain.ErrStore, err)
	}
	return updated, nil
}

func (r *metadataRepo) GetCurrentStage(ctx context.Context) (uint8, error) {
	var stage int16
	err := r.pool.QueryRow(ctx, `SELECT stage FROM current_stage LIMIT 1`).Scan(&stage)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrCurrentStageMissing
		}
		return 0, fmt.Errorf("%w: get current stage: %w", domain.ErrStore, err)
	}
	return uint8(stage), nil
}

func (r *metadataRepo) SetCurrentStage(ctx context.Context, stage uint8) (uint8, error) {
	var updated int16
	err := r.pool.QueryRow(ctx, `UPDATE current_stage SET stage = $1 RETURNING stage`, int16(stage)).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrCurrentStageMissing
		}
		return 0, fmt.Errorf("%w: set current stage: %w", domain.ErrStore, err)
	}
	return uint8(updated), nil
}

// scanMetadata decodes an (edition, data) row. The column edition wins over
// whatever the document carries.
func scanMetadata(row pgx.Row) (*domain.MetadataRecord, error) {
	var (
		edition int32
		data    []byte
	)
	if err := row.Scan(&edition, &data); err != nil {
		return nil, err
	}

	m := &domain.MetadataRecord{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("unmarshal metadata %d: %w", edition, err)
	}
	m.Edition = int(edition)
	return m, nil
}
