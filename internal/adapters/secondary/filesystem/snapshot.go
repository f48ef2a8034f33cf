package filesystem

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sg-cli/internal/core/domain"
	ports "sg-cli/internal/core/ports/output"
)

// TimestampLayout names export files, e.g. 2026-10-14_09-30-00.json.
const TimestampLayout = "2006-01-02_15-04-05"

type snapshotWriter struct {
	dir string
	now func() time.Time
}

// NewSnapshotWriter writes exports into dir, creating it on demand. A nil
// clock defaults to time.Now.
func NewSnapshotWriter(dir string, now func() time.Time) ports.SnapshotWriter {
	if now == nil {
		now = time.Now
	}
	return &snapshotWriter{dir: dir, now: now}
}

func (w *snapshotWriter) Write(_ context.Context, records []*domain.MetadataRecord) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create export dir: %w", domain.ErrFileSystem, err)
	}

	if records == nil {
		records = []*domain.MetadataRecord{}
	}
	// Image URLs keep their & and query strings unescaped.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}

	path := filepath.Join(w.dir, w.now().UTC().Format(TimestampLayout)+".json")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: write export: %w", domain.ErrFileSystem, err)
	}
	return path, nil
}
