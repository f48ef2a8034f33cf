package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"sg-cli/internal/core/domain"
	"sg-cli/internal/core/pathcodec"
	ports "sg-cli/internal/core/ports/output"
)

// requiredFields lists the keys every feed entry must carry.
var requiredFields = []string{
	"edition", "name", "description", "image", "dna", "stage",
	"frozen", "seller_fee_basis_points", "fee_recipient", "attributes",
}

type Client struct {
	httpClient *http.Client
}

// NewClient returns a MetadataFeed that reads http(s) endpoints with the given
// timeout and everything else from the local file system.
func NewClient(timeout time.Duration) ports.MetadataFeed {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Fetch(ctx context.Context, source string) ([]*domain.MetadataRecord, error) {
	body, err := c.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := decodeRecords(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrImportParse, source, err)
	}

	log.WithFields(log.Fields{
		"source":  source,
		"records": len(records),
	}).Debug("fetched metadata feed")

	return records, nil
}

// decodeRecords reads exactly one JSON array of complete metadata entries.
func decodeRecords(r io.Reader) ([]*domain.MetadataRecord, error) {
	dec := json.NewDecoder(r)

	var entries []json.RawMessage
	if err := dec.Decode(&entries); err != nil {
		return nil, err
	}
	if err := dec.Decode(&json.RawMessage{}); err != io.EOF {
		return nil, errors.New("unexpected data after the metadata array")
	}

	records := make([]*domain.MetadataRecord, 0, len(entries))
	for i, raw := range entries {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("entry %d is null", i)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		for _, name := range requiredFields {
			if _, ok := fields[name]; !ok {
				return nil, fmt.Errorf("entry %d: missing field %q", i, name)
			}
		}

		var record domain.MetadataRecord
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err := pathcodec.Validate(record.Image); err != nil {
			return nil, fmt.Errorf("entry %d: image: %w", i, err)
		}
		records = append(records, &record)
	}
	return records, nil
}

func (c *Client) open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return c.get(ctx, source)
	case strings.HasPrefix(source, "file://"):
		u, err := url.Parse(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
		}
		// file://dump.json parses the relative name into Host.
		return openFile(u.Host + u.Path)
	default:
		return openFile(source)
	}
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", domain.ErrFeedUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	log.WithFields(log.Fields{
		"method": req.Method,
		"url":    endpoint,
	}).Debug("requesting metadata feed")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", domain.ErrFeedUnavailable, endpoint, resp.Status)
	}
	return resp.Body, nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}
	return f, nil
}
