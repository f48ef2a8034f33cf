// Package pathcodec reads and rewrites the stage encoded in image URLs.
//
// Image URLs follow the bucket convention {scheme}://{host}/{folder}/{stage}/{file}.
// Every function is pure and returns a new URL string.
package pathcodec

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"sg-cli/internal/core/domain"
)

// ImagePath holds the three positional path segments of an image URL, still
// percent-encoded. Stage is kept as text: only its position is meaningful.
type ImagePath struct {
	Folder string
	Stage  string
	File   string
}

func (p ImagePath) String() string {
	return fmt.Sprintf("%s/%s/%s", p.Folder, p.Stage, p.File)
}

func parse(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidURL, raw)
	}
	return u, nil
}

// Validate reports whether raw is an absolute URL the codec can rewrite.
func Validate(raw string) error {
	_, err := parse(raw)
	return err
}

// decode splits the escaped path so that %2F inside a segment stays put.
func decode(u *url.URL) (ImagePath, error) {
	escaped := u.EscapedPath()
	segments := strings.Split(strings.TrimPrefix(escaped, "/"), "/")
	if len(segments) < 3 || segments[0] == "" || segments[2] == "" {
		return ImagePath{}, fmt.Errorf("%w: %q", domain.ErrMalformedPath, escaped)
	}
	return ImagePath{Folder: segments[0], Stage: segments[1], File: segments[2]}, nil
}

// Decode splits the image URL path into folder, stage and file. Segments
// after the third are ignored.
func Decode(raw string) (ImagePath, error) {
	u, err := parse(raw)
	if err != nil {
		return ImagePath{}, err
	}
	return decode(u)
}

// EncodeStage rewrites the path to {folder}/{stage}/{file}.
func EncodeStage(raw string, stage uint8) (string, error) {
	u, err := parse(raw)
	if err != nil {
		return "", err
	}
	p, err := decode(u)
	if err != nil {
		return "", err
	}
	p.Stage = strconv.Itoa(int(stage))
	if err := setPath(u, p.String()); err != nil {
		return "", err
	}
	return u.String(), nil
}

// EncodeFixedPath replaces the whole path of the URL. path is taken as
// already escaped.
func EncodeFixedPath(raw, path string) (string, error) {
	u, err := parse(raw)
	if err != nil {
		return "", err
	}
	if err := setPath(u, path); err != nil {
		return "", err
	}
	return u.String(), nil
}

// ReplaceHost swaps the hostname, keeping port, path and query.
func ReplaceHost(raw, host string) (string, error) {
	u, err := parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrHostRewrite, err)
	}
	if host == "" || strings.ContainsAny(host, "/?#@: \t") {
		return "", fmt.Errorf("%w: invalid host %q", domain.ErrHostRewrite, host)
	}
	if port := u.Port(); port != "" {
		u.Host = net.JoinHostPort(host, port)
	} else {
		u.Host = host
	}
	return u.String(), nil
}

func setPath(u *url.URL, escaped string) error {
	escaped = "/" + strings.TrimPrefix(escaped, "/")
	path, err := url.PathUnescape(escaped)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrMalformedPath, err)
	}
	u.Path, u.RawPath = path, escaped
	return nil
}
