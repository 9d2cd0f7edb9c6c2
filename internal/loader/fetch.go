package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

// DefaultMaxSpecBytes caps fetched bodies when no limit is configured.
const DefaultMaxSpecBytes int64 = 10 << 20

// Fetcher is the network boundary: a GET returning status and body.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (status int, body []byte, err error)
}

// HTTPFetcher fetches locations over HTTP. When AllowFiles is set,
// file:// URLs and plain paths are read from the local filesystem.
type HTTPFetcher struct {
	Client     *http.Client
	MaxBytes   int64
	AllowFiles bool
}

// NewHTTPFetcher creates a fetcher. A zero timeout never expires.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxSpecBytes
	}

	return &HTTPFetcher{
		Client:   &http.Client{Timeout: timeout},
		MaxBytes: maxBytes,
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) (int, []byte, error) {
	if path, ok := localPath(location); ok && f.AllowFiles {
		return f.readFile(path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml, */*")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.MaxBytes))
		return resp.StatusCode, nil, nil
	}

	body, err := f.readLimited(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}

func (f *HTTPFetcher) readFile(path string) (int, []byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return http.StatusNotFound, nil, nil
		}
		return 0, nil, fmt.Errorf("error reading file: %w", err)
	}
	defer file.Close()

	body, err := f.readLimited(file)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, body, nil
}

func (f *HTTPFetcher) readLimited(r io.Reader) ([]byte, error) {
	limit := f.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxSpecBytes
	}

	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("error reading spec: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", domain.ErrSpecTooLarge, limit)
	}

	return body, nil
}

func localPath(location string) (string, bool) {
	if strings.HasPrefix(location, "file://") {
		return strings.TrimPrefix(location, "file://"), true
	}
	if strings.Contains(location, "://") {
		return "", false
	}
	return location, true
}
