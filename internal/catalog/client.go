package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// DefaultURL is the public catalog endpoint
const DefaultURL = "https://api.rilaksekai.com/api/songs"

// maxBody bounds how much of a response is read
const maxBody = 32 << 20

// Source produces a full catalog
type Source interface {
	Load(ctx context.Context) ([]model.Song, Report, error)
}

// Client fetches the catalog over HTTP. There is exactly one attempt per
// Load; failures are terminal for the caller.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a client for url with a request timeout
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// Load performs one GET and decodes the body
func (c *Client) Load(ctx context.Context) ([]model.Song, Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, Report{}, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, Report{}, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	songs, rep, err := Decode(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, rep, err
	}
	logging.Info().
		Str("url", c.url).
		Int("songs", len(songs)).
		Int("skipped", rep.Skipped).
		Dur("took", time.Since(start)).
		Msg("catalog fetched")
	return songs, rep, nil
}

// File loads the catalog from a local path
type File struct {
	Path string
}

// Load reads and decodes the file
func (f File) Load(_ context.Context) ([]model.Song, Report, error) {
	return LoadFile(f.Path)
}
