package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/julianstephens/moodverse/internal/constants"
	"github.com/julianstephens/moodverse/internal/logger"
)

// Fetcher downloads theme pages with a browser-like request.
type Fetcher struct {
	client  *http.Client
	maxBody int64
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: constants.ScrapeTimeout},
		maxBody: constants.MaxScrapeBodySize,
	}
}

// Fetch returns the raw page body. Non-200 responses and oversized pages are errors.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", constants.ScrapeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxBody {
		return nil, fmt.Errorf("content-length %d exceeds limit of %d bytes", resp.ContentLength, f.maxBody)
	}

	// read one byte past the limit to tell a full page from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("response body exceeded maximum size limit of %d bytes", f.maxBody)
	}

	logger.Debug("Fetched page", "url", pageURL, "bytes", len(body))
	return body, nil
}
