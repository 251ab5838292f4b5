package poetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/moodverse/internal/constants"
	"github.com/julianstephens/moodverse/internal/logger"
	"github.com/julianstephens/moodverse/internal/models"
)

var errNoPoem = errors.New("response contained no poem")

// Client fetches random poems from a PoetryDB-compatible service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	timeout     time.Duration
	maxLines    int
}

// New creates a Client targeting baseURL with the fixed retry policy.
func New(baseURL string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{},
		maxAttempts: constants.MaxFetchAttempts,
		timeout:     constants.FetchTimeout,
		maxLines:    constants.MaxPoemLineCount,
	}
}

// randomPoem mirrors one element of the GET /random response.
type randomPoem struct {
	Title     *string   `json:"title"`
	Author    *string   `json:"author"`
	LineCount lineCount `json:"linecount"`
	Lines     []string  `json:"lines"`
}

// lineCount accepts both "12" and 12. Counts too large for an int saturate at math.MaxInt.
type lineCount int

func (l *lineCount) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*l = 0
		return nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return fmt.Errorf("linecount %q is negative", s)
		}
		*l = lineCount(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	switch {
	case err != nil && !errors.Is(err, strconv.ErrRange):
		return fmt.Errorf("linecount %q is not a number", s)
	case math.IsNaN(f):
		return fmt.Errorf("linecount %q is not a number", s)
	case f < 0:
		return fmt.Errorf("linecount %q is negative", s)
	case f >= float64(math.MaxInt):
		*l = lineCount(math.MaxInt)
	default:
		*l = lineCount(int(f))
	}
	return nil
}

func (p randomPoem) toModel() models.ExternalPoem {
	out := models.ExternalPoem{
		Title:     constants.DefaultPoemTitle,
		Author:    constants.DefaultPoemAuthor,
		LineCount: int(p.LineCount),
		Lines:     p.Lines,
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Author != nil {
		out.Author = *p.Author
	}
	if out.Lines == nil {
		out.Lines = []string{}
	}
	return out
}

// FetchSuitablePoem asks for random poems until one is shorter than the line
// limit or the attempt budget runs out. Failed attempts are logged, never returned.
func (c *Client) FetchSuitablePoem(ctx context.Context) (models.ExternalPoem, bool) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			logger.Warn("Poem fetch cancelled", "attempt", attempt, "error", ctx.Err())
			return models.ExternalPoem{}, false
		}

		poem, err := c.fetchRandom(ctx)
		if err != nil {
			logger.Debug("Poem fetch attempt failed", "attempt", attempt, "error", err)
			continue
		}
		if poem.LineCount >= c.maxLines {
			logger.Debug("Skipping long poem", "attempt", attempt, "title", poem.Title, "linecount", poem.LineCount)
			continue
		}
		return poem, true
	}

	logger.Warn("No suitable poem after retries", "attempts", c.maxAttempts)
	return models.ExternalPoem{}, false
}

// IsReachable reports whether a single random-poem request succeeds.
func (c *Client) IsReachable(ctx context.Context) bool {
	_, err := c.fetchRandom(ctx)
	return err == nil
}

func (c *Client) fetchRandom(ctx context.Context) (models.ExternalPoem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+constants.PoetryRandomPath, nil)
	if err != nil {
		return models.ExternalPoem{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ExternalPoem{}, fmt.Errorf("requesting random poem: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ExternalPoem{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var poems []randomPoem
	if err := json.NewDecoder(resp.Body).Decode(&poems); err != nil {
		return models.ExternalPoem{}, fmt.Errorf("decoding response: %w", err)
	}
	if len(poems) == 0 {
		return models.ExternalPoem{}, errNoPoem
	}
	return poems[0].toModel(), nil
}
