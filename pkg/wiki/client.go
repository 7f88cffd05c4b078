package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
)

// Client looks up reference summaries for given names. The lookup is purely
// advisory: ambiguity, misses and failures all come back as "no summary" and
// must never block description generation.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	cache      *cache.Cache
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: cache.New(24*time.Hour, 1*time.Hour),
	}
}

type summaryResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Extract string `json:"extract"`
}

// Summary returns a short factual summary for the name, or ok=false when the
// page is missing, ambiguous or the lookup failed.
func (c *Client) Summary(ctx context.Context, name string) (string, bool) {
	if name == "" {
		return "", false
	}

	if cached, found := c.cache.Get(name); found {
		summary := cached.(string)
		return summary, summary != ""
	}

	summary := c.fetch(ctx, name)
	c.cache.Set(name, summary, cache.DefaultExpiration)
	return summary, summary != ""
}

func (c *Client) fetch(ctx context.Context, name string) string {
	endpoint := fmt.Sprintf("%s/page/summary/%s", c.BaseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}

	var summary summaryResponse
	if err := json.Unmarshal(body, &summary); err != nil {
		return ""
	}
	// Disambiguation pages list many unrelated meanings; worse than nothing
	// as prompt context.
	if summary.Type == "disambiguation" {
		return ""
	}
	return summary.Extract
}
