package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
)

// client is the shared fetch helper embedded by every adapter.
type client struct {
	httpClient *http.Client
	userAgent  string
}

func newClient(httpClient *http.Client, userAgent string) client {
	return client{httpClient: httpClient, userAgent: userAgent}
}

func (c client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (c client) getJSON(ctx context.Context, url string, v any) error {
	data, err := c.get(ctx, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON response: %w", err)
	}

	return nil
}

var legalSuffixes = regexp.MustCompile(`(?i)\b(inc\.?|corp\.?|llc\.?|l\.l\.c\.|ltd\.?|limited|corporation)\b`)

// cleanCompanyName strips common legal suffixes and stray punctuation so a
// company name works in search queries and URL slugs.
func cleanCompanyName(company string) string {
	clean := legalSuffixes.ReplaceAllString(company, "")
	clean = strings.NewReplacer(",", "", ".", "", "'", "", `"`, "").Replace(clean)
	return strings.Join(strings.Fields(clean), " ")
}

// companySlug turns a company name into a lowercase token usable in board
// URLs, joined by the given separator.
func companySlug(company, sep string) string {
	fields := strings.Fields(strings.ToLower(cleanCompanyName(company)))
	return strings.Join(fields, sep)
}

func truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
