package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/cdpscan/cdpscan/app/scan"
)

const googleCSEBaseURL = "https://www.googleapis.com"

// GoogleCSE searches the web through the Custom Search JSON API. Each query
// pairs the company name with one probe phrase so a single fetch covers
// vendor adoption, leadership moves, and funding news.
type GoogleCSE struct {
	client
	baseURL string
	cseID   string
	apiKey  string
	probes  []string
}

func NewGoogleCSE(httpClient *http.Client, userAgent, cseID, apiKey string, probes []string) *GoogleCSE {
	return &GoogleCSE{
		client:  newClient(httpClient, userAgent),
		baseURL: googleCSEBaseURL,
		cseID:   cseID,
		apiKey:  apiKey,
		probes:  probes,
	}
}

func (g *GoogleCSE) Name() string {
	return "google_cse"
}

func (g *GoogleCSE) Type() scan.SourceType {
	return scan.SourceTypeSearch
}

type cseResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (g *GoogleCSE) Fetch(ctx context.Context, company string) ([]scan.RawSignal, error) {
	now := time.Now().UTC()
	var signals []scan.RawSignal

	for _, probe := range g.probes {
		query := fmt.Sprintf("%q %s", company, probe)

		params := url.Values{}
		params.Set("key", g.apiKey)
		params.Set("cx", g.cseID)
		params.Set("q", query)
		params.Set("num", "10")

		var resp cseResponse
		if err := g.getJSON(ctx, g.baseURL+"/customsearch/v1?"+params.Encode(), &resp); err != nil {
			return signals, fmt.Errorf("failed to search for '%s': %w", query, err)
		}

		for _, item := range resp.Items {
			signals = append(signals, scan.RawSignal{
				Company:     company,
				Source:      g.Name(),
				SourceType:  g.Type(),
				URL:         item.Link,
				Title:       item.Title,
				Snippet:     item.Snippet,
				HarvestedAt: now,
			})
		}
	}

	slog.Debug("Search results collected", "company", company, "count", len(signals))

	return signals, nil
}
