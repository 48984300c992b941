package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cdpscan/cdpscan/app/scan"
)

const serpAPIBaseURL = "https://serpapi.com"

// Indeed pulls job postings from Indeed through SerpAPI, covering companies
// that do not run a Greenhouse board.
type Indeed struct {
	client
	baseURL string
	apiKey  string
}

func NewIndeed(httpClient *http.Client, userAgent, apiKey string) *Indeed {
	return &Indeed{
		client:  newClient(httpClient, userAgent),
		baseURL: serpAPIBaseURL,
		apiKey:  apiKey,
	}
}

func (i *Indeed) Name() string {
	return "indeed"
}

func (i *Indeed) Type() scan.SourceType {
	return scan.SourceTypeJobBoard
}

type serpResponse struct {
	JobsResults []struct {
		Title       string `json:"title"`
		CompanyName string `json:"company_name"`
		Location    string `json:"location"`
		Description string `json:"description"`
		Link        string `json:"link"`
	} `json:"jobs_results"`
}

func (i *Indeed) Fetch(ctx context.Context, company string) ([]scan.RawSignal, error) {
	params := url.Values{}
	params.Set("engine", "google_jobs")
	params.Set("q", fmt.Sprintf("%s marketing data", company))
	params.Set("api_key", i.apiKey)

	var resp serpResponse
	if err := i.getJSON(ctx, i.baseURL+"/search.json?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to search job postings for '%s': %w", company, err)
	}

	cleaned := cleanCompanyName(company)
	now := time.Now().UTC()
	var signals []scan.RawSignal

	for _, job := range resp.JobsResults {
		// SerpAPI matches loosely on the query; keep postings from the
		// target company only.
		if !strings.EqualFold(cleanCompanyName(job.CompanyName), cleaned) {
			continue
		}

		signals = append(signals, scan.RawSignal{
			Company:     company,
			Source:      i.Name(),
			SourceType:  i.Type(),
			URL:         job.Link,
			Title:       job.Title,
			Snippet:     truncate(job.Description, careersSnippetLimit),
			HarvestedAt: now,
		})
	}

	slog.Debug("Job postings collected", "company", company, "count", len(signals))

	return signals, nil
}
