package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cdpscan/cdpscan/app/scan"
)

const greenhouseDefaultBaseURL = "https://boards-api.greenhouse.io"

// Greenhouse pulls job listings from the public Greenhouse Job Board API.
// Board tokens are not discoverable, so it probes the usual slug patterns
// derived from the company name.
type Greenhouse struct {
	client
	baseURL string
}

func NewGreenhouse(httpClient *http.Client, userAgent string) *Greenhouse {
	return &Greenhouse{
		client:  newClient(httpClient, userAgent),
		baseURL: greenhouseDefaultBaseURL,
	}
}

func (g *Greenhouse) Name() string {
	return "greenhouse"
}

func (g *Greenhouse) Type() scan.SourceType {
	return scan.SourceTypeJobBoard
}

type greenhouseJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
}

type greenhouseBoard struct {
	Jobs []greenhouseJob `json:"jobs"`
}

func (g *Greenhouse) Fetch(ctx context.Context, company string) ([]scan.RawSignal, error) {
	token, board := g.findBoard(ctx, company)
	if board == nil {
		slog.Debug("No Greenhouse board found", "company", company)
		return nil, nil
	}

	now := time.Now().UTC()
	signals := make([]scan.RawSignal, 0, len(board.Jobs))
	for _, job := range board.Jobs {
		department := ""
		if len(job.Departments) > 0 {
			department = job.Departments[0].Name
		}

		signals = append(signals, scan.RawSignal{
			Company:     company,
			Source:      g.Name(),
			SourceType:  g.Type(),
			URL:         job.AbsoluteURL,
			Title:       job.Title,
			Snippet:     strings.TrimSuffix(fmt.Sprintf("%s - %s", department, job.Location.Name), " - "),
			HarvestedAt: now,
		})
	}

	slog.Debug("Greenhouse board fetched", "company", company, "token", token, "jobs", len(board.Jobs))

	return signals, nil
}

// findBoard probes slug variants until one returns a job board. A miss is
// the common case and not an error.
func (g *Greenhouse) findBoard(ctx context.Context, company string) (string, *greenhouseBoard) {
	tokens := []string{
		companySlug(company, ""),
		companySlug(company, "-"),
	}

	for _, token := range tokens {
		if token == "" {
			continue
		}

		var board greenhouseBoard
		url := fmt.Sprintf("%s/v1/boards/%s/jobs", g.baseURL, token)
		if err := g.getJSON(ctx, url, &board); err != nil {
			continue
		}
		return token, &board
	}

	return "", nil
}
