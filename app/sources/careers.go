package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"codeberg.org/readeck/go-readability"
	"github.com/PuerkitoBio/goquery"

	"github.com/cdpscan/cdpscan/app/scan"
)

const careersSnippetLimit = 600

// Careers scrapes a company's own careers page. Without a known URL it
// probes the usual patterns on the company domain; the first page that loads
// is scanned for posting links, and its readable text becomes one aggregate
// signal.
type Careers struct {
	client
	// baseURL overrides domain probing when set (tests, known careers sites).
	baseURL string
}

func NewCareers(httpClient *http.Client, userAgent string) *Careers {
	return &Careers{client: newClient(httpClient, userAgent)}
}

func (c *Careers) Name() string {
	return "careers"
}

func (c *Careers) Type() scan.SourceType {
	return scan.SourceTypeCareers
}

func (c *Careers) Fetch(ctx context.Context, company string) ([]scan.RawSignal, error) {
	pageURL, data := c.findPage(ctx, company)
	if data == nil {
		slog.Debug("No careers page found", "company", company)
		return nil, nil
	}

	now := time.Now().UTC()
	var signals []scan.RawSignal

	// Posting links first: anchor text is the job title, the strongest
	// hiring signal on the page.
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse careers page: %w", err)
	}

	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		title := strings.Join(strings.Fields(sel.Text()), " ")
		if title == "" || !isPostingLink(href) {
			return
		}

		signals = append(signals, scan.RawSignal{
			Company:     company,
			Source:      c.Name(),
			SourceType:  c.Type(),
			URL:         resolveHref(pageURL, href),
			Title:       title,
			HarvestedAt: now,
		})
	})

	// The page body as one aggregate signal: catches vendor and stack
	// mentions in posting teasers that never made it into a link.
	if article, err := readability.FromReader(strings.NewReader(string(data)), nil); err == nil && article.TextContent != "" {
		signals = append(signals, scan.RawSignal{
			Company:     company,
			Source:      c.Name(),
			SourceType:  c.Type(),
			URL:         pageURL,
			Title:       article.Title,
			Snippet:     truncate(article.TextContent, careersSnippetLimit),
			HarvestedAt: now,
		})
	}

	return signals, nil
}

func (c *Careers) findPage(ctx context.Context, company string) (string, []byte) {
	candidates := c.candidateURLs(company)

	for _, candidate := range candidates {
		data, err := c.get(ctx, candidate)
		if err != nil {
			continue
		}
		return candidate, data
	}

	return "", nil
}

func (c *Careers) candidateURLs(company string) []string {
	if c.baseURL != "" {
		return []string{c.baseURL}
	}

	slug := companySlug(company, "")
	if slug == "" {
		return nil
	}

	return []string{
		fmt.Sprintf("https://www.%s.com/careers", slug),
		fmt.Sprintf("https://www.%s.com/jobs", slug),
		fmt.Sprintf("https://%s.com/careers", slug),
	}
}

var postingPathMarkers = []string{"/careers/", "/jobs/", "/job/", "/positions/", "/openings/", "greenhouse.io", "lever.co"}

func isPostingLink(href string) bool {
	href = strings.ToLower(href)
	for _, marker := range postingPathMarkers {
		if strings.Contains(href, marker) {
			return true
		}
	}
	return false
}

func resolveHref(pageURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(pageURL, "/") + "/" + strings.TrimPrefix(href, "/")
}
