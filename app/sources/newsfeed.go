package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/cdpscan/cdpscan/app/scan"
)

const (
	newsfeedDefaultBaseURL = "https://news.google.com"
	newsfeedMaxItems       = 25
)

// Newsfeed queries the Google News RSS endpoint for a company and emits one
// signal per article. This is the personnel-change-capable source: executive
// moves and funding announcements surface here.
type Newsfeed struct {
	client
	baseURL string
	parser  *gofeed.Parser
}

func NewNewsfeed(httpClient *http.Client, userAgent string) *Newsfeed {
	return &Newsfeed{
		client:  newClient(httpClient, userAgent),
		baseURL: newsfeedDefaultBaseURL,
		parser:  gofeed.NewParser(),
	}
}

func (n *Newsfeed) Name() string {
	return "newsfeed"
}

func (n *Newsfeed) Type() scan.SourceType {
	return scan.SourceTypeNews
}

func (n *Newsfeed) Fetch(ctx context.Context, company string) ([]scan.RawSignal, error) {
	query := url.QueryEscape(fmt.Sprintf("%q", cleanCompanyName(company)))
	feedURL := fmt.Sprintf("%s/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en", n.baseURL, query)

	data, err := n.get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news feed: %w", err)
	}

	feed, err := n.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	now := time.Now().UTC()
	signals := make([]scan.RawSignal, 0, len(feed.Items))
	for i, item := range feed.Items {
		if i >= newsfeedMaxItems {
			break
		}

		harvestedAt := now
		if item.PublishedParsed != nil {
			harvestedAt = item.PublishedParsed.UTC()
		}

		signals = append(signals, scan.RawSignal{
			Company:     company,
			Source:      n.Name(),
			SourceType:  n.Type(),
			URL:         item.Link,
			Title:       item.Title,
			Snippet:     item.Description,
			HarvestedAt: harvestedAt,
		})
	}

	return signals, nil
}
