package sources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"internhunt-go/internal/models"
	"internhunt-go/internal/stipend"
)

// FeedSource fetches listings from job-board RSS/Atom feeds. Boards like
// WeWorkRemotely publish items titled "Company: Position".
type FeedSource struct {
	name   string
	urls   []string
	parser *gofeed.Parser
}

// NewFeedSource creates a feed source over one or more feed URLs.
func NewFeedSource(name string, urls []string) *FeedSource {
	return &FeedSource{
		name:   name,
		urls:   urls,
		parser: gofeed.NewParser(),
	}
}

func (s *FeedSource) Name() string { return s.name }

func (s *FeedSource) RateLimit() time.Duration { return 500 * time.Millisecond }

func (s *FeedSource) Fetch(ctx context.Context, criteria models.UserCriteria) ([]models.RawListing, error) {
	var listings []models.RawListing
	var lastErr error
	fetched := 0

	for _, feedURL := range s.urls {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
			continue
		}
		fetched++

		for _, item := range feed.Items {
			if listing, ok := s.parseItem(feed, item); ok {
				listings = append(listings, listing)
			}
		}
	}

	// One broken feed doesn't fail the source; all broken does.
	if fetched == 0 && lastErr != nil {
		return nil, lastErr
	}
	return listings, nil
}

func (s *FeedSource) parseItem(feed *gofeed.Feed, item *gofeed.Item) (models.RawListing, bool) {
	if item.Title == "" {
		return models.RawListing{}, false
	}

	title := item.Title
	company := ""
	if before, after, found := strings.Cut(item.Title, ":"); found {
		company = strings.TrimSpace(before)
		title = strings.TrimSpace(after)
	}
	if company == "" && item.Author != nil {
		company = item.Author.Name
	}
	if company == "" {
		company = feed.Title
	}

	posted := ""
	if item.PublishedParsed != nil {
		days := int(time.Since(*item.PublishedParsed).Hours() / 24)
		posted = fmt.Sprintf("%d days ago", days)
	}

	listing := models.RawListing{
		Title:          title,
		Company:        company,
		Location:       feedItemLocation(item),
		Description:    item.Description,
		URL:            item.Link,
		PostedDateText: posted,
		Source:         s.name,
	}
	// Feeds have no dedicated stipend field; only a custom "salary"
	// extension is trustworthy enough to parse.
	if raw, ok := item.Custom["salary"]; ok {
		listing.RawStipendText = raw
		if amount, parsed := stipend.Parse(raw); parsed {
			listing.Stipend = &amount
		}
	}
	return listing, true
}

// feedItemLocation pulls a region category out of the item if the feed
// carries one; remote boards rarely do, so default to Remote.
func feedItemLocation(item *gofeed.Item) string {
	for _, category := range item.Categories {
		lower := strings.ToLower(category)
		if strings.Contains(lower, "region") || strings.Contains(lower, "location") {
			return category
		}
	}
	return "Remote"
}
