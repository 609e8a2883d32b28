package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"internhunt-go/internal/models"
	"internhunt-go/internal/stipend"
)

const internshalaMaxPages = 3

// InternshalaSource scrapes internship cards from Internshala search pages.
type InternshalaSource struct {
	client    *http.Client
	baseURL   string
	pageDelay time.Duration
}

// NewInternshalaSource creates an Internshala source.
func NewInternshalaSource(client *http.Client) *InternshalaSource {
	s := &InternshalaSource{
		client:  client,
		baseURL: "https://internshala.com/internships",
	}
	s.pageDelay = s.RateLimit()
	return s
}

func (s *InternshalaSource) Name() string { return "Internshala" }

func (s *InternshalaSource) RateLimit() time.Duration { return 2 * time.Second }

// Fetch walks up to internshalaMaxPages of search results. A card that
// cannot be parsed is skipped; the page keeps going. The rate limit
// applies between page requests too, not just between whole fetches.
func (s *InternshalaSource) Fetch(ctx context.Context, criteria models.UserCriteria) ([]models.RawListing, error) {
	var listings []models.RawListing

	for page := 1; page <= internshalaMaxPages; page++ {
		if page > 1 && s.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return listings, nil // keep what earlier pages produced
			case <-time.After(s.pageDelay):
			}
		}

		cards, err := s.fetchPage(ctx, criteria, page)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			break // keep what earlier pages produced
		}
		if len(cards) == 0 {
			break
		}
		listings = append(listings, cards...)
	}

	return listings, nil
}

func (s *InternshalaSource) fetchPage(ctx context.Context, criteria models.UserCriteria, page int) ([]models.RawListing, error) {
	pageURL := s.searchURL(criteria, page)

	req, err := newRequest(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Internshala: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Internshala returned status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Internshala page: %w", err)
	}

	var listings []models.RawListing
	for _, card := range findAll(doc, func(n *html.Node) bool {
		return n.Data == "div" && hasClass(n, "individual_internship")
	}) {
		if listing, ok := s.parseCard(card); ok {
			listings = append(listings, listing)
		}
	}
	return listings, nil
}

// searchURL builds a keyword-filtered search path, e.g.
// /internships/keywords-python,machine%20learning/page-2.
func (s *InternshalaSource) searchURL(criteria models.UserCriteria, page int) string {
	path := s.baseURL
	if len(criteria.WantedKeywords) > 0 {
		path += "/keywords-" + url.PathEscape(strings.Join(criteria.WantedKeywords, ","))
	}
	if page > 1 {
		path += fmt.Sprintf("/page-%d", page)
	}
	return path
}

func (s *InternshalaSource) parseCard(card *html.Node) (models.RawListing, bool) {
	title := textOfClass(card, "job-internship-name")
	if title == "" {
		title = textOfClass(card, "heading_4_5")
	}
	company := textOfClass(card, "company-name")
	if company == "" {
		company = textOfClass(card, "company_name")
	}
	if title == "" || company == "" {
		return models.RawListing{}, false
	}

	rawStipend := textOfClass(card, "stipend")
	listing := models.RawListing{
		Title:          title,
		Company:        company,
		Location:       textOfClass(card, "locations"),
		Description:    textOfClass(card, "internship_other_details_container"),
		URL:            s.cardURL(card),
		PostedDateText: textOfClass(card, "status"),
		Source:         s.Name(),
		RawStipendText: rawStipend,
	}
	if amount, ok := stipend.Parse(rawStipend); ok {
		listing.Stipend = &amount
	}
	return listing, true
}

func (s *InternshalaSource) cardURL(card *html.Node) string {
	for _, a := range findAll(card, func(n *html.Node) bool { return n.Data == "a" }) {
		href := attrValue(a, "href")
		if strings.HasPrefix(href, "/internship") {
			return "https://internshala.com" + href
		}
	}
	return ""
}

// ── minimal x/net/html helpers ────────────────────────────────────────────

func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// textOfClass returns the text of the first descendant with the class.
func textOfClass(root *html.Node, class string) string {
	nodes := findAll(root, func(n *html.Node) bool { return hasClass(n, class) })
	if len(nodes) == 0 {
		return ""
	}
	return textContent(nodes[0])
}
