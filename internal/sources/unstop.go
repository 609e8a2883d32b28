package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"internhunt-go/internal/models"
	"internhunt-go/internal/stipend"
)

// UnstopSource fetches internships from the Unstop public search API.
type UnstopSource struct {
	client  *http.Client
	baseURL string
}

// NewUnstopSource creates an Unstop source.
func NewUnstopSource(client *http.Client) *UnstopSource {
	return &UnstopSource{
		client:  client,
		baseURL: "https://unstop.com/api/public/opportunity/search-result",
	}
}

func (s *UnstopSource) Name() string { return "Unstop" }

func (s *UnstopSource) RateLimit() time.Duration { return time.Second }

// unstopResponse mirrors the API envelope.
type unstopResponse struct {
	Data struct {
		Data []unstopOpportunity `json:"data"`
	} `json:"data"`
}

// unstopOpportunity mirrors a single opportunity record.
type unstopOpportunity struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	PublicURL    string `json:"public_url"`
	CreatedAt    string `json:"created_at"`
	Organisation struct {
		Name string `json:"name"`
	} `json:"organisation"`
	Regions []struct {
		Name string `json:"name"`
	} `json:"regions"`
	JobDetail struct {
		Salary     string `json:"salary"`
		Details    string `json:"details"`
		LocationIn string `json:"location_in"`
	} `json:"job_detail"`
}

func (s *UnstopSource) Fetch(ctx context.Context, criteria models.UserCriteria) ([]models.RawListing, error) {
	params := url.Values{}
	params.Set("opportunity", "internships")
	params.Set("per_page", "50")
	if len(criteria.WantedKeywords) > 0 {
		params.Set("searchTerm", strings.Join(criteria.WantedKeywords, " "))
	}

	req, err := newRequest(ctx, s.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Unstop: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Unstop API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var response unstopResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse Unstop response: %w", err)
	}

	listings := make([]models.RawListing, 0, len(response.Data.Data))
	for _, opp := range response.Data.Data {
		// Per-listing defect: missing essentials skip the record only.
		if opp.Title == "" || opp.Organisation.Name == "" {
			continue
		}

		locations := make([]string, 0, len(opp.Regions))
		for _, region := range opp.Regions {
			if region.Name != "" {
				locations = append(locations, region.Name)
			}
		}
		location := strings.Join(locations, ", ")
		if location == "" {
			location = opp.JobDetail.LocationIn
		}

		listing := models.RawListing{
			Title:          opp.Title,
			Company:        opp.Organisation.Name,
			Location:       location,
			Description:    opp.JobDetail.Details,
			URL:            opp.PublicURL,
			PostedDateText: opp.CreatedAt,
			Source:         s.Name(),
			RawStipendText: opp.JobDetail.Salary,
		}
		if listing.URL == "" {
			listing.URL = fmt.Sprintf("https://unstop.com/o/%d", opp.ID)
		}
		if amount, ok := stipend.Parse(opp.JobDetail.Salary); ok {
			listing.Stipend = &amount
		}

		listings = append(listings, listing)
	}

	return listings, nil
}
