package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/leadforge/leadforge-api/internal/entity"
	"github.com/leadforge/leadforge-api/internal/usecase"
)

// sizeRanges maps criteria buckets to the provider's employee-range strings.
var sizeRanges = map[string]string{
	entity.SizeStartup:    "1,10",
	entity.SizeSmall:      "11,50",
	entity.SizeMedium:     "51,200",
	entity.SizeLarge:      "201,500",
	entity.SizeEnterprise: "501,1000",
	entity.SizeVeryLarge:  "1001+",
}

const maxPerPage = 100

// Client talks to the Apollo people-search API. One instance per process;
// the limiter enforces the provider's 10 req/s contract.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
}

func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
}

func (c *Client) Name() string { return "apollo" }

// Search runs one people search. Zero results is a normal outcome and
// returns an empty slice, not an error.
func (c *Client) Search(ctx context.Context, criteria entity.Criteria) ([]entity.CandidateContact, error) {
	if criteria.Empty() {
		return nil, fmt.Errorf("%w: empty criteria", usecase.ErrInvalidCriteria)
	}

	perPage := criteria.MaxResults
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}
	payload := searchRequest{
		Page:            1,
		PerPage:         perPage,
		Keywords:        strings.TrimSpace(criteria.Keywords),
		PersonLocations: criteria.Locations,
		PersonTitles:    criteria.Titles,
		OrgIndustries:   criteria.Industries,
	}
	for _, size := range criteria.CompanySizes {
		if r, ok := sizeRanges[size]; ok {
			payload.OrgEmployeeRanges = append(payload.OrgEmployeeRanges, r)
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrProviderUnavailable, err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/mixed_people/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: apollo quota exhausted", usecase.ErrRateLimited)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, fmt.Errorf("%w: apollo rejected criteria: %s", usecase.ErrInvalidCriteria, e.Error)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: apollo returned status %d", usecase.ErrProviderUnavailable, resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", usecase.ErrProviderUnavailable, err)
	}

	candidates := make([]entity.CandidateContact, 0, len(out.People))
	for _, p := range out.People {
		if c, ok := toCandidate(p); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates, nil
}

// toCandidate normalizes a raw person record. Records without a name are
// useless downstream and are dropped here.
func toCandidate(p person) (entity.CandidateContact, bool) {
	name := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	if name == "" {
		return entity.CandidateContact{}, false
	}

	c := entity.CandidateContact{
		Name:        name,
		Title:       strings.TrimSpace(p.Title),
		Email:       strings.TrimSpace(p.Email),
		Location:    strings.TrimSpace(p.City),
		LinkedInURL: strings.TrimSpace(p.LinkedInURL),
		Source:      "apollo",
	}
	if p.Organization != nil {
		c.Company = strings.TrimSpace(p.Organization.Name)
		c.Industry = strings.TrimSpace(p.Organization.Industry)
		c.CompanySize = p.Organization.EstimatedNumEmployees
	}
	if len(p.PhoneNumbers) > 0 {
		c.Phone = strings.TrimSpace(p.PhoneNumbers[0].RawNumber)
	}
	return c, true
}
