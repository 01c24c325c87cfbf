package hunter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/leadforge/leadforge-api/internal/usecase"
)

// Client talks to the Hunter email-verification API. The limiter honours
// the provider's 5 req/s contract.
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
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
	}
}

// Verify returns a deliverability confidence in [0,1]. The provider scores
// 0-100; deliverable results keep their score, undeliverable ones are floored.
func (c *Client) Verify(ctx context.Context, email string) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", usecase.ErrVerificationUnavailable, err)
	}

	q := url.Values{}
	q.Set("email", email)
	q.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/email-verifier?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", usecase.ErrVerificationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return 0, fmt.Errorf("%w: hunter quota exhausted", usecase.ErrVerificationUnavailable)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("%w: hunter returned status %d", usecase.ErrVerificationUnavailable, resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: decode response: %v", usecase.ErrVerificationUnavailable, err)
	}

	return confidence(out.Data), nil
}

// confidence collapses the provider's verdict and score into [0,1].
func confidence(d verificationData) float64 {
	switch d.Result {
	case "deliverable":
		if d.Score <= 0 {
			return 0.9
		}
		return float64(d.Score) / 100
	case "risky":
		score := float64(d.Score) / 100
		if score > 0.6 {
			score = 0.6
		}
		return score
	case "undeliverable":
		return 0
	default:
		return 0.2
	}
}
