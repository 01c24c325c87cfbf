// Package linkedinx validates professional-network profile URLs against the
// enrichment provider. It is the cheapest of the three integrations: a URL
// shape check plus a HEAD probe.
package linkedinx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/leadforge/leadforge-api/internal/usecase"
)

var profilePath = regexp.MustCompile(`^/in/[A-Za-z0-9\-_%]+/?$`)

type Client struct {
	accessToken string
	http        *http.Client
	limiter     *rate.Limiter
}

func NewClient(accessToken string) *Client {
	return &Client{
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(2), 1),
	}
}

// ValidateProfile reports whether the URL looks like, and resolves to, a
// public profile. Malformed URLs are a definitive false, not an error.
func (c *Client) ValidateProfile(ctx context.Context, profileURL string) (bool, error) {
	u, err := url.Parse(strings.TrimSpace(profileURL))
	if err != nil || u.Host == "" {
		return false, nil
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "linkedin.com" || !profilePath.MatchString(u.Path) {
		return false, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("%w: %v", usecase.ErrVerificationUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return false, err
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", usecase.ErrVerificationUnavailable, err)
	}
	defer resp.Body.Close()

	// 999 is the provider's crawler-block status; the URL itself is fine.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return false, nil
	}
	return true, nil
}
