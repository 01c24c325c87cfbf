package entity

import (
	"errors"
	"strings"
)

// Company size buckets accepted in campaign criteria. Providers receive the
// mapped employee ranges, not the bucket names.
const (
	SizeStartup    = "startup"    // 1-10
	SizeSmall      = "small"      // 11-50
	SizeMedium     = "medium"     // 51-200
	SizeLarge      = "large"      // 201-500
	SizeEnterprise = "enterprise" // 501-1000
	SizeVeryLarge  = "very_large" // 1001+
)

// Criteria is the targeting definition of a campaign. At least one dimension
// must be non-empty for a search to be accepted.
type Criteria struct {
	Keywords     string   `json:"keywords,omitempty"`
	Industries   []string `json:"industries,omitempty"`
	Titles       []string `json:"titles,omitempty"`
	Locations    []string `json:"locations,omitempty"`
	CompanySizes []string `json:"company_sizes,omitempty"`

	MaxResults     int  `json:"max_results"`
	VerifyEmails   bool `json:"verify_emails"`
	EnrichProfiles bool `json:"enrich_profiles"`
}

var validSizes = map[string]bool{
	SizeStartup:    true,
	SizeSmall:      true,
	SizeMedium:     true,
	SizeLarge:      true,
	SizeEnterprise: true,
	SizeVeryLarge:  true,
}

// Empty reports whether no targeting dimension is set.
func (c Criteria) Empty() bool {
	return strings.TrimSpace(c.Keywords) == "" &&
		len(nonEmpty(c.Industries)) == 0 &&
		len(nonEmpty(c.Titles)) == 0 &&
		len(nonEmpty(c.Locations)) == 0 &&
		len(nonEmpty(c.CompanySizes)) == 0
}

func (c Criteria) Validate() error {
	if c.Empty() {
		return errors.New("at least one targeting dimension is required")
	}
	for _, s := range nonEmpty(c.CompanySizes) {
		if !validSizes[s] {
			return errors.New("unknown company size bucket: " + s)
		}
	}
	if c.MaxResults < 0 {
		return errors.New("max_results must not be negative")
	}
	return nil
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
