package entity

import "strings"

// CandidateContact is a raw, unverified contact returned by a provider.
// It exists only within a single pipeline run.
type CandidateContact struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
	CompanySize int    `json:"company_size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Source      string `json:"source"`
}

// DedupeKey identifies a contact within an account: the normalized email when
// present, otherwise name plus company.
func (c CandidateContact) DedupeKey() string {
	if email := strings.ToLower(strings.TrimSpace(c.Email)); email != "" {
		return email
	}
	return strings.ToLower(strings.TrimSpace(c.Name)) + "|" + strings.ToLower(strings.TrimSpace(c.Company))
}
