package entity

import "errors"

var ErrPlanNotFound = errors.New("plan not found")

// Plan is a subscription tier. Quotas drive how many leads an account may
// source per month and per campaign run.
type Plan struct {
	ID               string `json:"id"`
	Name             string `json:"name"` // starter, professional, enterprise
	MonthlyLeadQuota int    `json:"monthly_lead_quota"`
	MaxLeadsPerRun   int    `json:"max_leads_per_run"`
	PriceCents       int    `json:"price_cents"`
}
