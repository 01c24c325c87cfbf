package entity

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Account statuses.
const (
	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusCancelled = "cancelled"
)

// Account is a tenant of the platform. Every campaign and lead belongs to
// exactly one account.
type Account struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CompanyName  string `json:"company_name"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone,omitempty"`
	Industry     string `json:"industry,omitempty"`

	Plan   string `json:"plan"`   // starter, professional, enterprise
	Status string `json:"status"` // active, suspended, cancelled
	Admin  bool   `json:"admin"`

	// Monthly sourcing quota. Usage counts leads persisted, not raw API calls.
	QuotaMonthly   int       `json:"quota_monthly"`
	UsageCurrent   int       `json:"usage_current"`
	UsageResetDate time.Time `json:"usage_reset_date"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// NewAccount builds an active account on the given plan with a hashed password.
func NewAccount(email, password, companyName, contactName string, plan Plan) (*Account, error) {
	now := time.Now().UTC()
	a := &Account{
		ID:             uuid.New().String(),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		CompanyName:    strings.TrimSpace(companyName),
		ContactName:    strings.TrimSpace(contactName),
		Plan:           plan.Name,
		Status:         AccountStatusActive,
		QuotaMonthly:   plan.MonthlyLeadQuota,
		UsageResetDate: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := a.SetPassword(password); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Account) Validate() error {
	if a.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(a.Email); err != nil {
		return errors.New("email is invalid")
	}
	if a.CompanyName == "" {
		return errors.New("company name is required")
	}
	if a.ContactName == "" {
		return errors.New("contact name is required")
	}
	return nil
}

func (a *Account) SetPassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must have at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

func (a *Account) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// CanGenerateLeads reports whether persisting count more leads stays within
// the monthly quota.
func (a *Account) CanGenerateLeads(count int) bool {
	return a.UsageCurrent+count <= a.QuotaMonthly
}

// ResetMonthlyUsage zeroes the usage counter. Called by the scheduler once the
// reset date is a month behind.
func (a *Account) ResetMonthlyUsage(now time.Time) {
	a.UsageCurrent = 0
	a.UsageResetDate = now
	a.UpdatedAt = now
}
