package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateRegisterInput(input RegisterInput) []error {
	var errs []error

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if len(input.Password) < 8 {
		errs = append(errs, ValidationError{"password", "must have at least 8 characters"})
	}

	if strings.TrimSpace(input.CompanyName) == "" {
		errs = append(errs, ValidationError{"company_name", "is required"})
	} else if len(input.CompanyName) > 255 {
		errs = append(errs, ValidationError{"company_name", "must not exceed 255 characters"})
	}

	if strings.TrimSpace(input.ContactName) == "" {
		errs = append(errs, ValidationError{"contact_name", "is required"})
	}

	switch input.Plan {
	case "", "starter", "professional", "enterprise":
	default:
		errs = append(errs, ValidationError{"plan", "must be starter, professional or enterprise"})
	}

	return errs
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
