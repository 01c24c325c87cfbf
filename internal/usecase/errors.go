package usecase

import "errors"

// Pipeline error taxonomy. The kind recorded on a failed Execution comes from
// these sentinels, so operators can tell a caller error from a provider outage.
var (
	// ErrInvalidCriteria is a caller error: malformed or empty targeting
	// criteria. Surfaced immediately, never retried.
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrRateLimited means the provider signalled quota exhaustion. The run
	// fails and the campaign retries on its next scheduled cadence.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrProviderUnavailable covers transport and auth failures of the
	// contact-search provider. Fatal to the execution.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrVerificationUnavailable covers verification transport failures.
	// Absorbed per candidate with a fallback confidence.
	ErrVerificationUnavailable = errors.New("verification unavailable")

	// ErrPersistenceFailure means the transactional batch write failed and
	// was rolled back.
	ErrPersistenceFailure = errors.New("persistence failure")

	ErrAccountNotFound  = errors.New("account not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrQuotaExceeded    = errors.New("monthly lead quota exceeded")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// ErrorKind maps an error to the kind string stored on a failed execution.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCriteria):
		return "invalid_criteria"
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, ErrVerificationUnavailable):
		return "verification_unavailable"
	case errors.Is(err, ErrPersistenceFailure):
		return "persistence_failure"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	default:
		return "internal"
	}
}
