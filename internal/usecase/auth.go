package usecase

import (
	"context"
	"time"

	"github.com/leadforge/leadforge-api/internal/entity"
)

// TokenIssuer signs bearer tokens for an authenticated account.
type TokenIssuer interface {
	Issue(accountID, email string, admin bool, ttl time.Duration) (string, error)
}

// TokenTTL is how long issued bearer tokens stay valid.
const TokenTTL = 24 * time.Hour

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginOutput struct {
	Token     string          `json:"token"`
	ExpiresIn int             `json:"expires_in"` // seconds
	Account   *entity.Account `json:"account"`
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Industry    string `json:"industry"`
	Plan        string `json:"plan"`
}

// AuthUseCase covers login, onboarding registration and token refresh.
type AuthUseCase struct {
	Accounts AccountRepositoryInterface
	Plans    PlanRepositoryInterface
	Tokens   TokenIssuer
}

func NewAuthUseCase(accounts AccountRepositoryInterface, plans PlanRepositoryInterface, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{Accounts: accounts, Plans: plans, Tokens: tokens}
}

// Login checks credentials and issues a bearer token.
func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	account, err := uc.Accounts.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil || account == nil || !account.CheckPassword(input.Password) {
		return nil, ErrInvalidCredentials
	}
	if account.Status != entity.AccountStatusActive {
		return nil, ErrAccountInactive
	}

	now := time.Now().UTC()
	account.LastLogin = &now
	account.UpdatedAt = now
	if err := uc.Accounts.Update(ctx, account); err != nil {
		return nil, err
	}

	token, err := uc.Tokens.Issue(account.ID, account.Email, account.Admin, TokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Token: token, ExpiresIn: int(TokenTTL.Seconds()), Account: account}, nil
}

// Register creates an account on the requested plan (starter if omitted)
// and logs it straight in. This backs the onboarding flow.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*LoginOutput, error) {
	if errs := ValidateRegisterInput(input); len(errs) > 0 {
		return nil, errs[0]
	}

	if existing, _ := uc.Accounts.FindByEmail(ctx, normalizeEmail(input.Email)); existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	planName := input.Plan
	if planName == "" {
		planName = "starter"
	}
	plan, err := uc.Plans.FindByName(ctx, planName)
	if err != nil {
		return nil, entity.ErrPlanNotFound
	}

	account, err := entity.NewAccount(input.Email, input.Password, input.CompanyName, input.ContactName, *plan)
	if err != nil {
		return nil, err
	}
	account.Phone = input.Phone
	account.Industry = input.Industry

	if err := uc.Accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	token, err := uc.Tokens.Issue(account.ID, account.Email, account.Admin, TokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Token: token, ExpiresIn: int(TokenTTL.Seconds()), Account: account}, nil
}

// Refresh issues a fresh token for an already-authenticated account.
func (uc *AuthUseCase) Refresh(ctx context.Context, accountID string) (*LoginOutput, error) {
	account, err := uc.Accounts.FindByID(ctx, accountID)
	if err != nil || account == nil {
		return nil, ErrAccountNotFound
	}
	if account.Status != entity.AccountStatusActive {
		return nil, ErrAccountInactive
	}
	token, err := uc.Tokens.Issue(account.ID, account.Email, account.Admin, TokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Token: token, ExpiresIn: int(TokenTTL.Seconds()), Account: account}, nil
}
