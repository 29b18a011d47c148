// Package user manages accounts and the base-currency policy.
//
// The base currency is set exactly once per account. It can be set explicitly
// through SetBaseCurrency, or implicitly the first time a budget supplies a
// currency. Every later attempt to change it is rejected; conversions always
// target the currency that was established first.
package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// Service implements UserService
type Service struct {
	storage interfaces.StorageManager
	logger  *common.Logger
}

// NewService creates a new user service
func NewService(storage interfaces.StorageManager, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Register creates an account with a bcrypt-hashed password and no base
// currency.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, models.NewValidationError(models.CodeInvalidInput, "a valid email is required")
	}
	if password == "" {
		return nil, models.NewValidationError(models.CodeInvalidInput, "password is required")
	}

	// Truncate to 72 bytes, bcrypt ignores everything past that anyway
	passwordBytes := []byte(password)
	if len(passwordBytes) > 72 {
		passwordBytes = passwordBytes[:72]
	}
	hash, err := bcrypt.GenerateFromPassword(passwordBytes, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.Users().Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", email).Msg("User registered")
	return user, nil
}

// Get returns the user by id.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.storage.Users().Get(ctx, id)
}

// SetBaseCurrency establishes the base currency through the explicit settings
// path. Fails ALREADY_SET once one exists.
func (s *Service) SetBaseCurrency(ctx context.Context, userID string, currency models.CurrencyCode) error {
	code := models.NormalizeCurrency(string(currency))
	if !models.ValidCurrencyCode(code) {
		return models.NewValidationError(models.CodeInvalidInput,
			fmt.Sprintf("invalid currency code %q", string(currency)))
	}

	final, didSet, err := s.storage.Users().EstablishBaseCurrency(ctx, userID, code)
	if err != nil {
		return err
	}
	if !didSet {
		return models.NewBusinessError(models.CodeAlreadySet,
			fmt.Sprintf("base currency is already set to %s", final))
	}

	s.logger.Info().Str("user_id", userID).Str("currency", string(code)).Msg("Base currency set")
	return nil
}

// EnsureBaseCurrency returns the user's base currency, establishing it from
// supplied when unset. With no base currency and no supplied value it fails
// BASE_CURRENCY_REQUIRED. Once set, supplied is ignored.
func (s *Service) EnsureBaseCurrency(ctx context.Context, userID string, supplied models.CurrencyCode) (models.CurrencyCode, error) {
	code := models.NormalizeCurrency(string(supplied))
	if code == "" || !models.ValidCurrencyCode(code) {
		// Nothing usable was supplied, so the answer is whatever is already
		// established. An invalid code only matters when it would have been
		// the one to establish.
		user, err := s.storage.Users().Get(ctx, userID)
		if err != nil {
			return "", err
		}
		if user.BaseCurrency.IsSet() {
			return user.BaseCurrency.Code(), nil
		}
		if code == "" {
			return "", models.NewBusinessError(models.CodeBaseCurrencyRequired,
				"no base currency is set; create a budget with a currency or set one in settings first")
		}
		return "", models.NewValidationError(models.CodeInvalidInput,
			fmt.Sprintf("invalid currency code %q", string(supplied)))
	}

	final, didSet, err := s.storage.Users().EstablishBaseCurrency(ctx, userID, code)
	if err != nil {
		return "", err
	}
	if didSet {
		s.logger.Info().Str("user_id", userID).Str("currency", string(code)).Msg("Base currency established")
	}
	return final, nil
}

// Compile-time check
var _ interfaces.UserService = (*Service)(nil)
