package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/sreekanthvaripalli/expensemanager/internal/common"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

type UserStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewUserStore(db *surrealdb.DB, logger *common.Logger) *UserStore {
	return &UserStore{
		db:     db,
		logger: logger,
	}
}

func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := surrealdb.Select[models.User](ctx, s.db, surrealmodels.NewRecordID("user", id))
	if err != nil {
		return nil, fmt.Errorf("failed to select user: %w", err)
	}
	if user == nil || user.ID == "" {
		return nil, models.NewNotFoundError("user not found")
	}
	return user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	sql := "SELECT * FROM user WHERE email = $email LIMIT 1"
	vars := map[string]any{"email": email}

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return &(*results)[0].Result[0], nil
	}
	return nil, models.NewNotFoundError("user not found")
}

func (s *UserStore) Save(ctx context.Context, user *models.User) error {
	sql := "UPSERT type::record('user', $id) CONTENT $user"
	vars := map[string]any{"id": user.ID, "user": user}

	_, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		if isUniqueViolation(err) {
			return models.NewBusinessError(models.CodeDuplicateEmail,
				fmt.Sprintf("email %s is already registered", user.Email))
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// EstablishBaseCurrency performs the unset -> set transition as a single
// conditional UPDATE so two concurrent establishers cannot both win.
func (s *UserStore) EstablishBaseCurrency(ctx context.Context, userID string, currency models.CurrencyCode) (models.CurrencyCode, bool, error) {
	sql := "UPDATE type::record('user', $id) SET base_currency = $currency, updated_at = $now WHERE base_currency = NONE OR base_currency = '' RETURN AFTER"
	vars := map[string]any{"id": userID, "currency": string(currency), "now": time.Now().UTC()}

	results, err := surrealdb.Query[[]models.User](ctx, s.db, sql, vars)
	if err != nil {
		return "", false, fmt.Errorf("failed to establish base currency: %w", err)
	}
	if results != nil && len(*results) > 0 && len((*results)[0].Result) > 0 {
		return (*results)[0].Result[0].BaseCurrency.Code(), true, nil
	}

	// No row matched: the user is missing or the currency is already set.
	// Read back to tell the two apart and to report the winner's currency.
	user, err := s.Get(ctx, userID)
	if err != nil {
		return "", false, err
	}
	return user.BaseCurrency.Code(), false, nil
}

func (s *UserStore) Delete(ctx context.Context, id string) error {
	_, err := surrealdb.Delete[models.User](ctx, s.db, surrealmodels.NewRecordID("user", id))
	if err != nil && !isNotFoundError(err) {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
