// Package memory implements the storage contracts in process memory. It
// backs tests and the "memory" storage driver for local development; it
// enforces the same uniqueness constraints as the SurrealDB backend, under a
// mutex instead of a unique index.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sreekanthvaripalli/expensemanager/internal/interfaces"
	"github.com/sreekanthvaripalli/expensemanager/internal/models"
)

// Manager implements interfaces.StorageManager with in-memory maps.
type Manager struct {
	mu         sync.RWMutex
	users      map[string]*models.User
	categories map[string]*models.Category
	expenses   map[string]*models.Expense
	budgets    map[string]*models.Budget
}

// NewManager creates an empty in-memory storage manager.
func NewManager() *Manager {
	return &Manager{
		users:      make(map[string]*models.User),
		categories: make(map[string]*models.Category),
		expenses:   make(map[string]*models.Expense),
		budgets:    make(map[string]*models.Budget),
	}
}

func (m *Manager) Users() interfaces.UserStore          { return (*userStore)(m) }
func (m *Manager) Categories() interfaces.CategoryStore { return (*categoryStore)(m) }
func (m *Manager) Expenses() interfaces.ExpenseStore    { return (*expenseStore)(m) }
func (m *Manager) Budgets() interfaces.BudgetStore      { return (*budgetStore)(m) }

func (m *Manager) Close() error { return nil }

// --- users ---

type userStore Manager

func (s *userStore) Get(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, models.NewNotFoundError("user not found")
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("user not found")
}

func (s *userStore) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email && u.ID != user.ID {
			return models.NewBusinessError(models.CodeDuplicateEmail,
				fmt.Sprintf("email %s is already registered", user.Email))
		}
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *userStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *userStore) EstablishBaseCurrency(_ context.Context, userID string, currency models.CurrencyCode) (models.CurrencyCode, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return "", false, models.NewNotFoundError("user not found")
	}
	if u.BaseCurrency.IsSet() {
		return u.BaseCurrency.Code(), false, nil
	}
	u.BaseCurrency = models.BaseCurrency(currency)
	u.UpdatedAt = time.Now().UTC()
	return currency, true, nil
}

// --- categories ---

type categoryStore Manager

func (s *categoryStore) Get(_ context.Context, userID, id string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return nil, models.NewNotFoundError("category not found")
	}
	cp := *c
	return &cp, nil
}

func (s *categoryStore) GetByName(_ context.Context, userID, name string) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.UserID == userID && c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("category not found")
}

func (s *categoryStore) Save(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.UserID == category.UserID && c.Name == category.Name && c.ID != category.ID {
			return models.NewBusinessError(models.CodeDuplicateCategory,
				fmt.Sprintf("category %q already exists", category.Name))
		}
	}
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *categoryStore) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.UserID != userID {
		return models.NewNotFoundError("category not found")
	}
	delete(s.categories, id)
	return nil
}

func (s *categoryStore) List(_ context.Context, userID string) ([]*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// --- expenses ---

type expenseStore Manager

func (s *expenseStore) Get(_ context.Context, id string) (*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.expenses[id]
	if !ok {
		return nil, models.NewNotFoundError("expense not found")
	}
	cp := *e
	return &cp, nil
}

func (s *expenseStore) Save(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *expense
	s.expenses[expense.ID] = &cp
	return nil
}

func (s *expenseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return models.NewNotFoundError("expense not found")
	}
	delete(s.expenses, id)
	return nil
}

func (s *expenseStore) List(_ context.Context, userID string, filter models.ExpenseFilter) ([]*models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Expense
	for _, e := range s.expenses {
		if e.UserID != userID || !filter.Matches(e) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	models.SortExpenses(out)
	return out, nil
}

func (s *expenseStore) DetachCategory(_ context.Context, userID, categoryID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, e := range s.expenses {
		if e.UserID == userID && e.CategoryID == categoryID {
			e.CategoryID = ""
			count++
		}
	}
	return count, nil
}

// --- budgets ---

type budgetStore Manager

func (s *budgetStore) Get(_ context.Context, id string) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok {
		return nil, models.NewNotFoundError("budget not found")
	}
	cp := *b
	return &cp, nil
}

func (s *budgetStore) Save(_ context.Context, budget *models.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := budget.PeriodKey()
	for _, b := range s.budgets {
		if b.ID != budget.ID && b.PeriodKey() == key {
			return models.NewBusinessError(models.CodeDuplicateBudget,
				fmt.Sprintf("a budget already exists for %04d-%02d", budget.Year, budget.Month))
		}
	}
	cp := *budget
	s.budgets[budget.ID] = &cp
	return nil
}

func (s *budgetStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[id]; !ok {
		return models.NewNotFoundError("budget not found")
	}
	delete(s.budgets, id)
	return nil
}

func (s *budgetStore) ListForPeriod(_ context.Context, userID string, year, month int) ([]*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && b.Year == year && b.Month == month {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *budgetStore) FindByPeriod(_ context.Context, userID string, year, month int, categoryID string) (*models.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.budgets {
		if b.UserID == userID && b.Year == year && b.Month == month && b.CategoryID == categoryID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, models.NewNotFoundError("budget not found")
}

// Compile-time check
var _ interfaces.StorageManager = (*Manager)(nil)
