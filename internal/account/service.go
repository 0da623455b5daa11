package account

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no account exists for the given id.
	ErrNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when another account already holds the email.
	ErrDuplicateEmail = errors.New("email already taken")
	// ErrInvalidCredentials is returned on login failure. It deliberately does
	// not distinguish an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repository interface {
	// CreateAccount assigns a fresh id and inserts. The email-uniqueness
	// check and the insert are atomic: a concurrent create with the same
	// email is rejected with ErrDuplicateEmail.
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, id int64) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	// UpdateAccount carries the same atomic uniqueness guarantee as
	// CreateAccount when the update moves the account to a new email.
	UpdateAccount(ctx context.Context, a *Account) error
	DeleteAccount(ctx context.Context, id int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new account. The email must not be held by any live
// account; comparison is exact and case-sensitive.
func (s *Service) Register(ctx context.Context, email, password, name string, role Role) (*Account, error) {
	_, err := s.repo.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, fmt.Errorf("register %q: %w", email, ErrDuplicateEmail)
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	a := &Account{
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
	}
	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, fmt.Errorf("register %q: %w", email, err)
	}

	return a, nil
}

// Login returns the account matching email and password exactly.
func (s *Service) Login(ctx context.Context, email, password string) (*Account, error) {
	a, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, fmt.Errorf("login: %w", err)
	}

	if a.Password != password {
		return nil, ErrInvalidCredentials
	}

	return a, nil
}

// Update replaces email, password and name in place. The role set at
// registration is never touched. Updating to the account's own current
// email is not a conflict.
func (s *Service) Update(ctx context.Context, id int64, newEmail, newPassword, newName string) error {
	a, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return fmt.Errorf("updating account %d: %w", id, err)
	}

	existing, err := s.repo.GetAccountByEmail(ctx, newEmail)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("updating account %d: %w", id, err)
	}

	if existing != nil && existing.ID != id {
		return fmt.Errorf("updating account %d to %q: %w", id, newEmail, ErrDuplicateEmail)
	}

	a.Email = newEmail
	a.Password = newPassword
	a.Name = newName

	if err := s.repo.UpdateAccount(ctx, a); err != nil {
		return fmt.Errorf("updating account %d: %w", id, err)
	}

	return nil
}

// Delete removes the account if present. Deleting an absent id is a no-op;
// the account's transactions and goals are left in place as orphans.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAccount(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Account, error) {
	return s.repo.ListAccounts(ctx)
}

func (s *Service) IsAdmin(a *Account) bool {
	return a != nil && a.Role == RoleAdmin
}
