package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no transaction exists for the given id.
var ErrNotFound = errors.New("transaction not found")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactionsByOwner(ctx context.Context, ownerID int64) ([]*Transaction, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID     int64
	Amount      float64
	Category    string
	Date        time.Time
	Description string
	Type        Type
}

// Create records a new transaction. The owner id is taken as given; it is
// never checked against the account collection.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		OwnerID:     params.OwnerID,
		Amount:      params.Amount,
		Category:    params.Category,
		Date:        params.Date,
		Description: params.Description,
		Type:        params.Type,
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("creating transaction: %w", err)
	}

	return tx, nil
}

// Update replaces amount, category and description in place. Owner, date
// and type are immutable after creation.
func (s *Service) Update(ctx context.Context, id int64, amount float64, category, description string) error {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("updating transaction %d: %w", id, err)
	}

	tx.Amount = amount
	tx.Category = category
	tx.Description = description

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("updating transaction %d: %w", id, err)
	}

	return nil
}

// Delete removes the transaction if present; absent ids are a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTransaction(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*Transaction, error) {
	return s.repo.ListTransactionsByOwner(ctx, ownerID)
}

// Balance sums signed contributions over the owner's transactions in a
// single pass: income counts positive, expense negative.
func (s *Service) Balance(ctx context.Context, ownerID int64) (float64, error) {
	txs, err := s.repo.ListTransactionsByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("calculating balance for owner %d: %w", ownerID, err)
	}

	var balance float64

	for _, tx := range txs {
		switch tx.Type {
		case TypeIncome:
			balance += tx.Amount
		case TypeExpense:
			balance -= tx.Amount
		}
	}

	return balance, nil
}
