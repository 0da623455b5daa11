// Package postgres implements the store contracts over PostgreSQL. Ids come
// from BIGSERIAL sequences and emails carry a unique constraint, so the
// id-assignment and uniqueness behavior of the in-memory store survives
// restarts. See schema.sql for the expected tables.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dkrasnov/kopilka/internal/account"
	"github.com/dkrasnov/kopilka/internal/goal"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

// Postgres error code for a unique constraint violation, raised when an
// insert or update collides with the accounts email index.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var (
	_ account.Repository     = (*Store)(nil)
	_ transaction.Repository = (*Store)(nil)
	_ goal.Repository        = (*Store)(nil)
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var roleStr string

	if err := s.Scan(&a.ID, &a.Email, &a.Password, &a.Name, &roleStr); err != nil {
		return nil, err
	}

	a.Role = account.Role(roleStr)

	return &a, nil
}

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (email, password, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, a.Email, a.Password, a.Name, a.Role).Scan(&a.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrDuplicateEmail
		}

		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	query := `SELECT id, email, password, name, role FROM accounts WHERE id = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	query := `SELECT id, email, password, name, role FROM accounts WHERE email = $1`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account by email: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	query := `SELECT id, email, password, name, role FROM accounts`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	return accounts, rows.Err()
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	query := `UPDATE accounts SET email = $2, password = $3, name = $4 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, a.ID, a.Email, a.Password, a.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrDuplicateEmail
		}

		return fmt.Errorf("updating account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	if err := s.Scan(&tx.ID, &tx.OwnerID, &tx.Amount, &tx.Category, &tx.Date, &tx.Description, &typeStr); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	return &tx, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (owner_id, amount, category, date, description, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		tx.OwnerID, tx.Amount, tx.Category, tx.Date, tx.Description, tx.Type,
	).Scan(&tx.ID)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `SELECT id, owner_id, amount, category, date, description, type
		FROM transactions WHERE id = $1`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `UPDATE transactions SET amount = $2, category = $3, description = $4 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, tx.ID, tx.Amount, tx.Category, tx.Description)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (s *Store) ListTransactionsByOwner(ctx context.Context, ownerID int64) ([]*transaction.Transaction, error) {
	query := `SELECT id, owner_id, amount, category, date, description, type
		FROM transactions WHERE owner_id = $1`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	return txs, rows.Err()
}

func scanGoal(s scanner) (*goal.Goal, error) {
	var g goal.Goal

	if err := s.Scan(&g.ID, &g.OwnerID, &g.Title, &g.TargetAmount, &g.CurrentAmount); err != nil {
		return nil, err
	}

	return &g, nil
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (owner_id, title, target_amount, current_amount)
		VALUES ($1, $2, $3, 0)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query, g.OwnerID, g.Title, g.TargetAmount).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, id int64) (*goal.Goal, error) {
	query := `SELECT id, owner_id, title, target_amount, current_amount FROM goals WHERE id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	return g, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	query := `UPDATE goals SET title = $2, target_amount = $3 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, g.ID, g.Title, g.TargetAmount)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.ErrNotFound
	}

	return nil
}

// AddToGoal increments in a single UPDATE so concurrent deposits both land.
func (s *Store) AddToGoal(ctx context.Context, id int64, amount float64) error {
	query := `UPDATE goals SET current_amount = current_amount + $2 WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, amount)
	if err != nil {
		return fmt.Errorf("adding to goal: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	return nil
}

func (s *Store) ListGoalsByOwner(ctx context.Context, ownerID int64) ([]*goal.Goal, error) {
	query := `SELECT id, owner_id, title, target_amount, current_amount FROM goals WHERE owner_id = $1`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	return goals, rows.Err()
}
