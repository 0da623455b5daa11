package goal

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no goal exists for the given id.
var ErrNotFound = errors.New("goal not found")

type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, id int64) (*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	// AddToGoal increments the goal's current amount as a single atomic
	// operation, so concurrent deposits to one goal never lose an update.
	AddToGoal(ctx context.Context, id int64, amount float64) error
	DeleteGoal(ctx context.Context, id int64) error
	ListGoalsByOwner(ctx context.Context, ownerID int64) ([]*Goal, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create opens a new goal with nothing saved toward it yet.
func (s *Service) Create(ctx context.Context, ownerID int64, title string, targetAmount float64) (*Goal, error) {
	g := &Goal{
		OwnerID:      ownerID,
		Title:        title,
		TargetAmount: targetAmount,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	return g, nil
}

// AddAmount adds amount to the goal's saved total. The sign is not checked:
// a negative amount reduces progress.
func (s *Service) AddAmount(ctx context.Context, id int64, amount float64) error {
	if err := s.repo.AddToGoal(ctx, id, amount); err != nil {
		return fmt.Errorf("adding to goal %d: %w", id, err)
	}

	return nil
}

// Update replaces title and target amount; the saved total is untouched.
func (s *Service) Update(ctx context.Context, id int64, title string, targetAmount float64) error {
	g, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("updating goal %d: %w", id, err)
	}

	g.Title = title
	g.TargetAmount = targetAmount

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return fmt.Errorf("updating goal %d: %w", id, err)
	}

	return nil
}

// Delete removes the goal if present; absent ids are a no-op.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteGoal(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]*Goal, error) {
	return s.repo.ListGoalsByOwner(ctx, ownerID)
}
