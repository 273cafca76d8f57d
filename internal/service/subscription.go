package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/foodgram/foodgram/internal/model"
	"github.com/foodgram/foodgram/internal/repository"
)

// Subscription service errors.
var (
	ErrSelfSubscribe     = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this user")
	ErrNotSubscribed     = errors.New("subscription does not exist")
)

// SubscriptionService handles author subscriptions.
type SubscriptionService struct {
	repo *repository.Repository
}

// NewSubscriptionService creates a new SubscriptionService.
func NewSubscriptionService(repo *repository.Repository) *SubscriptionService {
	return &SubscriptionService{repo: repo}
}

// Subscribe makes subscriberID follow authorID and returns the author.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID, authorID int64) (*model.User, error) {
	if subscriberID == authorID {
		return nil, ErrSelfSubscribe
	}

	author, err := s.repo.GetUserByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	if err := s.repo.CreateSubscription(ctx, subscriberID, authorID); err != nil {
		if errors.Is(err, repository.ErrAlreadySubscribed) {
			return nil, ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	return author, nil
}

// Unsubscribe removes a subscription.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID, authorID int64) error {
	if _, err := s.repo.GetUserByID(ctx, authorID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load author: %w", err)
	}

	if err := s.repo.DeleteSubscription(ctx, subscriberID, authorID); err != nil {
		if errors.Is(err, repository.ErrNotSubscribed) {
			return ErrNotSubscribed
		}
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}

	return nil
}

// ListAuthors returns a page of authors the subscriber follows plus the
// total count.
func (s *SubscriptionService) ListAuthors(ctx context.Context, subscriberID int64, limit, offset int) ([]*model.User, int64, error) {
	authors, err := s.repo.ListSubscribedAuthors(ctx, subscriberID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}

	count, err := s.repo.CountSubscribedAuthors(ctx, subscriberID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return authors, count, nil
}

// AuthorRecipes returns the author's newest recipes (capped at limit when
// limit > 0) and their total recipe count, for subscription payloads.
func (s *SubscriptionService) AuthorRecipes(ctx context.Context, authorID int64, limit int) ([]*model.Recipe, int64, error) {
	recipes, err := s.repo.ListShortRecipesByAuthor(ctx, authorID, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list author recipes: %w", err)
	}

	count, err := s.repo.CountRecipesByAuthor(ctx, authorID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count author recipes: %w", err)
	}

	return recipes, count, nil
}
