package service

import (
	"context"

	"foodgram/internal/models"
	"foodgram/internal/repository"
)

// defaultRecipesLimit caps the recipe previews attached to each followed
// author when the client does not send a usable recipes_limit.
const defaultRecipesLimit = 10

// SubscriptionService provides author subscription business logic.
type SubscriptionService struct {
	subRepo    repository.SubscriptionRepository
	userRepo   repository.UserRepository
	recipeRepo repository.RecipeRepository
}

// SubscribedAuthor is one entry of the subscription feed: the author,
// a capped slice of their latest recipes and the full recipe count.
type SubscribedAuthor struct {
	User         models.User
	Recipes      []models.RecipeSummary
	RecipesCount int64
}

// NewSubscriptionService returns a new SubscriptionService.
func NewSubscriptionService(
	subRepo repository.SubscriptionRepository,
	userRepo repository.UserRepository,
	recipeRepo repository.RecipeRepository,
) *SubscriptionService {
	return &SubscriptionService{
		subRepo:    subRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Subscribe makes userID follow authorID and returns the author entry.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*SubscribedAuthor, error) {
	if userID == authorID {
		return nil, models.NewValidationError("Cannot subscribe to yourself")
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.subRepo.Create(ctx, userID, authorID); err != nil {
		return nil, err
	}
	author.IsSubscribed = true
	return s.enrich(ctx, *author, recipesLimit)
}

// Unsubscribe removes the follow edge. Unsubscribing from an author the
// user does not follow is a validation error.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.subRepo.Delete(ctx, userID, authorID)
}

// ListSubscriptions returns the authors userID follows, each with their
// latest recipes capped at recipesLimit, plus the total for pagination.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, userID uint, limit, offset, recipesLimit int) ([]SubscribedAuthor, int64, error) {
	authors, total, err := s.subRepo.ListAuthors(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]SubscribedAuthor, 0, len(authors))
	for _, author := range authors {
		entry, err := s.enrich(ctx, author, recipesLimit)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, *entry)
	}
	return entries, total, nil
}

func (s *SubscriptionService) enrich(ctx context.Context, author models.User, recipesLimit int) (*SubscribedAuthor, error) {
	if recipesLimit <= 0 || recipesLimit > 100 {
		recipesLimit = defaultRecipesLimit
	}
	loaded, err := s.userRepo.GetByIDWithRecipes(ctx, author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.RecipeSummary, 0, len(loaded.Recipes))
	for i := range loaded.Recipes {
		summaries = append(summaries, loaded.Recipes[i].Summary())
	}
	return &SubscribedAuthor{
		User:         author,
		Recipes:      summaries,
		RecipesCount: count,
	}, nil
}
