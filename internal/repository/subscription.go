package repository

import (
	"context"

	"foodgram/internal/models"

	"gorm.io/gorm"
)

// SubscriptionRepository defines persistence operations for author
// subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, userID, authorID uint) error
	Delete(ctx context.Context, userID, authorID uint) error
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository returns a new SubscriptionRepository implementation.
func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Create subscribes userID to authorID. Subscribing twice is a validation
// error, enforced by the unique (user_id, author_id) index.
func (r *subscriptionRepository) Create(ctx context.Context, userID, authorID uint) error {
	sub := models.Subscription{UserID: userID, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(&sub).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Already subscribed to this author")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, userID, authorID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Subscription{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewValidationError("Not subscribed to this author")
	}
	return nil
}

func (r *subscriptionRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Subscription{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// ListAuthors returns the authors userID follows, newest subscription
// first, with the total count for pagination.
func (r *subscriptionRepository) ListAuthors(ctx context.Context, userID uint, limit, offset int) ([]models.User, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var authors []models.User
	if err := base.Session(&gorm.Session{}).
		Select("users.*, true as is_subscribed").
		Order("subscriptions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&authors).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return authors, total, nil
}
