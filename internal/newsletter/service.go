package newsletter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/railparts-supply/railparts-backend/pkg/db/models"
	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Repository persists newsletter subscribers.
type Repository interface {
	Insert(ctx context.Context, sub *models.NewsletterSubscriber) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed subscriber repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Insert(ctx context.Context, sub *models.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

// Service handles newsletter signups.
type Service interface {
	Subscribe(ctx context.Context, email string) error
}

type service struct {
	repo Repository
}

// NewService wires the newsletter service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("newsletter repository is required")
	}
	return &service{repo: repo}, nil
}

// Subscribe stores a new subscriber. Re-subscribing an existing address is a
// conflict, surfaced as such rather than silently deduplicated.
func (s *service) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return pkgerrors.New(pkgerrors.CodeValidation, "a valid email address is required")
	}

	err := s.repo.Insert(ctx, &models.NewsletterSubscriber{Email: email})
	if err == nil {
		return nil
	}
	if pkgerrors.IsUniqueViolation(err) || err == gorm.ErrDuplicatedKey {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "email already subscribed")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "storing subscriber")
}
