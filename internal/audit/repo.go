package audit

import (
	"context"
	"fmt"

	"github.com/railparts-supply/railparts-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the append-only audit trail contract. Callers treat any
// failure as non-fatal.
type Repository interface {
	Append(ctx context.Context, record *models.QuoteAuditRecord) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository wires the gorm-backed audit repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Append(ctx context.Context, record *models.QuoteAuditRecord) error {
	if record == nil {
		return fmt.Errorf("audit record required")
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("appending audit record: %w", err)
	}
	return nil
}
