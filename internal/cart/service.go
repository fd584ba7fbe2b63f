package cart

import (
	"context"

	pkgerrors "github.com/railparts-supply/railparts-backend/pkg/errors"
	"github.com/railparts-supply/railparts-backend/pkg/logger"
)

// Service exposes per-token cart operations over the persisted store.
type Service interface {
	Fetch(ctx context.Context, token string) (Snapshot, error)
	Add(ctx context.Context, token string, product ProductInput) (AddOutcome, Snapshot, error)
	Increment(ctx context.Context, token, sku string) (Snapshot, error)
	Decrement(ctx context.Context, token, sku string) (Snapshot, error)
	UpdateQuantity(ctx context.Context, token, sku string, quantity int) (Snapshot, error)
	Remove(ctx context.Context, token, sku string) (Snapshot, error)
	Clear(ctx context.Context, token string) (Snapshot, error)
}

// ServiceParams wires cart dependencies.
type ServiceParams struct {
	Repo   Repository
	Images ImageResolver
	Logger *logger.Logger
}

type service struct {
	repo   Repository
	images ImageResolver
	logg   *logger.Logger
}

// NewService validates and wires the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart repository required")
	}
	return &service{
		repo:   params.Repo,
		images: params.Images,
		logg:   params.Logger,
	}, nil
}

func (s *service) Fetch(ctx context.Context, token string) (Snapshot, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return Snapshot{}, err
	}
	return store.Snapshot(), nil
}

func (s *service) Add(ctx context.Context, token string, product ProductInput) (AddOutcome, Snapshot, error) {
	if product.SKU == "" {
		return "", Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product sku required")
	}
	store, err := s.load(ctx, token)
	if err != nil {
		return "", Snapshot{}, err
	}
	outcome := store.AddToQuote(ctx, product)
	return outcome, store.Snapshot(), nil
}

func (s *service) Increment(ctx context.Context, token, sku string) (Snapshot, error) {
	return s.mutate(ctx, token, func(store *Store) {
		store.IncrementQuantity(ctx, sku)
	})
}

func (s *service) Decrement(ctx context.Context, token, sku string) (Snapshot, error) {
	return s.mutate(ctx, token, func(store *Store) {
		store.DecrementQuantity(ctx, sku)
	})
}

func (s *service) UpdateQuantity(ctx context.Context, token, sku string, quantity int) (Snapshot, error) {
	return s.mutate(ctx, token, func(store *Store) {
		store.UpdateQuantity(ctx, sku, quantity)
	})
}

func (s *service) Remove(ctx context.Context, token, sku string) (Snapshot, error) {
	return s.mutate(ctx, token, func(store *Store) {
		store.RemoveFromQuote(ctx, sku)
	})
}

func (s *service) Clear(ctx context.Context, token string) (Snapshot, error) {
	return s.mutate(ctx, token, func(store *Store) {
		store.ClearQuote(ctx)
	})
}

func (s *service) mutate(ctx context.Context, token string, apply func(*Store)) (Snapshot, error) {
	store, err := s.load(ctx, token)
	if err != nil {
		return Snapshot{}, err
	}
	apply(store)
	return store.Snapshot(), nil
}

// load rehydrates the token's store. Storage being unreachable degrades to an
// empty in-memory cart rather than failing the request.
func (s *service) load(ctx context.Context, token string) (*Store, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}

	var lines []CartLine
	data, found, err := s.repo.Load(ctx, token)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(s.logg.WithCartToken(ctx, token), "cart load failed, continuing in-memory", err)
		}
	} else if found {
		lines, err = DecodeLines(data)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(s.logg.WithCartToken(ctx, token), "cart payload unreadable, starting empty", err)
			}
			lines = nil
		}
	}

	return NewStore(StoreOptions{
		Lines:     lines,
		Images:    s.images,
		Persister: &boundPersister{repo: s.repo, token: token, logg: s.logg},
	}), nil
}

// boundPersister writes a single token's lines; errors are reported to the
// store (which flags degraded mode) and logged, never surfaced to callers.
type boundPersister struct {
	repo  Repository
	token string
	logg  *logger.Logger
}

func (p *boundPersister) Save(ctx context.Context, lines []CartLine) error {
	data, err := EncodeLines(lines)
	if err != nil {
		if p.logg != nil {
			p.logg.Error(ctx, "cart encode failed", err)
		}
		return err
	}
	if err := p.repo.Save(ctx, p.token, data); err != nil {
		if p.logg != nil {
			p.logg.Error(p.logg.WithCartToken(ctx, p.token), "cart save failed, continuing in-memory", err)
		}
		return err
	}
	return nil
}
