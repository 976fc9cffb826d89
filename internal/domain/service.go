package domain

import (
	"context"

	"spottive/internal/core/apperror"
	"spottive/internal/core/entity"
	"spottive/internal/core/id"
	"spottive/internal/core/tx"
	"spottive/pkg/logger"
)

// HookEvent identifies an extension point in the entity lifecycle.
type HookEvent string

const (
	// BeforeCreate runs outside the transaction, after validation.
	BeforeCreate HookEvent = "before_create"
	BeforeUpdate HookEvent = "before_update"
	BeforeDelete HookEvent = "before_delete"

	// OnCreateTx runs inside the transaction, after the repository
	// write. Hooks that must commit atomically with the entity
	// (mutation log, audit trail) register here.
	OnCreateTx HookEvent = "on_create_tx"
	OnUpdateTx HookEvent = "on_update_tx"
	OnDeleteTx HookEvent = "on_delete_tx"

	// AfterCreate runs after commit; failures are logged, not returned.
	AfterCreate HookEvent = "after_create"
	AfterUpdate HookEvent = "after_update"
	AfterDelete HookEvent = "after_delete"
)

// HookFunc is a lifecycle hook. For delete events the entity is the
// state fetched just before removal.
type HookFunc[T entity.Validatable] func(ctx context.Context, item T) error

// HookRegistry holds lifecycle hooks for one entity type.
// Registration happens at composition time; no locking.
type HookRegistry[T entity.Validatable] struct {
	hooks map[HookEvent][]HookFunc[T]
}

// NewHookRegistry creates an empty registry.
func NewHookRegistry[T entity.Validatable]() *HookRegistry[T] {
	return &HookRegistry[T]{hooks: make(map[HookEvent][]HookFunc[T])}
}

// Register appends a hook for the given event.
func (r *HookRegistry[T]) Register(event HookEvent, hook HookFunc[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

func (r *HookRegistry[T]) run(ctx context.Context, event HookEvent, item T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// CatalogService implements the shared CRUD flow for a catalog entity:
// validate, pre-hooks, transactional write with in-tx hooks, post-hooks.
type CatalogService[T entity.Validatable] struct {
	entityName string
	repo       CatalogRepository[T]
	txManager  tx.Manager
	hooks      *HookRegistry[T]
	log        *logger.Logger
}

// NewCatalogService creates a service for one entity type.
func NewCatalogService[T entity.Validatable](
	entityName string,
	repo CatalogRepository[T],
	txManager tx.Manager,
	log *logger.Logger,
) *CatalogService[T] {
	return &CatalogService[T]{
		entityName: entityName,
		repo:       repo,
		txManager:  txManager,
		hooks:      NewHookRegistry[T](),
		log:        log.WithComponent(entityName + "-service"),
	}
}

// Hooks exposes the registry for composition-time wiring.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// Create validates and persists a new entity.
func (s *CatalogService[T]) Create(ctx context.Context, item T) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}
	if err := s.hooks.run(ctx, BeforeCreate, item); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, item); err != nil {
			return err
		}
		return s.hooks.run(txCtx, OnCreateTx, item)
	})
	if err != nil {
		return err
	}

	s.runPost(ctx, AfterCreate, item)
	return nil
}

// GetByID fetches one entity.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	var zero T
	if id.IsNil(entityID) {
		return zero, apperror.Validation("id is required")
	}
	return s.repo.GetByID(ctx, entityID)
}

// Update validates and persists changes to an existing entity. The
// repository enforces optimistic locking on the entity version.
func (s *CatalogService[T]) Update(ctx context.Context, item T) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}
	if err := s.hooks.run(ctx, BeforeUpdate, item); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, item); err != nil {
			return err
		}
		return s.hooks.run(txCtx, OnUpdateTx, item)
	})
	if err != nil {
		return err
	}

	s.runPost(ctx, AfterUpdate, item)
	return nil
}

// Delete removes an entity. The pre-delete state is passed to hooks so
// they can record what was removed or release external resources.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	item, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return err
	}
	if err := s.hooks.run(ctx, BeforeDelete, item); err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, entityID); err != nil {
			return err
		}
		return s.hooks.run(txCtx, OnDeleteTx, item)
	})
	if err != nil {
		return err
	}

	s.runPost(ctx, AfterDelete, item)
	return nil
}

// List returns a page of entities.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (*ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists reports whether the entity exists.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}

// runPost runs after-commit hooks; their failures must not undo a
// committed write, so they are logged and swallowed.
func (s *CatalogService[T]) runPost(ctx context.Context, event HookEvent, item T) {
	if err := s.hooks.run(ctx, event, item); err != nil {
		s.log.WithContext(ctx).Errorw("post-commit hook failed",
			"event", string(event),
			"entity", s.entityName,
			"error", err,
		)
	}
}
