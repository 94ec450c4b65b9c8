package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/registry/internal/clock"
	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/querysql"
	"github.com/roach88/registry/internal/store"
)

// Service runs registry workflows against a store.
//
// Thread-safety: a Service holds no mutable state of its own; concurrent
// calls are serialized by the store's single connection.
type Service struct {
	store    *store.Store
	clock    clock.Clock
	ids      IDGenerator
	log      *slog.Logger
	compiler *querysql.SQLCompiler
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for "today". Default: clock.System{}.
func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = c
	}
}

// WithIDGenerator sets the person id generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		s.ids = g
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// New creates a Service over an open store.
func New(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store:    st,
		clock:    clock.System{},
		ids:      UUIDv7Generator{},
		log:      slog.Default(),
		compiler: querysql.NewSQLCompiler(sources...),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the current calendar date as seen by the Service's clock.
func (s *Service) Today() time.Time {
	return clock.Today(s.clock)
}

// inTx runs fn in one transaction and translates store failures that fn
// did not already map to a domain error.
func (s *Service) inTx(ctx context.Context, fn func(tx *store.Tx) error) error {
	err := s.store.InTx(ctx, fn)
	if err == nil {
		return nil
	}
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}
	if errors.Is(err, store.ErrConflict) {
		return domain.NewIntegrityError("write rejected by the store", err)
	}
	return err
}

// notFound maps store.ErrNotFound to a domain not-found error for kind/key.
func notFound(err error, kind string, key any) error {
	if errors.Is(err, store.ErrNotFound) {
		return domain.NewNotFoundError(kind, key)
	}
	return err
}

// authorize rejects actors whose role may not run workflow.
func authorize(actor domain.User, role domain.Role, workflow string) error {
	if actor.Role != role {
		return domain.NewUnauthorizedError(actor.Role, workflow)
	}
	return nil
}

// wrap prefixes a non-domain error with the workflow name.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var derr *domain.Error
	if errors.As(err, &derr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
