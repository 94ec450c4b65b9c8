package registry

import (
	"context"
	"errors"
	"slices"

	"github.com/roach88/registry/internal/domain"
	"github.com/roach88/registry/internal/queryir"
	"github.com/roach88/registry/internal/store"
	"github.com/roach88/registry/internal/validate"
)

// Login checks a user id and password and returns the matching user.
// Credentials are compared as stored; they are not hashed.
func (s *Service) Login(ctx context.Context, uid, pwd string) (domain.User, error) {
	if _, err := validate.Credential("user id", uid); err != nil {
		return domain.User{}, err
	}
	if _, err := validate.Credential("password", pwd); err != nil {
		return domain.User{}, err
	}

	u, err := s.store.FindUser(ctx, uid, pwd)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Warn("login rejected", "uid", uid)
		return domain.User{}, &domain.Error{Code: domain.CodeNotFound, Message: "invalid login credentials"}
	}
	if err != nil {
		return domain.User{}, wrap("login", err)
	}

	s.log.Info("login", "uid", u.UID, "role", string(u.Role))
	return u, nil
}

// List returns every row of a listing table, optionally filtered.
// The table must be one of ListTables.
func (s *Service) List(ctx context.Context, table string, where ...queryir.Predicate) (store.Table, error) {
	if !slices.Contains(ListTables, table) {
		return store.Table{}, domain.NewValidationError("table", "unknown table "+table)
	}
	src, _ := s.compiler.Source(table)

	sqlText, params, err := s.compiler.Compile(queryir.Select{
		From:   table,
		Fields: src.Fields(),
		Filter: queryir.Where(where...),
	})
	if err != nil {
		return store.Table{}, domain.NewValidationError("filter", err.Error())
	}

	t, err := s.store.ReadTable(ctx, sqlText, params...)
	if err != nil {
		return store.Table{}, wrap("list "+table, err)
	}
	return t, nil
}
