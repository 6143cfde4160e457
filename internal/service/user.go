package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/logger"
	"github.com/dtroode/tastebite-server/internal/model"
	"github.com/dtroode/tastebite-server/internal/validation"
)

// User manages accounts. Users act on themselves; admins act on anyone and
// are the only ones who may change a role.
type User struct {
	stores model.Transactor
	logger *logger.Logger
}

func NewUser(stores model.Transactor, logger *logger.Logger) *User {
	return &User{stores: stores, logger: logger}
}

// ListAll returns every user. Admin only.
func (s *User) ListAll(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.User], error) {
	users := s.stores.Users()
	caller, err := users.GetByID(ctx, callerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Page[model.User]{}, model.ErrNotAuthorized
	}
	if err != nil {
		return model.Page[model.User]{}, fmt.Errorf("load caller: %w", err)
	}
	if !caller.IsAdmin() {
		s.logger.Info("User service: non-admin listed users", "user_id", callerID.String())
		return model.Page[model.User]{}, model.ErrForbidden
	}

	items, total, err := users.List(ctx, p)
	if err != nil {
		s.logger.Error("User service: failed to list users", "error", err.Error())
		return model.Page[model.User]{}, fmt.Errorf("list users: %w", err)
	}
	return model.NewPage(items, total, p), nil
}

func (s *User) GetSelf(ctx context.Context, callerID uuid.UUID) (model.User, error) {
	return s.stores.Users().GetByID(ctx, callerID)
}

// Update applies the supplied profile fields. A role sent by a non-admin is
// ignored.
func (s *User) Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.User, error) {
	updated, err := withinTx(ctx, s.stores, s.logger, "User service: update", func(uow model.UnitOfWork) (model.User, error) {
		users := uow.Users()
		target, caller, err := s.authorize(ctx, users, callerID, id)
		if err != nil {
			return model.User{}, err
		}

		if !caller.IsAdmin() {
			fields = withoutRole(fields)
		}
		valid, err := validation.User.ValidateAll(fields, true)
		if err != nil {
			return model.User{}, err
		}
		if err := checkUnique(ctx, users, valid, target.ID); err != nil {
			return model.User{}, err
		}

		applyUser(&target, valid)
		return users.Update(ctx, target)
	})
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info("User service: user updated", "user_id", id.String(), "by", callerID.String())
	return updated, nil
}

// Delete removes the account and, through cascades, everything it owns.
func (s *User) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	_, err := withinTx(ctx, s.stores, s.logger, "User service: delete", func(uow model.UnitOfWork) (struct{}, error) {
		users := uow.Users()
		if _, _, err := s.authorize(ctx, users, callerID, id); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("User service: user deleted", "user_id", id.String(), "by", callerID.String())
	return nil
}

// authorize loads the target first so a missing user is reported before
// the permission check.
func (s *User) authorize(ctx context.Context, users model.UserStore, callerID, id uuid.UUID) (target, caller model.User, err error) {
	target, err = users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, model.User{}, err
	}
	if callerID == id {
		return target, target, nil
	}

	caller, err = users.GetByID(ctx, callerID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.User{}, model.ErrNotAuthorized
	}
	if err != nil {
		return model.User{}, model.User{}, err
	}
	if !caller.IsAdmin() {
		return model.User{}, model.User{}, model.ErrNotAuthorized
	}
	return target, caller, nil
}

func applyUser(u *model.User, fields model.Fields) {
	for name, v := range fields {
		switch name {
		case "username":
			u.Username = v.(string)
		case "email":
			u.Email = v.(string)
		case "image_url":
			u.ImageURL = v.(string)
		case "role":
			u.Role = v.(model.Role)
		}
	}
}

func withoutRole(fields model.Fields) model.Fields {
	if _, ok := fields["role"]; !ok {
		return fields
	}
	out := make(model.Fields, len(fields))
	for k, v := range fields {
		if k != "role" {
			out[k] = v
		}
	}
	return out
}
