// Package store persists users and recipes.
//
// Every write runs in a single transaction: the record is validated, applied
// and committed, or rolled back and nothing is written.
package store

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/padraicbc/recipeapi/auth"
	"github.com/padraicbc/recipeapi/models"
)

// Store is the entity store backed by a bun database.
type Store struct {
	db *bun.DB
}

// New creates a Store on db. Tables must already exist (see db.CreateTables).
func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// CreateUser validates and inserts u, filling u.ID. A user without a password
// hash gets the default password.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if !u.Password.IsSet() {
		if err := u.SetPassword(auth.DefaultPassword); err != nil {
			return err
		}
	}
	u.ApplyDefaults()

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		taken, err := tx.NewSelect().Model((*models.User)(nil)).
			Where("username = ?", u.Username).
			Exists(ctx)
		if err != nil {
			return err
		}
		if taken {
			return errUsernameTaken()
		}

		_, err = tx.NewInsert().Model(u).Exec(ctx)
		return err
	})
	if err != nil {
		u.ID = 0
	}
	return translate("create user", err)
}

// FindUserByID returns models.ErrNotFound when no user has id.
func (s *Store) FindUserByID(ctx context.Context, id int) (*models.User, error) {
	u := &models.User{}
	err := s.db.NewSelect().Model(u).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, translate("find user", err)
	}
	return u, nil
}

// FindUserByUsername returns models.ErrNotFound when no user has username.
func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{}
	err := s.db.NewSelect().Model(u).
		Where("username = ?", username).
		Scan(ctx)
	if err != nil {
		return nil, translate("find user", err)
	}
	return u, nil
}

// DeleteUser removes the user and every recipe it owns.
func (s *Store) DeleteUser(ctx context.Context, id int) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Recipe)(nil)).
			Where("user_id = ?", id).
			Exec(ctx); err != nil {
			return err
		}

		res, err := tx.NewDelete().Model((*models.User)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	return translate("delete user", err)
}

// CreateRecipe validates and inserts r, filling r.ID. The owner must exist.
func (s *Store) CreateRecipe(ctx context.Context, r *models.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		owned, err := tx.NewSelect().Model((*models.User)(nil)).
			Where("id = ?", r.UserID).
			Exists(ctx)
		if err != nil {
			return err
		}
		if !owned {
			return errOwnerMissing()
		}

		_, err = tx.NewInsert().Model(r).Exec(ctx)
		return err
	})
	if err != nil {
		r.ID = 0
	}
	return translate("create recipe", err)
}

// ListRecipesForUser returns the user's recipes in creation order. It returns
// an empty slice for unknown users.
func (s *Store) ListRecipesForUser(ctx context.Context, userID int) ([]*models.Recipe, error) {
	recipes := make([]*models.Recipe, 0)
	err := s.db.NewSelect().Model(&recipes).
		Where("user_id = ?", userID).
		OrderExpr("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, translate("list recipes", err)
	}
	return recipes, nil
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ChangePassword replaces the password hash of user id.
func (s *Store) ChangePassword(ctx context.Context, id int, password string) error {
	u := &models.User{ID: id}
	if err := u.SetPassword(password); err != nil {
		return err
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.NewUpdate().Model(u).
			Column("password_hash").
			WherePK().
			Exec(ctx)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return models.ErrNotFound
		}
		return nil
	})
	return translate("change password", err)
}
