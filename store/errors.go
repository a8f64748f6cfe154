package store

import (
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/padraicbc/recipeapi/models"
)

// SQLSTATE and MySQL error numbers for the constraint violations we translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry = 1062
	mysqlNoReferenced   = 1452
)

func errUsernameTaken() error {
	return &models.ValidationError{Field: "username", Message: "Username is already taken."}
}

func errOwnerMissing() error {
	return &models.ValidationError{Field: "user_id", Message: "Recipe must belong to an existing user."}
}

// translate maps driver errors onto the models error taxonomy.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case models.IsValidation(err), errors.Is(err, models.ErrNotFound):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return models.ErrNotFound
	case isUniqueViolation(err):
		return errUsernameTaken()
	case isForeignKeyViolation(err):
		return errOwnerMissing()
	}
	return &models.PersistenceError{Op: op, Err: err}
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgUniqueViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == pgForeignKeyViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoReferenced
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
