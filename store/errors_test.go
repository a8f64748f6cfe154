package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/recipeapi/db/dbtest"
	"github.com/padraicbc/recipeapi/models"
)

func TestTranslateDriverErrors(t *testing.T) {
	ctx := context.Background()
	bdb := dbtest.Open(t)

	u, err := models.NewUser("ana", "pw", "", "")
	require.NoError(t, err)
	_, err = bdb.NewInsert().Model(u).Exec(ctx)
	require.NoError(t, err)

	dup, err := models.NewUser("ana", "pw", "", "")
	require.NoError(t, err)
	_, err = bdb.NewInsert().Model(dup).Exec(ctx)
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
	assert.EqualError(t, translate("create user", err), "Username is already taken.")

	r, err := models.NewRecipe("Soup", strings.Repeat("x", 50), nil, u.ID+1)
	require.NoError(t, err)
	_, err = bdb.NewInsert().Model(r).Exec(ctx)
	require.Error(t, err)
	assert.True(t, isForeignKeyViolation(err))
	assert.EqualError(t, translate("create recipe", err), "Recipe must belong to an existing user.")

	other := errors.New("disk full")
	var pe *models.PersistenceError
	require.ErrorAs(t, translate("op", other), &pe)
	assert.ErrorIs(t, pe, other)
	assert.NoError(t, translate("op", nil))
}
