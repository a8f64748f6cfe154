package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/padraicbc/recipeapi/models"
)

// Counts reports how many rows Copy moved per table.
type Counts struct {
	Users   int
	Recipes int
}

// Copy moves every user and recipe from src into dst in one transaction on
// dst, keeping ids and password hashes. Sessions are not copied. dst must
// already have its tables and must not contain conflicting ids.
func Copy(ctx context.Context, src, dst *bun.DB, batchSize int) (Counts, error) {
	var n Counts

	err := dst.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if n.Users, err = copyTable[models.User](ctx, src, tx, batchSize); err != nil {
			return fmt.Errorf("users: %w", err)
		}
		if n.Recipes, err = copyTable[models.Recipe](ctx, src, tx, batchSize); err != nil {
			return fmt.Errorf("recipes: %w", err)
		}
		return nil
	})
	if err != nil {
		return Counts{}, err
	}

	if dst.Dialect().Name() == dialect.PG {
		if err := resetSequences(ctx, dst); err != nil {
			return n, err
		}
	}
	return n, nil
}

func copyTable[T any](ctx context.Context, src, dst bun.IDB, batchSize int) (int, error) {
	total := 0
	for {
		var batch []T
		err := src.NewSelect().Model(&batch).
			OrderExpr("id ASC").
			Limit(batchSize).
			Offset(total).
			Scan(ctx)
		if err != nil {
			return total, err
		}
		if len(batch) == 0 {
			return total, nil
		}

		if _, err := dst.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return total, err
		}
		total += len(batch)
		if len(batch) < batchSize {
			return total, nil
		}
	}
}

// resetSequences moves PostgreSQL id sequences past the copied ids.
func resetSequences(ctx context.Context, db *bun.DB) error {
	for _, table := range []string{"users", "recipes"} {
		_, err := db.ExecContext(ctx,
			"SELECT setval(pg_get_serial_sequence(?, 'id'), COALESCE((SELECT MAX(id) FROM ?), 1))",
			table, bun.Ident(table),
		)
		if err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return nil
}
