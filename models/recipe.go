package models

import "github.com/uptrace/bun"

// Recipe is owned by exactly one user.
type Recipe struct {
	bun.BaseModel `bun:"table:recipes,alias:r"`

	ID                int    `bun:"id,pk,autoincrement" json:"id"`
	Title             string `bun:"title,notnull" json:"title"`
	Instructions      string `bun:"instructions,notnull,type:text" json:"instructions"`
	MinutesToComplete *int   `bun:"minutes_to_complete" json:"minutes_to_complete"`
	UserID            int    `bun:"user_id,notnull" json:"user_id"`
}

// NewRecipe builds a validated recipe owned by userID.
func NewRecipe(title, instructions string, minutes *int, userID int) (*Recipe, error) {
	r := &Recipe{}
	for _, set := range []func() error{
		func() error { return r.SetTitle(title) },
		func() error { return r.SetInstructions(instructions) },
		func() error { return r.SetMinutesToComplete(minutes) },
		func() error { return r.SetUserID(userID) },
	} {
		if err := set(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recipe) SetTitle(value string) error {
	v, err := ValidateTitle(value)
	if err != nil {
		return err
	}
	r.Title = v
	return nil
}

func (r *Recipe) SetInstructions(value string) error {
	v, err := ValidateInstructions(value)
	if err != nil {
		return err
	}
	r.Instructions = v
	return nil
}

func (r *Recipe) SetMinutesToComplete(value *int) error {
	v, err := ValidateMinutes(value)
	if err != nil {
		return err
	}
	r.MinutesToComplete = v
	return nil
}

func (r *Recipe) SetUserID(value int) error {
	v, err := ValidateUserID(value)
	if err != nil {
		return err
	}
	r.UserID = v
	return nil
}

// Validate re-runs every field rule on the whole record.
func (r *Recipe) Validate() error {
	if err := r.SetTitle(r.Title); err != nil {
		return err
	}
	if err := r.SetInstructions(r.Instructions); err != nil {
		return err
	}
	if err := r.SetMinutesToComplete(r.MinutesToComplete); err != nil {
		return err
	}
	return r.SetUserID(r.UserID)
}
