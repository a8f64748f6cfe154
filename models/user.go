package models

import (
	"github.com/uptrace/bun"

	"github.com/padraicbc/recipeapi/auth"
)

// Defaults applied to users created without an image or bio.
const (
	DefaultImageURL = "https://cdn.iconscout.com/icon/free/png-256/avatar-372-456324-screenshot_4.jpg"
	DefaultBio      = "New user signed up!"
)

// User is an account that owns recipes. The password hash is write-only.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int               `bun:"id,pk,autoincrement" json:"id"`
	Username string            `bun:"username,notnull,unique" json:"username"`
	Password auth.PasswordHash `bun:"password_hash,notnull,type:varchar(255)" json:"-"`
	ImageURL string            `bun:"image_url" json:"image_url"`
	Bio      string            `bun:"bio" json:"bio"`

	Recipes []*Recipe `bun:"rel:has-many,join:id=user_id" json:"-"`
}

// NewUser builds a validated user, applying the default image, bio and,
// when password is empty, the default password.
func NewUser(username, password, bio, imageURL string) (*User, error) {
	u := &User{ImageURL: imageURL, Bio: bio}
	if err := u.SetUsername(username); err != nil {
		return nil, err
	}
	if password == "" {
		password = auth.DefaultPassword
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	u.ApplyDefaults()
	return u, nil
}

// SetUsername validates and assigns the trimmed username.
func (u *User) SetUsername(value string) error {
	v, err := ValidateUsername(value)
	if err != nil {
		return err
	}
	u.Username = v
	return nil
}

// SetPassword hashes and stores password.
func (u *User) SetPassword(password string) error {
	p, err := auth.NewPasswordHash(password)
	if err != nil {
		return invalid("password", "Password must be present.")
	}
	u.Password = p
	return nil
}

// Authenticate reports whether password matches the stored hash.
func (u *User) Authenticate(password string) bool {
	return u.Password.Verify(password)
}

// ApplyDefaults fills an empty image URL and bio.
func (u *User) ApplyDefaults() {
	if u.ImageURL == "" {
		u.ImageURL = DefaultImageURL
	}
	if u.Bio == "" {
		u.Bio = DefaultBio
	}
}

// Validate re-runs every field rule on the whole record.
func (u *User) Validate() error {
	return u.SetUsername(u.Username)
}
