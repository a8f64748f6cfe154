package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Session maps an opaque token to the user it authenticates.
// It carries no foreign key so a session can outlive its user.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	Token     string    `bun:"token,pk,type:varchar(64)"`
	UserID    int       `bun:"user_id,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
}
