package handlers

import (
	"go.uber.org/zap"

	"github.com/padraicbc/recipeapi/session"
	"github.com/padraicbc/recipeapi/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store    *store.Store
	sessions *session.Manager
	log      *zap.Logger
}

// New creates a Handler with the given entity store, session manager and logger.
func New(st *store.Store, sessions *session.Manager, log *zap.Logger) *Handler {
	return &Handler{store: st, sessions: sessions, log: log}
}
