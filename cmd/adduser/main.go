// cmd/adduser/main.go
// Creates a user, or resets the password of an existing one.
//
// Usage:
//
//	go run ./cmd/adduser -username ana -password secret1 [-bio "..."] [-image https://...]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/padraicbc/recipeapi/config"
	bundb "github.com/padraicbc/recipeapi/db"
	"github.com/padraicbc/recipeapi/models"
	"github.com/padraicbc/recipeapi/store"
)

func main() {
	username := flag.String("username", "", "username (required)")
	password := flag.String("password", "", "plain-text password (required)")
	bio := flag.String("bio", "", "profile bio (new users only)")
	image := flag.String("image", "", "profile image URL (new users only)")
	flag.Parse()

	if *username == "" || *password == "" {
		log.Fatal("both -username and -password are required")
	}

	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := bundb.Setup(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatal("create tables:", err)
	}

	st := store.New(db)
	action, err := saveUser(ctx, st, *username, *password, *bio, *image)
	if err != nil {
		log.Fatal("save user:", err)
	}

	fmt.Printf("user %q %s\n", *username, action)
}

func saveUser(ctx context.Context, st *store.Store, username, password, bio, image string) (string, error) {
	user, err := models.NewUser(username, password, bio, image)
	if err != nil {
		return "", err
	}

	existing, err := st.FindUserByUsername(ctx, user.Username)
	switch {
	case err == nil:
		return "password updated", st.ChangePassword(ctx, existing.ID, password)
	case !errors.Is(err, models.ErrNotFound):
		return "", err
	}

	return "created", st.CreateUser(ctx, user)
}
