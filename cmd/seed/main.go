// Package main provides a tool to seed the database with test data.
//
// It creates a handful of users with a small follow graph, recipes with tags,
// and some likes and comments, so feed and search features have something to
// show during development.
//
// Usage:
//
//	DB_PATH=~/InstaCook/data/db go run ./cmd/seed
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/raymondchung216/instacook/internal/auth"
	"github.com/raymondchung216/instacook/internal/domain"
	"github.com/raymondchung216/instacook/internal/dto"
	"github.com/raymondchung216/instacook/internal/errors"
	"github.com/raymondchung216/instacook/internal/id"
	"github.com/raymondchung216/instacook/internal/service"
	"github.com/raymondchung216/instacook/internal/store"
)

var seedPassword = flag.String("password", "password1234", "Password for all seeded users")

type seedUser struct {
	username    string
	email       string
	displayName string
	follows     []string
}

type seedRecipe struct {
	contributor string
	title       string
	content     string
	tags        []string
}

var seedUsers = []seedUser{
	{"alice", "alice@example.com", "Alice", []string{"bob", "carol"}},
	{"bob", "bob@example.com", "Bob", []string{"alice"}},
	{"carol", "carol@example.com", "Carol", []string{"alice", "bob", "dave"}},
	{"dave", "dave@example.com", "Dave", nil},
}

var seedRecipes = []seedRecipe{
	{"alice", "Blueberry Pancakes", "Whisk flour, milk and eggs, fold in blueberries, fry until golden.", []string{"breakfast", "sweet"}},
	{"alice", "Shakshuka", "Simmer tomatoes with paprika and cumin, crack eggs on top, cover until set.", []string{"breakfast", "vegetarian"}},
	{"bob", "Midnight Ramen", "Char the aromatics, build a quick shoyu tare, finish with a soft egg.", []string{"dinner", "noodles"}},
	{"carol", "Street Tacos", "Marinate the meat overnight, sear hard, serve on double corn tortillas.", []string{"dinner", "mexican"}},
	{"dave", "Green Curry", "Fry the paste in coconut cream until it splits, then add vegetables.", []string{"dinner", "vegan"}},
}

var seedComments = []string{
	"Made this last night, fantastic!",
	"Needs more salt for my taste but solid base.",
	"My whole family loved it.",
	"Subbed tofu and it still worked great.",
}

func main() {
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/InstaCook/data/db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.New(store.Options{Path: dbPath, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	enricher := dto.NewEnricher(s)
	recipes := service.NewRecipeService(s, enricher, nil, logger)
	comments := service.NewCommentService(s, logger)
	social := service.NewSocialService(s, logger)

	users := createUsers(ctx, s)

	for _, su := range seedUsers {
		for _, target := range su.follows {
			if err := social.Follow(ctx, users[su.username].ID, target); err != nil {
				log.Fatalf("Failed to follow %s -> %s: %v", su.username, target, err)
			}
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	created := 0
	for _, sr := range seedRecipes {
		view, err := recipes.CreateRecipe(ctx, users[sr.contributor].ID, service.CreateRecipeInput{
			Title:   sr.title,
			Content: sr.content,
			Tags:    sr.tags,
		})
		if err != nil {
			log.Fatalf("Failed to create recipe %q: %v", sr.title, err)
		}
		created++

		// A few random likes and comments from other users
		for _, su := range seedUsers {
			if su.username == sr.contributor {
				continue
			}
			if rng.Intn(2) == 0 {
				if err := recipes.ToggleLike(ctx, su.username, view.ID); err != nil {
					log.Fatalf("Failed to like recipe %q: %v", sr.title, err)
				}
			}
			if rng.Intn(3) == 0 {
				text := seedComments[rng.Intn(len(seedComments))]
				if _, err := comments.AddComment(ctx, su.username, view.ID, text); err != nil {
					log.Fatalf("Failed to comment on recipe %q: %v", sr.title, err)
				}
			}
		}
	}

	fmt.Printf("Seeded %d users and %d recipes\n", len(seedUsers), created)
}

func createUsers(ctx context.Context, s *store.Store) map[string]*domain.User {
	hash, err := auth.HashPassword(*seedPassword)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := make(map[string]*domain.User, len(seedUsers))
	for _, su := range seedUsers {
		existing, err := s.GetUserByUsername(ctx, su.username)
		if err == nil {
			fmt.Printf("User %s already exists, skipping\n", su.username)
			users[su.username] = existing
			continue
		}
		if !errors.Is(err, errors.ErrNotFound) {
			log.Fatalf("Failed to look up user %s: %v", su.username, err)
		}

		now := time.Now()
		user := &domain.User{
			ID:           id.MustGenerate(id.PrefixUser),
			Username:     su.username,
			Email:        su.email,
			DisplayName:  su.displayName,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.username, err)
		}
		fmt.Printf("Created user %s (password: %s)\n", su.username, *seedPassword)
		users[su.username] = user
	}
	return users
}
