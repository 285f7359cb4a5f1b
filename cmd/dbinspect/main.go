package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/raymondchung216/instacook/internal/domain"
)

// Opens the database read-only and prints entity counts plus a sample of
// recipes, so denormalized state (tag links, comment links, liker sets) can
// be eyeballed without going through the API.
func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/InstaCook/data/db")
	}

	opts := badger.DefaultOptions(dbPath).
		WithReadOnly(true).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	userCount := countPrefix(db, "user:")
	tagCount := countPrefix(db, "tag:")
	commentCount := countPrefix(db, "comment:")
	sessionCount := countPrefix(db, "session:")

	recipeCount := 0
	totalLikes := 0
	totalComments := 0
	shown := 0

	err = db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte("recipe:")
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			key := string(item.Key())

			// Secondary index keys share the entity prefix
			if strings.HasPrefix(key, "recipe:idx:") {
				continue
			}

			err := item.Value(func(val []byte) error {
				var recipe domain.Recipe
				if err := json.Unmarshal(val, &recipe); err != nil {
					return err
				}

				recipeCount++
				totalLikes += len(recipe.Likers)
				totalComments += len(recipe.CommentIDs)

				if shown < 5 {
					shown++
					fmt.Printf("Recipe: %s\n", recipe.Title)
					fmt.Printf("  ID: %s\n", recipe.ID)
					fmt.Printf("  Contributor: %s\n", recipe.ContributorID)
					fmt.Printf("  Tags: %d  Comments: %d  Likes: %d\n",
						len(recipe.TagIDs), len(recipe.CommentIDs), len(recipe.Likers))
					if len(recipe.Likers) > 0 {
						fmt.Printf("  Liked by: %v\n", recipe.Likers)
					}
					fmt.Println()
				}
				return nil
			})
			if err != nil {
				log.Printf("Error reading recipe %s: %v", key, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Error iterating database: %v", err)
	}

	fmt.Println("=== Summary ===")
	fmt.Printf("Users:    %d\n", userCount)
	fmt.Printf("Recipes:  %d\n", recipeCount)
	fmt.Printf("Tags:     %d\n", tagCount)
	fmt.Printf("Comments: %d\n", commentCount)
	fmt.Printf("Sessions: %d\n", sessionCount)
	if recipeCount > 0 {
		fmt.Printf("Average likes per recipe: %.1f\n", float64(totalLikes)/float64(recipeCount))
		fmt.Printf("Average comments per recipe: %.1f\n", float64(totalComments)/float64(recipeCount))
	}
}

func countPrefix(db *badger.DB, prefix string) int {
	count := 0
	_ = db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = []byte(prefix)
		iterOpts.PrefetchValues = false
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if strings.HasPrefix(string(it.Item().Key()), prefix+"idx:") {
				continue
			}
			count++
		}
		return nil
	})
	return count
}
