package main

import (
	"errors"
	"fmt"
	"time"

	"blogicum/pkg/config"
	"blogicum/pkg/database"
	"blogicum/pkg/logger"
	blogApp "blogicum/services/blog/internal/app"
	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a development database with users, categories, locations and posts
// in every publish state.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.Open(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if cfg.DBDriver == "sqlite" {
		if err := db.AutoMigrate(model.All()...); err != nil {
			log.Error("Failed to migrate sqlite database: %v", err)
			panic(err)
		}
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	repos := blogApp.NewRepositories(db)

	testUsers := []struct {
		email    string
		username string
		password string
	}{
		{"alice@test.com", "alice", "password123"},
		{"bob@test.com", "bob", "password123"},
		{"charlie@test.com", "charlie", "password123"},
	}

	userIDs := make([]string, 0, len(testUsers))
	for _, userData := range testUsers {
		existing, err := repos.Users.GetByUsername(userData.username)
		if err == nil {
			log.Info("User %s already exists, skipping", userData.username)
			userIDs = append(userIDs, existing.ID)
			continue
		}
		if !errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("failed to look up user %s: %w", userData.username, err)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		id := uuid.New().String()
		// The users table belongs to the auth service; write it by name.
		row := map[string]interface{}{
			"id":         id,
			"username":   userData.username,
			"email":      userData.email,
			"created_at": time.Now().UTC(),
		}
		if db.Migrator().HasColumn("users", "password_hash") {
			row["password_hash"] = string(hashedPassword)
		}
		err = db.Table("users").Create(row).Error
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.username, err)
		}

		log.Info("Created user: %s (%s)", userData.username, userData.email)
		userIDs = append(userIDs, id)
	}

	categories := []*entity.Category{
		{Title: "Travel", Description: "Trips and places", Slug: "travel", IsPublished: true},
		{Title: "Food", Description: "Recipes and restaurants", Slug: "food", IsPublished: true},
		{Title: "Drafts", Description: "Not ready for readers", Slug: "drafts", IsPublished: false},
	}
	for i, category := range categories {
		existing, err := repos.Categories.GetBySlug(category.Slug)
		if err == nil {
			categories[i] = existing
			continue
		}
		if err := repos.Categories.Create(category); err != nil {
			return err
		}
		log.Info("Created category: %s", category.Slug)
	}

	locations, err := repos.Locations.List(false)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		for _, name := range []string{"Moscow", "Saint Petersburg", "Kazan"} {
			location := &entity.Location{Name: name, IsPublished: name != "Kazan"}
			if err := repos.Locations.Create(location); err != nil {
				return err
			}
			locations = append(locations, location)
		}
	}

	existingPosts, err := repos.Posts.Count(entity.PostQuery{})
	if err != nil {
		return err
	}
	if existingPosts > 0 {
		log.Info("Posts already exist, skipping")
		return nil
	}

	now := time.Now().UTC()
	for i, authorID := range userIDs {
		posts := []*entity.Post{
			{Title: fmt.Sprintf("Live post %d", i+1), Text: "Visible to everyone.", PubDate: now.Add(-time.Duration(i+1) * time.Hour), IsPublished: true},
			{Title: fmt.Sprintf("Scheduled post %d", i+1), Text: "Goes live tomorrow.", PubDate: now.Add(24 * time.Hour), IsPublished: true},
			{Title: fmt.Sprintf("Draft %d", i+1), Text: "Only the author sees this.", PubDate: now.Add(-time.Hour), IsPublished: false},
			{Title: fmt.Sprintf("Hidden by category %d", i+1), Text: "The category is not published.", PubDate: now.Add(-time.Hour), IsPublished: true, CategoryID: &categories[2].ID},
		}
		posts[0].CategoryID = &categories[i%2].ID
		posts[0].LocationID = &locations[i%len(locations)].ID

		for _, post := range posts {
			post.AuthorID = authorID
			if err := repos.Posts.Create(post); err != nil {
				return err
			}
		}

		for j, commenterID := range userIDs {
			comment := &entity.Comment{
				Text:      fmt.Sprintf("Comment %d on %s", j+1, posts[0].Title),
				PostID:    posts[0].ID,
				AuthorID:  commenterID,
				CreatedAt: now.Add(time.Duration(j) * time.Minute),
			}
			if err := repos.Comments.Create(comment); err != nil {
				return err
			}
		}
		log.Info("Created %d posts for user %s", len(posts), authorID)
	}

	return nil
}
