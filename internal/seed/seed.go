// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"context"
	"fmt"
	"log"

	"tourit/internal/cache"
	"tourit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var referenceCountries = []models.Country{
	{ID: 1, Name: "United States", Code: "US"},
	{ID: 2, Name: "Canada", Code: "CA"},
	{ID: 3, Name: "Mexico", Code: "MX"},
	{ID: 4, Name: "United Kingdom", Code: "GB"},
	{ID: 5, Name: "France", Code: "FR"},
	{ID: 6, Name: "Japan", Code: "JP"},
	{ID: 7, Name: "Italy", Code: "IT"},
	{ID: 8, Name: "Greece", Code: "GR"},
}

var referenceCategories = []models.Category{
	{ID: 1, Name: "Recommendations"},
	{ID: 2, Name: "Questions"},
	{ID: 3, Name: "Travel Stories"},
	{ID: 4, Name: "Tips & Tricks"},
	{ID: 5, Name: "Food & Drink"},
}

var referenceTags = []models.Tag{
	{ID: 1, Name: "Budget Travel"},
	{ID: 2, Name: "Luxury Travel"},
	{ID: 3, Name: "Adventure"},
	{ID: 4, Name: "Relaxation"},
	{ID: 5, Name: "Hiking"},
	{ID: 6, Name: "Beaches"},
	{ID: 7, Name: "City Break"},
	{ID: 8, Name: "Culture"},
	{ID: 9, Name: "Nightlife"},
}

// EnsureReferenceData upserts the canonical countries, categories and tags.
// Safe to run on every startup; existing rows are left untouched.
func EnsureReferenceData(db *gorm.DB) error {
	onConflict := clause.OnConflict{DoNothing: true}

	if err := db.Clauses(onConflict).Create(&referenceCountries).Error; err != nil {
		return fmt.Errorf("failed to seed countries: %w", err)
	}
	if err := db.Clauses(onConflict).Create(&referenceCategories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	if err := db.Clauses(onConflict).Create(&referenceTags).Error; err != nil {
		return fmt.Errorf("failed to seed tags: %w", err)
	}

	// Reference lists may be cached from a previous run.
	cache.InvalidateReferenceData(context.Background())
	return nil
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := EnsureReferenceData(db); err != nil {
		return err
	}
	log.Printf("Reference data in place (%d countries, %d categories, %d tags)",
		len(referenceCountries), len(referenceCategories), len(referenceTags))

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d demo users created", len(users))

	posts, err := f.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d demo posts created", len(posts))

	comments, err := f.CreateComments(users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("%d demo comments created", len(comments))

	if err := f.CreateVotes(users, posts, comments); err != nil {
		return fmt.Errorf("failed to create votes: %w", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// clearData removes demo content while keeping reference data.
// Deletion order respects foreign keys.
func clearData(db *gorm.DB) error {
	tables := []string{
		"comment_votes", "votes", "comments",
		"post_categories", "post_tags", "posts", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}
