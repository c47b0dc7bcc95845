package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dogbook/internal/cache"
	"dogbook/internal/config"
	"dogbook/internal/db"
	"dogbook/internal/model"
	"dogbook/internal/repository"
	"dogbook/internal/service"
)

// Demo fixtures for local development. The seeder is idempotent: existing
// rows are left alone.
var demoUsers = []struct {
	UserName string
	Email    string
	Password string
}{
	{UserName: "alice", Email: "alice@example.com", Password: "password1"},
	{UserName: "bob", Email: "bob@example.com", Password: "password2"},
}

var demoPosts = []struct {
	OwnerEmail string
	Title      string
	Content    string
	AgeValue   string
	ImageURL   string
}{
	{
		OwnerEmail: "alice@example.com",
		Title:      "First walk",
		Content:    "Our puppy survived his first walk around the block.",
		AgeValue:   "puppy",
		ImageURL:   "https://images.dog.ceo/breeds/shiba/shiba-1.jpg",
	},
	{
		OwnerEmail: "bob@example.com",
		Title:      "Nap champion",
		Content:    "Twelve years old and still the best napper in the house.",
		AgeValue:   "senior",
		ImageURL:   "https://images.dog.ceo/breeds/retriever-golden/n02099601_100.jpg",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Age{}, &model.User{}, &model.Post{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	ageRepo := repository.NewAgeRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	ageService := service.NewAgeService(ageRepo, cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
	if err := ageService.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed ages: %v", err)
	}
	log.Println("Age reference data seeded")

	ages, err := ageRepo.ListBySortOrder(ctx)
	if err != nil {
		log.Fatalf("Failed to list ages: %v", err)
	}
	ageByValue := make(map[string]uint, len(ages))
	for _, age := range ages {
		ageByValue[age.Value] = age.ID
	}

	created := 0
	for _, du := range demoUsers {
		existing, err := userRepo.FindByEmail(ctx, du.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to check user %s: %v", du.Email, err)
		}
		if existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(du.Password), cfg.BcryptCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{UserName: du.UserName, Email: du.Email, PasswordHash: string(hash)}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", du.Email, err)
		}
		created++
	}
	log.Printf("Demo users created: %d", created)

	posts, err := postRepo.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list posts: %v", err)
	}
	if len(posts) > 0 {
		log.Println("Posts already present, skipping demo posts")
		return
	}

	created = 0
	for _, dp := range demoPosts {
		owner, err := userRepo.FindByEmail(ctx, dp.OwnerEmail)
		if err != nil {
			log.Fatalf("Failed to resolve owner %s: %v", dp.OwnerEmail, err)
		}
		ageID, ok := ageByValue[dp.AgeValue]
		if !ok {
			log.Fatalf("Unknown age value %q", dp.AgeValue)
		}
		ownerID := owner.ID
		post := &model.Post{
			UserID:   &ownerID,
			Title:    dp.Title,
			Content:  dp.Content,
			AgeID:    ageID,
			ImageURL: dp.ImageURL,
		}
		if err := postRepo.Create(ctx, post); err != nil {
			log.Fatalf("Failed to create post %q: %v", dp.Title, err)
		}
		created++
	}
	log.Printf("Seed completed successfully! Demo posts created: %d", created)
}
