package main

import (
	"log"
	"os"

	"bookmark-reorder-be/internal/model"
	"bookmark-reorder-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo user and bookmark tree...")

	email := "demo@example.com"
	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		color.Yellow("User '%s' already exists, skipping...", email)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash password:", err)
	}

	user := model.User{
		Id:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     "Demo User",
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Error: Failed to create user:", err)
	}
	color.Green("Created user: %s", email)

	root := model.Bookmark{
		Id:     uuid.New(),
		UserId: user.Id,
		Kind:   "container",
		Title:  "Bookmarks",
	}
	if err := db.Create(&root).Error; err != nil {
		log.Fatal("Error: Failed to create root container:", err)
	}

	work := model.Bookmark{
		Id:       uuid.New(),
		ParentId: &root.Id,
		UserId:   user.Id,
		Kind:     "container",
		Position: 0,
		Title:    "Work",
	}
	reading := model.Bookmark{
		Id:       uuid.New(),
		ParentId: &root.Id,
		UserId:   user.Id,
		Kind:     "container",
		Position: 1,
		Title:    "Reading List",
	}
	for _, b := range []*model.Bookmark{&work, &reading} {
		if err := db.Create(b).Error; err != nil {
			log.Fatal("Error: Failed to create container:", err)
		}
		color.Green("Created container: %s", b.Title)
	}

	items := []model.Bookmark{
		{ParentId: &work.Id, Position: 0, Title: "Issue Tracker", Url: strPtr("https://issues.example.com")},
		{ParentId: &work.Id, Position: 1, Title: "CI Dashboard", Url: strPtr("https://ci.example.com")},
		{ParentId: &work.Id, Position: 2, Title: "Team Wiki", Url: strPtr("https://wiki.example.com")},
		{ParentId: &reading.Id, Position: 0, Title: "Go Blog", Url: strPtr("https://go.dev/blog")},
		{ParentId: &reading.Id, Position: 1, Title: "Effective Go", Url: strPtr("https://go.dev/doc/effective_go")},
		{ParentId: &root.Id, Position: 2, Title: "Webmail", Url: strPtr("https://mail.example.com")},
	}
	for _, item := range items {
		item.Id = uuid.New()
		item.UserId = user.Id
		item.Kind = "item"
		if err := db.Create(&item).Error; err != nil {
			log.Fatal("Error: Failed to create bookmark:", err)
		}
		color.Green("Created bookmark: %s", item.Title)
	}

	color.Cyan("Seeding completed!")
}

func strPtr(s string) *string {
	return &s
}
