package main

import (
	"log"
	"os"
	"time"

	"babyname-be/internal/entity"
	"babyname-be/internal/model"
	"babyname-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a handful of favorites so a fresh database has something to render.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	favorites := []model.Favorite{
		{
			Id:      uuid.New(),
			Name:    "Ava",
			Gender:  entity.GenderGirl,
			Theme:   "classic",
			Owner:   entity.GuestOwner,
			Meaning: "Life, living one",
			Origin:  "Latin",
		},
		{
			Id:      uuid.New(),
			Name:    "Rowan",
			Gender:  entity.GenderNeutral,
			Theme:   "nature",
			Owner:   entity.GuestOwner,
			Meaning: "Little red one, rowan tree",
			Origin:  "Irish",
		},
		{
			Id:      uuid.New(),
			Name:    "Ash",
			Gender:  entity.GenderBoy,
			Theme:   "nature",
			Owner:   entity.GuestOwner,
			Meaning: "Ash tree, symbol of resilience",
			Origin:  "English",
		},
	}

	for i := range favorites {
		favorites[i].CreatedAt = time.Now().Add(-time.Duration(i) * time.Minute)
		if err := db.Create(&favorites[i]).Error; err != nil {
			log.Printf("Warn: Failed to seed favorite %q: %v", favorites[i].Name, err)
			continue
		}
		log.Printf("Seeded favorite %q", favorites[i].Name)
	}

	log.Println("Seeding completed.")
}
