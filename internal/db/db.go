package db

import (
	"log"
	"os"

	"freedomwall/internal/models"
	"freedomwall/internal/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=freedomwall port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	// Auto Migrate
	err = DB.AutoMigrate(
		&models.Note{},
		&models.Comment{},
		&models.BlogPost{},
		&models.Reaction{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedWelcomeNote()
}

// seedWelcomeNote 首次启动时在空墙上放一张置顶的欢迎便签
func seedWelcomeNote() {
	var count int64
	DB.Model(&models.Note{}).Count(&count)
	if count > 0 {
		return
	}

	note := models.Note{
		Nid:      utils.RandID(8),
		Title:    "欢迎来到留言墙",
		Content:  "随便写点什么吧，可以匿名，也可以留下名字。",
		IsAdmin:  true,
		Color:    "yellow",
		IsPinned: true,
	}
	if err := DB.Create(&note).Error; err != nil {
		log.Printf("Failed to seed welcome note: %v", err)
		return
	}
	log.Println("Welcome note created")
}
