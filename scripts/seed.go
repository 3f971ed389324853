// Seed script for local development.
//
// Creates the schema, an admin account and a demo course with one lesson and
// one quiz. Safe to re-run: existing rows are left alone.
//
// Usage: go run scripts/seed.go

package main

import (
	"log"
	"os"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"
	"lms_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Done.")
}

func seed(db *gorm.DB) error {
	var admin model.User
	err := db.Where("email = ?", "admin@example.com").First(&admin).Error
	if err == gorm.ErrRecordNotFound {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin = model.User{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: string(hashed),
			Role:     model.Admin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Println("Created admin@example.com (password admin123)")
	} else if err != nil {
		return err
	}

	var course model.Course
	err = db.Where("title = ?", "Getting Started with Go").First(&course).Error
	if err == gorm.ErrRecordNotFound {
		course = model.Course{
			Title:       "Getting Started with Go",
			Description: "An introductory course covering Go basics.",
			Instructor:  "Jordan Lee",
			Price:       0,
		}
		if err := db.Create(&course).Error; err != nil {
			return err
		}

		lesson := model.Lesson{
			CourseID: course.ID,
			Title:    "Hello, Go",
			VideoURL: "https://videos.example.com/go/hello.mp4",
		}
		if err := db.Create(&lesson).Error; err != nil {
			return err
		}

		quiz := model.Quiz{CourseID: course.ID, Title: "Go Basics Check"}
		if err := db.Create(&quiz).Error; err != nil {
			return err
		}

		question := model.Question{QuizID: quiz.ID, Text: "Which keyword declares a function in Go?"}
		if err := db.Create(&question).Error; err != nil {
			return err
		}

		options := []model.Option{
			{QuestionID: question.ID, Text: "func", IsCorrect: true},
			{QuestionID: question.ID, Text: "def"},
			{QuestionID: question.ID, Text: "fn"},
		}
		for i := range options {
			if err := db.Create(&options[i]).Error; err != nil {
				return err
			}
		}
		log.Println("Created demo course with a lesson and a quiz")
	} else if err != nil {
		return err
	}
	return nil
}
