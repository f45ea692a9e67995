package main

import (
	"log"

	"learnhub/config"
	"learnhub/database"
	"learnhub/models"
	courseModels "learnhub/models/course"
)

// Seeds a small demo catalog: one free course and one paid course with two
// modules each, plus a learner and a teacher account.
func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	learner := models.User{Name: "Demo Learner", Email: "learner@example.com", Role: models.RoleLearner}
	teacher := models.User{Name: "Demo Teacher", Email: "teacher@example.com", Role: models.RoleTeacher}
	if err := db.Create(&learner).Error; err != nil {
		log.Fatalf("Failed to create learner: %v", err)
	}
	if err := db.Create(&teacher).Error; err != nil {
		log.Fatalf("Failed to create teacher: %v", err)
	}

	free := courseModels.Course{Title: "Intro to Go", Author: teacher.Name, Price: 0, IsPublished: true}
	paid := courseModels.Course{Title: "Advanced Go", Author: teacher.Name, Price: 4999, IsPublished: true}
	if err := db.Create(&free).Error; err != nil {
		log.Fatalf("Failed to create free course: %v", err)
	}
	if err := db.Create(&paid).Error; err != nil {
		log.Fatalf("Failed to create paid course: %v", err)
	}

	for _, crs := range []courseModels.Course{free, paid} {
		for pos := 0; pos < 2; pos++ {
			module := courseModels.Module{CourseID: crs.ID, Title: "Module", Position: pos}
			if err := db.Create(&module).Error; err != nil {
				log.Fatalf("Failed to create module: %v", err)
			}
			for i := 0; i < 3; i++ {
				lesson := courseModels.Lesson{
					CourseID:        crs.ID,
					ModuleID:        module.ID,
					Title:           "Lesson",
					LessonType:      courseModels.LessonTypeVideo,
					DurationMinutes: 20,
					Position:        i,
				}
				if err := db.Create(&lesson).Error; err != nil {
					log.Fatalf("Failed to create lesson: %v", err)
				}
			}
		}
		assignment := courseModels.Assignment{CourseID: crs.ID, Title: "Final Assignment"}
		if err := db.Create(&assignment).Error; err != nil {
			log.Fatalf("Failed to create assignment: %v", err)
		}
	}

	log.Println("Seed completed successfully.")
}
