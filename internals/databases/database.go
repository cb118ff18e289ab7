package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"unihomework_backend/internals/configs"
	courseModel "unihomework_backend/internals/features/courses/model"
	homeworkModel "unihomework_backend/internals/features/homeworks/model"
	adminModel "unihomework_backend/internals/features/users/admins/model"
	studentModel "unihomework_backend/internals/features/users/students/model"
	staffModel "unihomework_backend/internals/features/users/teachers/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("[INFO] connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=unihomework",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("[ERROR] DB connection failed: %v", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate creates / updates the schema. Relation and uniqueness constraints
// live on the models themselves (uniqueIndex, OnDelete:CASCADE).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&studentModel.StudentModel{},
		&staffModel.StaffModel{},
		&adminModel.AdminModel{},
		&courseModel.CourseModel{},
		&courseModel.StudentCourseModel{},
		&courseModel.StaffCourseModel{},
		&homeworkModel.HomeworkModel{},
		&homeworkModel.SubmissionModel{},
		&homeworkModel.GradingModel{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
