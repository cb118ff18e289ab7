// internals/seeds/runner.go
package seeds

import (
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	adminModel "unihomework_backend/internals/features/users/admins/model"
)

// RunAllSeeds runs every bootstrap seed. Each seed is idempotent.
func RunAllSeeds(db *gorm.DB) {
	SeedBootstrapAdmin(db)
}

// SeedBootstrapAdmin creates the first admin account when the admins table is
// empty. Creating further admins requires an admin token, so without this
// seed nobody could ever log into the admin surface.
func SeedBootstrapAdmin(db *gorm.DB) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Println("[WARN] ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing adminModel.AdminModel
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("[ERROR] admin seed lookup failed: %v", err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] admin seed hash failed: %v", err)
		return
	}

	admin := adminModel.AdminModel{
		Username: username,
		Name:     "Administrator",
		Password: string(hashed),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("[ERROR] admin seed insert failed: %v", err)
		return
	}
	log.Printf("[INFO] seeded bootstrap admin %q", username)
}
