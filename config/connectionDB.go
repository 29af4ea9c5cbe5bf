package config

import (
	"fmt"
	"log"

	"jobtrackr/internal/entity"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func ConnectionDb(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disable prepared statements completely
	}), &gorm.Config{
		PrepareStmt: false,
	})
	if err != nil {
		log.Printf("error connect to database %s", err)
	}

	fmt.Println("success connect to db")
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.SocialLink{},
		&entity.PasswordResetToken{},
		&entity.RevokedToken{},
		&entity.EmailProviderSetting{},
		&entity.EmailLog{},
		&entity.JobApplicationStatus{},
		&entity.JobSkill{},
		&entity.JobApplication{},
		&entity.UserSkill{},
		&entity.LearningStatus{},
		&entity.LearningPlan{},
		&entity.LearningResource{},
	)
}
