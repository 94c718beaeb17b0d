package cmd

import (
	"fmt"
	"log"
	"os"

	settingDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/setting"
	teamDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/team"
	userDatamodel "github.com/frahmantamala/roster-management/internal/core/datamodel/user"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with bootstrap data",
	Long:  `Seed the Helpdesk team, the super admin account and default settings. Runs only when no users exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open gorm: %v", err)
		}

		var userCount int64
		if err := db.Model(&userDatamodel.User{}).Count(&userCount).Error; err != nil {
			log.Fatalf("failed to count users: %v", err)
		}
		if userCount > 0 {
			fmt.Println("users already exist; nothing to seed")
			return
		}

		helpdesk := teamDatamodel.Team{Name: "Helpdesk", Description: "Helpdesk Team"}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&helpdesk).Error; err != nil {
			log.Fatalf("failed to seed Helpdesk team: %v", err)
		}
		if helpdesk.ID == 0 {
			if err := db.Where("name = ?", "Helpdesk").First(&helpdesk).Error; err != nil {
				log.Fatalf("failed to look up Helpdesk team: %v", err)
			}
		}

		superUsername := envOrDefault("SUPER_ADMIN_USERNAME", "super_admin")
		superPassword := envOrDefault("SUPER_ADMIN_PASSWORD", "admin123")

		superHash, err := bcrypt.GenerateFromPassword([]byte(superPassword), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash super admin password: %v", err)
		}
		superAdmin := userDatamodel.User{
			Username:     superUsername,
			PasswordHash: string(superHash),
			Role:         userDatamodel.RoleSuperAdmin,
			TeamID:       nil,
			Active:       true,
		}
		if err := db.Create(&superAdmin).Error; err != nil {
			log.Fatalf("failed to seed super admin: %v", err)
		}
		fmt.Println("Seeded super admin:", superUsername)

		supervisorHash, err := bcrypt.GenerateFromPassword([]byte("123456"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash supervisor password: %v", err)
		}
		supervisor := userDatamodel.User{
			Username:     "faizan.ahmad",
			PasswordHash: string(supervisorHash),
			Role:         userDatamodel.RoleSupervisor,
			TeamID:       &helpdesk.ID,
			Active:       true,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&supervisor).Error; err != nil {
			log.Fatalf("failed to seed supervisor: %v", err)
		}
		fmt.Println("Seeded supervisor: faizan.ahmad")

		flag := settingDatamodel.Setting{Key: "gpt_5_1_codex_max_preview", Value: "true"}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(&flag).Error; err != nil {
			log.Fatalf("failed to seed settings: %v", err)
		}
		fmt.Println("Seeded default settings")
	},
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
