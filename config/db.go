package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"club-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "club_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase ensures the default admin, club settings and a starter
// resource catalog exist. Safe to run on every boot.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: "admin@club.local",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var settingCount int64
	DB.Model(&models.ClubSetting{}).Count(&settingCount)
	if settingCount == 0 {
		if err := DB.Create(&models.ClubSetting{Name: "Club House"}).Error; err != nil {
			log.Printf("warning: failed to seed club settings: %v", err)
		}
	}

	var resourceCount int64
	DB.Model(&models.Resource{}).Count(&resourceCount)
	if resourceCount == 0 {
		resources := []models.Resource{
			{Kind: models.KindRoom, Name: "Room 101", Active: true, MemberPrice: 2500, GuestPrice: 4000, MaxGuests: 2},
			{Kind: models.KindRoom, Name: "Room 102", Active: true, MemberPrice: 2500, GuestPrice: 4000, MaxGuests: 3},
			{Kind: models.KindHall, Name: "Banquet Hall", Active: true, MemberPrice: 15000, GuestPrice: 25000, MinGuests: 20, MaxGuests: 300},
			{Kind: models.KindLawn, Name: "Main Lawn", Active: true, MemberPrice: 20000, GuestPrice: 35000, MinGuests: 50, MaxGuests: 800},
			{Kind: models.KindPhotoshoot, Name: "Photoshoot Slot A", Active: true, MemberPrice: 1500, GuestPrice: 3000, MaxGuests: 15},
		}
		if err := DB.Create(&resources).Error; err != nil {
			log.Printf("warning: failed to seed resources: %v", err)
		} else {
			log.Println("Resources seeded")
		}
	}
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.ClubSetting{},
		&models.Member{},
		&models.Resource{},
		&models.MaintenanceWindow{},
		&models.StandingReservation{},
		&models.Booking{},
		&models.PaymentVoucher{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
