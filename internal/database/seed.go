package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/apex/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/codecops/cleanify-api/internal/models"
)

// Demo fleet locations across Baramati city.
var demoBinLocations = []struct {
	Location string
	Area     string
	Lat      float64
	Lon      float64
}{
	{"Baramati Bus Stand", "Central", 18.1514, 74.5815},
	{"Bhigwan Road Chowk", "South", 18.1421, 74.5892},
	{"Nira River Bridge", "East", 18.1602, 74.6011},
	{"Katewadi Phata", "West", 18.1488, 74.5623},
	{"Jalochi Road", "North", 18.1687, 74.5779},
	{"Market Yard Baramati", "Central", 18.1532, 74.5841},
	{"Shivaji Chowk", "South", 18.1455, 74.5808},
	{"Phaltan Road", "West", 18.1509, 74.5551},
	{"Indapur Highway Junction", "East", 18.1579, 74.6104},
	{"Baramati Krishi Vidyapeeth", "North", 18.1726, 74.5866},
	{"Malegaon Chowk", "Central", 18.1548, 74.5787},
	{"Supe Road", "South", 18.1382, 74.5741},
	{"Morgaon Road", "East", 18.1611, 74.5937},
	{"Station Road Baramati", "West", 18.1497, 74.5698},
	{"Karhati Phata", "North", 18.1754, 74.5932},
}

var demoUsers = []struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}{
	{"Admin User", "admin@cleanify.com", "admin123", models.RoleAdmin},
	{"Ravi Kumar", "worker1@cleanify.com", "worker123", models.RoleWorker},
	{"Priya Sharma", "worker2@cleanify.com", "worker123", models.RoleWorker},
	{"Amit Patel", "citizen@cleanify.com", "citizen123", models.RoleCitizen},
}

// SeedDemo populates demo users and the bin fleet on an empty database.
// It is a no-op when users already exist.
func SeedDemo() error {
	var count int64
	if err := DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Info("seeding demo data")

	for _, u := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash demo password: %w", err)
		}
		user := models.User{
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
		}
		if err := DB.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	rng := rand.New(rand.NewSource(42))
	collected := time.Now().Add(-12 * time.Hour)
	for _, loc := range demoBinLocations {
		fill := 5 + rng.Intn(91)
		lat, lon := loc.Lat, loc.Lon
		bin := models.Bin{
			Location:      loc.Location,
			Area:          loc.Area,
			Latitude:      &lat,
			Longitude:     &lon,
			FillLevel:     fill,
			Status:        models.BinStatusForFill(fill),
			LastCollected: &collected,
			SensorBattery: 40 + rng.Intn(61),
		}
		if err := DB.Create(&bin).Error; err != nil {
			return fmt.Errorf("failed to seed bin %s: %w", loc.Location, err)
		}
	}

	log.WithFields(log.Fields{
		"users": len(demoUsers),
		"bins":  len(demoBinLocations),
	}).Info("demo data seeded")
	return nil
}
