package main

import (
	"log"
	"os"

	"pumphouse-kiosk-be/internal/model"
	"pumphouse-kiosk-be/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeds a fresh install: one active 1080p display config, a demo hotspot
// pair, and a default operator for admin mode. Idempotent on re-run.
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
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedDisplayConfig(db)
	seedHotspots(db)
	seedOperator(db)

	log.Println("Seed complete.")
}

func seedDisplayConfig(db *gorm.DB) {
	var count int64
	db.Model(&model.DisplayConfig{}).Count(&count)
	if count > 0 {
		log.Println("Display configs already present, skipping")
		return
	}

	cfg := model.DisplayConfig{
		Name:         "Default 1080p",
		TargetWidth:  1920,
		TargetHeight: 1080,
		OverviewPose: datatypes.JSON([]byte(`{"position":{"x":0,"y":12,"z":30},"rotation":{"x":-15,"y":0,"z":0}}`)),
		Active:       true,
	}
	if err := db.Create(&cfg).Error; err != nil {
		log.Fatal("Error: Failed to seed display config:", err)
	}
	log.Println("Seeded default display config")
}

func seedHotspots(db *gorm.DB) {
	hotspots := []model.Hotspot{
		{
			Slug:   "steam-engine",
			Shape:  "polygon",
			Bounds: datatypes.JSON([]byte(`{"points":[{"x":30,"y":40},{"x":45,"y":38},{"x":48,"y":60},{"x":32,"y":62}]}`)),
			Viewpoint: datatypes.JSON([]byte(`{"position":{"x":-4,"y":3,"z":8},"rotation":{"x":-10,"y":25,"z":0},"fov":50}`)),
			Names: datatypes.JSONMap{
				"de": "Dampfmaschine",
				"en": "Steam Engine",
			},
			Descriptions: datatypes.JSONMap{
				"de": "Die originale Dampfmaschine von 1887 trieb beide Pumpensätze an.",
				"en": "The original 1887 steam engine drove both pump sets.",
			},
			Active:    true,
			SortOrder: 1,
		},
		{
			Slug:   "pressure-gauge",
			Shape:  "circle",
			Bounds: datatypes.JSON([]byte(`{"cx":68,"cy":35,"r":5}`)),
			Names: datatypes.JSONMap{
				"de": "Manometer",
				"en": "Pressure Gauge",
			},
			Descriptions: datatypes.JSONMap{
				"de": "Das Manometer zeigt den Kesseldruck in Atmosphären.",
				"en": "The gauge shows boiler pressure in atmospheres.",
			},
			Active:    true,
			SortOrder: 2,
		},
	}

	for _, h := range hotspots {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&h).Error
		if err != nil {
			log.Fatal("Error: Failed to seed hotspot:", err)
		}
	}
	log.Println("Seeded demo hotspots")
}

func seedOperator(db *gorm.DB) {
	pin := os.Getenv("SEED_OPERATOR_PIN")
	if pin == "" {
		pin = "181920"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash operator PIN:", err)
	}

	op := model.Operator{
		Name:    "museum",
		PinHash: string(hash),
	}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&op).Error
	if err != nil {
		log.Fatal("Error: Failed to seed operator:", err)
	}
	log.Println("Seeded default operator")
}
