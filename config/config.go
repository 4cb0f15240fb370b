package config

import (
	"strings"
	"time"

	"pizza-delivery-api/models"

	"github.com/glebarez/sqlite"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config carries every tunable the service reads from the environment.
// Tax and delivery-fee figures are configuration, not literals, so a
// deployment can change them without a rebuild.
type Config struct {
	Port              string
	DBPath            string
	JWTSecret         []byte
	TaxRate           float64
	FreeDeliveryAbove float64
	DeliveryFee       float64
	ScanInterval      time.Duration
	ScanTimeout       time.Duration
}

// Load reads configuration from PIZZA_-prefixed environment variables,
// falling back to development defaults.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("PIZZA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "pizza_delivery.db")
	v.SetDefault("jwt_secret", "pizza_delivery_super_secret_2024")
	v.SetDefault("tax_rate", 0.05)
	v.SetDefault("free_delivery_above", 500.0)
	v.SetDefault("delivery_fee", 50.0)
	v.SetDefault("stock_scan_interval", time.Hour)
	v.SetDefault("stock_scan_timeout", 5*time.Minute)

	return &Config{
		Port:              v.GetString("port"),
		DBPath:            v.GetString("db_path"),
		JWTSecret:         []byte(v.GetString("jwt_secret")),
		TaxRate:           v.GetFloat64("tax_rate"),
		FreeDeliveryAbove: v.GetFloat64("free_delivery_above"),
		DeliveryFee:       v.GetFloat64("delivery_fee"),
		ScanInterval:      v.GetDuration("stock_scan_interval"),
		ScanTimeout:       v.GetDuration("stock_scan_timeout"),
	}
}

// OpenDB connects to the SQLite database at path and migrates the schema.
// The returned handle is passed down explicitly; there is no package-level
// connection, so tests can run against an isolated ":memory:" database.
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Pizza{},
		&models.Ingredient{},
		&models.InventoryItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderAddon{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
