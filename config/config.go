package config

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Booking BookingConfig
	Seed    SeedConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// BookingConfig carries the business knobs of the booking ledger.
// PerPersonRate is the flat charge per trekker, used when a guide marks a
// booking fully paid without supplying an explicit amount.
type BookingConfig struct {
	PerPersonRate decimal.Decimal
}

// SeedConfig describes the default accounts created on first startup.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	GuideEmail    string
	GuidePassword string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	accessExpiry, err := time.ParseDuration(viper.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		accessExpiry = 15 * time.Minute
	}

	refreshExpiry, err := time.ParseDuration(viper.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		refreshExpiry = 7 * 24 * time.Hour
	}

	perPersonRate, err := decimal.NewFromString(viper.GetString("BOOKING_PER_PERSON_RATE"))
	if err != nil || perPersonRate.IsNegative() {
		perPersonRate = decimal.NewFromInt(1500)
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        viper.GetString("JWT_SECRET"),
			AccessExpiry:  accessExpiry,
			RefreshExpiry: refreshExpiry,
		},
		Booking: BookingConfig{
			PerPersonRate: perPersonRate,
		},
		Seed: SeedConfig{
			AdminEmail:    viper.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: viper.GetString("SEED_ADMIN_PASSWORD"),
			GuideEmail:    viper.GetString("SEED_GUIDE_EMAIL"),
			GuidePassword: viper.GetString("SEED_GUIDE_PASSWORD"),
		},
	}

	return config, nil
}
