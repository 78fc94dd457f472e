package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	JWT    JWTConfig
	Clinic ClinicConfig
	Admin  AdminConfig
}

type AppConfig struct {
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string
}

type DBConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	TimeZone    string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	Issuer        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// ClinicConfig holds the parameters of the consultation scheduling rules.
type ClinicConfig struct {
	Location        *time.Location
	OpenHour        int
	CloseHour       int
	SlotDuration    time.Duration
	MinAdvance      time.Duration
	MinCancelNotice time.Duration
}

// AdminConfig is the bootstrap administrator created on startup when missing.
type AdminConfig struct {
	Login    string
	Password string
}

var (
	ErrMissingJWTSecret  = errors.New("JWT_SECRET is required")
	ErrInvalidAdminLogin = errors.New("ADMIN_LOGIN must be an email address")
)

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if v.GetString("JWT_SECRET") == "" {
		return nil, ErrMissingJWTSecret
	}

	location, err := time.LoadLocation(v.GetString("CLINIC_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE: %w", err)
	}

	clinic := ClinicConfig{
		Location:        location,
		OpenHour:        v.GetInt("CLINIC_OPEN_HOUR"),
		CloseHour:       v.GetInt("CLINIC_CLOSE_HOUR"),
		SlotDuration:    parseDuration(v, "CLINIC_SLOT_DURATION", time.Hour),
		MinAdvance:      parseDuration(v, "CLINIC_MIN_ADVANCE", 30*time.Minute),
		MinCancelNotice: parseDuration(v, "CLINIC_MIN_CANCEL_NOTICE", 24*time.Hour),
	}
	if clinic.OpenHour < 0 || clinic.CloseHour > 24 || clinic.OpenHour >= clinic.CloseHour {
		return nil, fmt.Errorf("invalid clinic hours: open=%d close=%d", clinic.OpenHour, clinic.CloseHour)
	}

	// The login endpoint only accepts email logins
	adminLogin := strings.TrimSpace(v.GetString("ADMIN_LOGIN"))
	if adminLogin != "" {
		if err := validator.New().Var(adminLogin, "email"); err != nil {
			return nil, ErrInvalidAdminLogin
		}
	}

	config := &Config{
		App: AppConfig{
			Port:        v.GetString("APP_PORT"),
			Env:         v.GetString("APP_ENV"),
			LogLevel:    v.GetString("LOG_LEVEL"),
			CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			TimeZone:    v.GetString("DB_TIMEZONE"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			Issuer:        v.GetString("JWT_ISSUER"),
			AccessExpiry:  parseDuration(v, "JWT_ACCESS_EXPIRY", 2*time.Hour),
			RefreshExpiry: parseDuration(v, "JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Clinic: clinic,
		Admin: AdminConfig{
			Login:    adminLogin,
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	return config, nil
}

// IsDevelopment reports whether the app runs in development mode.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "" || c.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_ISSUER", "voll med")

	v.SetDefault("CLINIC_TIMEZONE", "America/Bogota")
	v.SetDefault("CLINIC_OPEN_HOUR", 7)
	v.SetDefault("CLINIC_CLOSE_HOUR", 19)
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// splitList parses a comma separated value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
