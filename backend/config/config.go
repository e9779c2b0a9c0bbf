package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Catalog tuning, per deployment.
	PageSize                   int
	NewCourseWindowDays        int
	WeeklyBestsellerThreshold  int
	AllTimeBestsellerThreshold int
	AutoCompletePercent        int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "course_market"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		PageSize:                   getEnvInt("CATALOG_PAGE_SIZE", 12),
		NewCourseWindowDays:        getEnvInt("NEW_COURSE_WINDOW_DAYS", 30),
		WeeklyBestsellerThreshold:  getEnvInt("WEEKLY_BESTSELLER_THRESHOLD", 5),
		AllTimeBestsellerThreshold: getEnvInt("ALLTIME_BESTSELLER_THRESHOLD", 100),
		AutoCompletePercent:        getEnvInt("AUTO_COMPLETE_PERCENT", 95),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
	}
	return defaultValue
}
