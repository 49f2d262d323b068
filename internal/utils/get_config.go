package utils

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const DefaultTimeZone = "America/Sao_Paulo"

type Config struct {
	AppEnv   string `yaml:"APP_ENV"`
	AppPort  string `yaml:"APP_PORT"`
	AppURL   string `yaml:"APP_URL"`
	TimeZone string `yaml:"TIME_ZONE"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
	UploadDir    string `yaml:"UPLOAD_DIR"`

	// Redis cache for geocoding lookups
	RedisAddress  string `yaml:"REDIS_ADDRESS"`
	RedisUsername string `yaml:"REDIS_USERNAME"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`

	// Geocoding providers
	NominatimURL string `yaml:"NOMINATIM_URL"`
	ViaCEPURL    string `yaml:"VIACEP_URL"`
}

var (
	config     Config
	configOnce sync.Once
	envFile    = ".env"
)

func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"APP_ENV":            &c.AppEnv,
		"APP_PORT":           &c.AppPort,
		"APP_URL":            &c.AppURL,
		"TIME_ZONE":          &c.TimeZone,
		"DB_USER":            &c.DBUser,
		"DB_NAME":            &c.DBName,
		"DB_PASSWORD":        &c.DBPassword,
		"DB_PORT":            &c.DBPort,
		"DB_HOST":            &c.DBHost,
		"JWT_SECRET":         &c.JWTSecret,
		"SMTP_HOST":          &c.SMTPHost,
		"SMTP_PORT":          &c.SMTPPort,
		"SMTP_SENDER_NAME":   &c.SMTPSenderName,
		"SMTP_AUTH_EMAIL":    &c.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD": &c.SMTPAuthPassword,
		"AWS_S3_BUCKET":      &c.AWSS3Bucket,
		"AWS_S3_REGION":      &c.AWSS3Region,
		"AWS_ACCESS_KEY":     &c.AWSAccessKey,
		"AWS_SECRET_KEY":     &c.AWSSecretKey,
		"UPLOAD_DIR":         &c.UploadDir,
		"REDIS_ADDRESS":      &c.RedisAddress,
		"REDIS_USERNAME":     &c.RedisUsername,
		"REDIS_PASSWORD":     &c.RedisPassword,
		"NOMINATIM_URL":      &c.NominatimURL,
		"VIACEP_URL":         &c.ViaCEPURL,
	}
}

var defaults = map[string]string{
	"APP_ENV":       "development",
	"APP_PORT":      "8080",
	"TIME_ZONE":     DefaultTimeZone,
	"UPLOAD_DIR":    "./uploads",
	"NOMINATIM_URL": "https://nominatim.openstreetmap.org",
	"VIACEP_URL":    "https://viacep.com.br",
}

// SetEnvFile changes the dotenv file read by LoadConfig.
func SetEnvFile(path string) {
	envFile = path
}

// LoadConfig reads config.yaml, then fills any key it leaves empty from the
// environment (after loading the dotenv file) and finally from defaults.
// Only the first call has any effect.
func LoadConfig() {
	configOnce.Do(func() {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			log.Printf("Error reading env file %s: %s\n", envFile, err)
		}

		path := os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "config.yaml"
		}
		file, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Error reading YAML file: %s\n", err)
		} else if err := yaml.Unmarshal(file, &config); err != nil {
			log.Printf("Error parsing YAML file: %s\n", err)
		}

		for key, field := range config.fields() {
			if *field == "" {
				*field = os.Getenv(key)
			}
			if *field == "" {
				*field = defaults[key]
			}
		}
	})
}

func GetConfig(key string) string {
	field, ok := config.fields()[key]
	if !ok {
		return ""
	}
	return *field
}

// Location resolves TIME_ZONE, falling back to UTC when the zone database
// does not know it.
func Location() *time.Location {
	name := GetConfig("TIME_ZONE")
	if name == "" {
		name = DefaultTimeZone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown time zone %q, using UTC: %s\n", name, err)
		return time.UTC
	}
	return loc
}
