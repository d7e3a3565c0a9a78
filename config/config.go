package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config chứa toàn bộ cấu hình đọc từ biến môi trường
type Config struct {
	Port             string
	DBDriver         string
	PostgreSQLURI    string
	MongoURI         string
	MongoDatabase    string
	AdminName        string
	AdminPassword    string
	PasswordHashing  string
	CORSAllowOrigins string
	NotifyTimeout    time.Duration
	LogLevel         string
	SMTP             SMTPConfig
	MQTT             MQTTConfig
}

// SMTPConfig dùng cho email cảnh báo khi admin đăng nhập
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Enabled báo SMTP đã được cấu hình đủ để gửi mail
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.From != "" && s.To != ""
}

// MQTTConfig: broker lấy từ host của MQTT_URL, topic lấy từ path
type MQTTConfig struct {
	Broker   string
	Topic    string
	Username string
	Password string
}

func (m MQTTConfig) Enabled() bool {
	return m.Broker != ""
}

// LoadENV nạp biến môi trường từ file .env nếu có
func LoadENV() error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return nil
}

// Load đọc cấu hình từ môi trường và kiểm tra các giá trị bắt buộc
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "3000"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		PostgreSQLURI:    os.Getenv("POSTGRESQL_URI"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDatabase:    getEnv("MONGO_DATABASE", "todos"),
		AdminName:        os.Getenv("ADMIN_NAME"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		PasswordHashing:  strings.ToLower(getEnv("PASSWORD_HASHING", "plain")),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	var err error
	cfg.NotifyTimeout, err = time.ParseDuration(getEnv("NOTIFY_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOTIFY_TIMEOUT: %w", err)
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgreSQLURI == "" {
			return nil, errors.New("you must set your 'POSTGRESQL_URI' environmental variable")
		}
	case "mongodb":
		if cfg.MongoURI == "" {
			return nil, errors.New("you must set your 'MONGO_URI' environmental variable")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	cfg.SMTP = SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("ALERT_FROM"),
		To:       os.Getenv("ALERT_TO"),
	}
	cfg.SMTP.Port, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg.MQTT, err = parseMQTTURL(os.Getenv("MQTT_URL"))
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseMQTTURL(raw string) (MQTTConfig, error) {
	if raw == "" {
		return MQTTConfig{}, nil
	}
	uri, err := url.Parse(raw)
	if err != nil {
		return MQTTConfig{}, fmt.Errorf("invalid MQTT_URL: %w", err)
	}
	if uri.Host == "" {
		return MQTTConfig{}, fmt.Errorf("invalid MQTT_URL %q: missing host", raw)
	}

	m := MQTTConfig{
		Broker: fmt.Sprintf("tcp://%s", uri.Host),
		Topic:  strings.TrimPrefix(uri.Path, "/"),
	}
	if m.Topic == "" {
		m.Topic = "todos"
	}
	if uri.User != nil {
		m.Username = uri.User.Username()
		m.Password, _ = uri.User.Password()
	}
	return m, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
