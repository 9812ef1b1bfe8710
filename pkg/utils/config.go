package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Iyzico   IyzicoConfig
	Checkout CheckoutConfig
	Session  SessionConfig
	Email    EmailConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	URL string
}

type IyzicoConfig struct {
	APIKey    string
	SecretKey string
	BaseURL   string
}

type CheckoutConfig struct {
	DraftTTLMinutes int
	DefaultSurname  string
	ResultURL       string
	Currency        string
}

type SessionConfig struct {
	ExpiryHours int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("IYZICO_BASE_URL", "https://sandbox-api.iyzipay.com")
	viper.SetDefault("CHECKOUT_DRAFT_TTL_MINUTES", 30)
	viper.SetDefault("CHECKOUT_DEFAULT_SURNAME", "-")
	viper.SetDefault("CHECKOUT_CURRENCY", "TRY")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			URL: viper.GetString("REDIS_URL"),
		},
		Iyzico: IyzicoConfig{
			APIKey:    viper.GetString("IYZICO_API_KEY"),
			SecretKey: viper.GetString("IYZICO_SECRET_KEY"),
			BaseURL:   viper.GetString("IYZICO_BASE_URL"),
		},
		Checkout: CheckoutConfig{
			DraftTTLMinutes: viper.GetInt("CHECKOUT_DRAFT_TTL_MINUTES"),
			DefaultSurname:  viper.GetString("CHECKOUT_DEFAULT_SURNAME"),
			ResultURL:       viper.GetString("CHECKOUT_RESULT_URL"),
			Currency:        viper.GetString("CHECKOUT_CURRENCY"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
	}

	return config, nil
}
