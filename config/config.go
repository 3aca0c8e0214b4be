package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	SMTP     SMTP
	Storage  Storage
	Upload   Upload
	Locale   string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWT struct {
	Secret          string
	AccessTTLMin    int
	RefreshTTLHours int
}

type SMTP struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Operator string // recipient for contact-page messages
}

type Storage struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type Upload struct {
	MaxBytes int64
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_ACCESS_TTL_MIN", 30)
	viper.SetDefault("JWT_REFRESH_TTL_HOURS", 24*7)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	viper.SetDefault("DEFAULT_LOCALE", "en")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.AccessTTLMin = viper.GetInt("JWT_ACCESS_TTL_MIN")
	config.JWT.RefreshTTLHours = viper.GetInt("JWT_REFRESH_TTL_HOURS")

	config.SMTP.Host = viper.GetString("SMTP_HOST")
	config.SMTP.Port = viper.GetInt("SMTP_PORT")
	config.SMTP.User = viper.GetString("SMTP_USER")
	config.SMTP.Password = viper.GetString("SMTP_PASSWORD")
	config.SMTP.From = viper.GetString("SMTP_FROM")
	config.SMTP.Operator = viper.GetString("CONTACT_OPERATOR_EMAIL")

	config.Storage.Endpoint = viper.GetString("STORAGE_ENDPOINT")
	config.Storage.AccessKey = viper.GetString("STORAGE_ACCESS_KEY")
	config.Storage.SecretKey = viper.GetString("STORAGE_SECRET_KEY")
	config.Storage.Bucket = viper.GetString("STORAGE_BUCKET")
	config.Storage.UseSSL = viper.GetBool("STORAGE_USE_SSL")

	config.Upload.MaxBytes = viper.GetInt64("UPLOAD_MAX_BYTES")
	config.Locale = viper.GetString("DEFAULT_LOCALE")

	log.Info().Str("port", config.Server.Port).Str("db", config.Database.Name).Msg("Config loaded")
	return &config, nil
}
