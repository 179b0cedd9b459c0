package utils

import (
	"gopkg.in/yaml.v2"
	"log"
	"os"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// Identity provider and AES keys
	IdentityJWTSecret string `yaml:"IDENTITY_JWT_SECRET"`
	AESKey            string `yaml:"AES_KEY"`

	// Application URLs
	AppURL    string `yaml:"APP_URL"`
	ClientURL string `yaml:"CLIENT_URL"`

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

	// Groq API configuration
	GroqAPIKey string `yaml:"GROQ_API_KEY"`
	GroqModel  string `yaml:"GROQ_MODEL"`

	// OCR model service
	OCRModelURL string `yaml:"OCR_MODEL_URL"`

	// Serper claim-link search
	SerperAPIKey string `yaml:"SERPER_API_KEY"`

	// Gmail OAuth configuration
	GmailClientID     string `yaml:"GMAIL_CLIENT_ID"`
	GmailClientSecret string `yaml:"GMAIL_CLIENT_SECRET"`
	GmailRedirectURL  string `yaml:"GMAIL_REDIRECT_URL"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	// Set environment variables for keys that should be accessible via os.Getenv
	os.Setenv("IDENTITY_JWT_SECRET", config.IdentityJWTSecret)
	os.Setenv("AES_KEY", config.AESKey)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
	os.Setenv("GROQ_API_KEY", config.GroqAPIKey)
	os.Setenv("OCR_MODEL_URL", config.OCRModelURL)
	os.Setenv("SERPER_API_KEY", config.SerperAPIKey)
}

func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "IDENTITY_JWT_SECRET":
		return config.IdentityJWTSecret
	case "AES_KEY":
		return config.AESKey
	case "APP_URL":
		return config.AppURL
	case "CLIENT_URL":
		return config.ClientURL
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	case "GROQ_API_KEY":
		return config.GroqAPIKey
	case "GROQ_MODEL":
		return config.GroqModel
	case "OCR_MODEL_URL":
		return config.OCRModelURL
	case "SERPER_API_KEY":
		return config.SerperAPIKey
	case "GMAIL_CLIENT_ID":
		return config.GmailClientID
	case "GMAIL_CLIENT_SECRET":
		return config.GmailClientSecret
	case "GMAIL_REDIRECT_URL":
		return config.GmailRedirectURL
	default:
		return ""
	}
}
