package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type SMSGateConfig struct {
	APIKey   string `yaml:"api_key"`
	SenderID string `yaml:"sender_id"`
	DryRun   bool   `yaml:"dry_run"`
}

type WebhookConfig struct {
	LeadURL   string `yaml:"lead_url"`
	AuthToken string `yaml:"auth_token"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type AuthConfig struct {
	VerifyToken       string `yaml:"verify_token"`
	JWTSecret         string `yaml:"jwt_secret"`
	AdminEmail        string `yaml:"admin_email"`
	AdminPasswordHash string `yaml:"admin_password_hash"`
}

type VerificationConfig struct {
	CodeTTLMinutes    int `yaml:"code_ttl_minutes"`
	ResendWindowMin   int `yaml:"resend_window_minutes"`
	MaxSendsPerWindow int `yaml:"max_sends_per_window"`
}

type FilesConfig struct {
	RootDir string `yaml:"root_dir"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		OfficeEmail  string `yaml:"office_email"`
	} `yaml:"email"`
	Files        FilesConfig        `yaml:"files"`
	SMSGate      SMSGateConfig      `yaml:"smsgate"`
	Webhook      WebhookConfig      `yaml:"webhook"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Auth         AuthConfig         `yaml:"auth"`
	Verification VerificationConfig `yaml:"verification"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Files.RootDir == "" {
		cfg.Files.RootDir = "./files"
	}
	if cfg.Verification.CodeTTLMinutes <= 0 {
		cfg.Verification.CodeTTLMinutes = 10
	}
	if cfg.Verification.ResendWindowMin <= 0 {
		cfg.Verification.ResendWindowMin = 10
	}
	if cfg.Verification.MaxSendsPerWindow <= 0 {
		cfg.Verification.MaxSendsPerWindow = 3
	}
	return &cfg
}

func (c *Config) CodeTTL() time.Duration {
	return time.Duration(c.Verification.CodeTTLMinutes) * time.Minute
}

func (c *Config) ResendWindow() time.Duration {
	return time.Duration(c.Verification.ResendWindowMin) * time.Minute
}
