package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
	Redis  Redis  `yaml:"redis"`
	Gemini Gemini `yaml:"gemini"`
}

type Gemini struct {
	Classifier ModelConfig `yaml:"classifier" validate:"required"`
	Triage     ModelConfig `yaml:"triage" validate:"required"`
	RedFlag    ModelConfig `yaml:"red_flag" validate:"required"`
	Screening  ModelConfig `yaml:"screening" validate:"required"`
	Advice     ModelConfig `yaml:"advice" validate:"required"`
}

type ModelConfig struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://generativelanguage.googleapis.com/v1beta/openai" validate:"required"`
	// API token
	Token string `yaml:"token" example:"AIzaSyAbc123456789DEF789ghi012JKL345mno678" validate:"required"`
	// Model name
	Model string `yaml:"model" example:"gemini-1.5-pro" validate:"required"`
}

type Server struct {
	// Listen address of the HTTP API
	Addr string `yaml:"addr" example:":5000"`
}

type Redis struct {
	// Redis host, sessions fall back to in-memory storage when unreachable
	Host string `yaml:"host" example:"localhost:6379"`
	// Redis password
	Pass string `yaml:"pass"`
	// Redis database index
	DB int `yaml:"db" example:"0"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.Server.Addr == "" {
		result.Server.Addr = ":5000"
	}
	if result.Redis.Host == "" {
		result.Redis.Host = "localhost:6379"
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
