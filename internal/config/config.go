package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	DB         DBConfig         `yaml:"db"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Generation GenerationConfig `yaml:"generation"`
	Render     RenderConfig     `yaml:"render"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// AuthConfig protects the JSON API and MCP endpoint when Token is set.
type AuthConfig struct {
	Token string `yaml:"token"`
}

type GenerationConfig struct {
	APIKey          string        `yaml:"api_key"`
	TextModel       string        `yaml:"text_model"`
	ImageModel      string        `yaml:"image_model"`
	Timeout         time.Duration `yaml:"timeout"`
	DetectImageMIME bool          `yaml:"detect_image_mime"`
}

type RenderConfig struct {
	// Highlighter is "naive" or "chroma".
	Highlighter string `yaml:"highlighter"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "cloneai.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Generation: GenerationConfig{
			TextModel:  "gemini-3-pro-preview",
			ImageModel: "gemini-3-pro-image-preview",
			Timeout:    3 * time.Minute,
		},
		Render: RenderConfig{
			Highlighter: "naive",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CLONEAI_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("CLONEAI_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("CLONEAI_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CLONEAI_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("CLONEAI_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("CLONEAI_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if token := os.Getenv("CLONEAI_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.Generation.APIKey = key
	} else if key := os.Getenv("API_KEY"); key != "" {
		cfg.Generation.APIKey = key
	}
	if model := os.Getenv("CLONEAI_TEXT_MODEL"); model != "" {
		cfg.Generation.TextModel = model
	}
	if model := os.Getenv("CLONEAI_IMAGE_MODEL"); model != "" {
		cfg.Generation.ImageModel = model
	}
	if h := os.Getenv("CLONEAI_HIGHLIGHTER"); h != "" {
		cfg.Render.Highlighter = h
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Render.Highlighter {
	case "naive", "chroma":
	default:
		return fmt.Errorf("invalid render highlighter %q", c.Render.Highlighter)
	}
	if c.Generation.Timeout < 0 {
		return fmt.Errorf("invalid generation timeout %s", c.Generation.Timeout)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
