package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":3000"`

	AdminAPIKey    string   `env:"ADMIN_API_KEY"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	MCPEnabled     bool     `env:"MCP_ENABLED" envDefault:"true"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
