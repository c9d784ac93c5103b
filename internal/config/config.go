package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string        `yaml:"log-level" env-default:"info"`
	HTTPPort string        `yaml:"http-port" env-default:"8080"`
	BotDelay time.Duration `yaml:"bot-delay" env-default:"750ms"`
	Redis    Redis         `yaml:"redis"`
	Gemini   Gemini        `yaml:"gemini"`
}

type Redis struct {
	Host string `yaml:"host" env-default:""`
	Port string `yaml:"port" env-default:"6379"`
}

type Gemini struct {
	Model  string `yaml:"model" env-default:"gemini-1.5-flash"`
	APIKey string `yaml:"api-key" env:"GEMINI_API_KEY" env-default:""`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// GetRedisAddr returns the host:port pair, or an empty string when no
// Redis host is configured and the in-memory store should be used.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
