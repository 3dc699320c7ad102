package auth

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	SigningKey string `mapstructure:"SigningKey"`
}

func NewConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.BindEnv("SigningKey", "AUTH_SIGNING_KEY")

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Warning: using only environment variables: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot unmarshal config: %w", err)
	}

	if cfg.SigningKey == "" {
		cfg.SigningKey = v.GetString("AUTH_SIGNING_KEY")
	}
	if cfg.SigningKey == "" {
		return nil, fmt.Errorf("SigningKey is required")
	}

	return &cfg, nil
}
