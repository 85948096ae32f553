package config

import (
	"github.com/spf13/viper"
)

// Config app configuration
type Config struct {
	ServiceName string `mapstructure:"serviceName"`
	SecretKey   string `mapstructure:"secretKey"`
}

// InitConfig initialize app configuration
func InitConfig() (*Config, error) {
	config := &Config{}
	subv := viper.Sub("app")
	err := subv.Unmarshal(&config)
	return config, err
}
