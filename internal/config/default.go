package config

import (
	"github.com/spf13/viper"
)

func init() {
	// Set config defaults
	viper.SetDefault("service.logLevel", "info")
	viper.SetDefault("service.port", "50051")
}
