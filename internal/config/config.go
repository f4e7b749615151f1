package config

type Config struct {
	Service *ServiceConfig
}

type ServiceConfig struct {
	Ip       string
	Port     string
	LogLevel LogLevel
}
