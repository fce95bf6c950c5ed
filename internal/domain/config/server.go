package config

import (
	"os"
	"strconv"
)

const DefaultAPIPort = 8085

type ServerConfig struct {
	APIPort       int
	RespectRobots bool
	OTLPEndpoint  string
}

func NewServerConfigFromEnv() *ServerConfig {
	cfg := &ServerConfig{
		APIPort:       DefaultAPIPort,
		RespectRobots: os.Getenv("ROBOTS_POLICY") == "respect",
		OTLPEndpoint:  os.Getenv("OTLP_ENDPOINT"),
	}

	if raw := os.Getenv("API_PORT"); raw != "" {
		if port, err := strconv.Atoi(raw); err == nil && port > 0 {
			cfg.APIPort = port
		}
	}

	return cfg
}
