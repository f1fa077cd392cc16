package config

import (
	"os"
	"strconv"
)

type Config struct {
	Host             string
	Port             int
	DBPath           string
	DatabaseDSN      string
	HandshakeTimeout int // seconds, 0 disables
	WriteTimeout     int // seconds, 0 disables
	SendQueue        int
	SeedUsers        string // "user:pass,user:pass"
}

func Load() *Config {
	cfg := &Config{
		Host:      "0.0.0.0",
		Port:      5555,
		DBPath:    "chatrelay.db",
		SendQueue: 256,
	}

	if host := os.Getenv("CHATRELAY_HOST"); host != "" {
		cfg.Host = host
	}

	if portStr := os.Getenv("CHATRELAY_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Port = port
		}
	}

	if dbPath := os.Getenv("CHATRELAY_DB_PATH"); dbPath != "" {
		cfg.DBPath = dbPath
	}

	if dsn := os.Getenv("CHATRELAY_DATABASE_DSN"); dsn != "" {
		cfg.DatabaseDSN = dsn
	}

	if timeoutStr := os.Getenv("CHATRELAY_HANDSHAKE_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil {
			cfg.HandshakeTimeout = timeout
		}
	}

	if timeoutStr := os.Getenv("CHATRELAY_WRITE_TIMEOUT"); timeoutStr != "" {
		if timeout, err := strconv.Atoi(timeoutStr); err == nil {
			cfg.WriteTimeout = timeout
		}
	}

	if queueStr := os.Getenv("CHATRELAY_SEND_QUEUE"); queueStr != "" {
		if queue, err := strconv.Atoi(queueStr); err == nil && queue > 0 {
			cfg.SendQueue = queue
		}
	}

	if seed := os.Getenv("CHATRELAY_SEED_USERS"); seed != "" {
		cfg.SeedUsers = seed
	}

	return cfg
}
