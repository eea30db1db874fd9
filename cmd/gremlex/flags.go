package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigPath  string
	Host        string
	Port        int
	Path        string
	Secure      bool
	Timeout     time.Duration
	LogLevel    string
	LogFormat   string
	ShowVersion bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("GREMLEX_CONFIG", ""),
		"Path to YAML configuration file (env: GREMLEX_CONFIG)")

	flag.StringVar(&cfg.Host, "host",
		getEnv("GREMLEX_HOST", "localhost"),
		"Gremlin server host (env: GREMLEX_HOST)")

	flag.IntVar(&cfg.Port, "port",
		getEnvInt("GREMLEX_PORT", 8182),
		"Gremlin server port (env: GREMLEX_PORT)")

	flag.StringVar(&cfg.Path, "path",
		getEnv("GREMLEX_PATH", "/gremlin"),
		"WebSocket path (env: GREMLEX_PATH)")

	flag.BoolVar(&cfg.Secure, "secure",
		getEnvBool("GREMLEX_SECURE", false),
		"Use wss:// over TLS (env: GREMLEX_SECURE)")

	flag.DurationVar(&cfg.Timeout, "timeout",
		getEnvDuration("GREMLEX_TIMEOUT", 30*time.Second),
		"Query timeout (env: GREMLEX_TIMEOUT)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("GREMLEX_LOG_LEVEL", "warn"),
		"Log level: debug, info, warn, error (env: GREMLEX_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("GREMLEX_LOG_FORMAT", "text"),
		"Log format: json, text (env: GREMLEX_LOG_FORMAT)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <gremlin query>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Runs one Gremlin-Groovy query against the configured server and prints\n")
		fmt.Fprintf(os.Stderr, "the decoded results as JSON. Reads the query from stdin when no argument\n")
		fmt.Fprintf(os.Stderr, "is given.\n\nFlags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
