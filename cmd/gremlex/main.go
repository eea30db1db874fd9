// Command gremlex runs one Gremlin-Groovy query against a Gremlin server and
// prints the decoded results as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/coingaming/gremlex/client"
	"github.com/coingaming/gremlex/config"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cliCfg := parseFlags()

	if cliCfg.ShowVersion {
		fmt.Printf("gremlex %s\n", Version)
		return 0
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)

	query, err := readQuery()
	if err != nil {
		logger.Error("failed to read query", "error", err)
		return 1
	}
	if query == "" {
		fmt.Fprintln(os.Stderr, "no query given")
		return 2
	}

	cfg, err := resolveConfig(cliCfg)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return 1
	}

	c, err := client.New(cfg, client.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create client", "error", err)
		return 1
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Warn("close failed", "error", err)
		}
	}()

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		logger.Error("failed to start client", "error", err)
		return 1
	}

	values, err := c.QueryWithTimeout(ctx, query, cliCfg.Timeout)
	if err != nil {
		logger.Error("query failed", "error", err)
		return 1
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(values); err != nil {
		logger.Error("failed to encode results", "error", err)
		return 1
	}
	return 0
}

// resolveConfig loads the config file when given, otherwise builds a config
// from flags.
func resolveConfig(cliCfg *CLIConfig) (config.Config, error) {
	if cliCfg.ConfigPath != "" {
		return config.Load(cliCfg.ConfigPath)
	}

	cfg := config.DefaultConfig(cliCfg.Host)
	cfg.Port = cliCfg.Port
	cfg.Path = cliCfg.Path
	cfg.Secure = cliCfg.Secure
	cfg.PoolSize = 1
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// readQuery takes the query from argv, falling back to stdin
func readQuery() (string, error) {
	if args := flag.Args(); len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
